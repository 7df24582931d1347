package bitio

import (
	"bytes"
	"testing"
)

func TestReaderMSBFirst(t *testing.T) {
	// 0xA5 = 1010 0101
	r := NewReader([]byte{0xA5})
	want := []uint8{1, 0, 1, 0, 0, 1, 0, 1}
	for i, w := range want {
		bit, ok := r.NextBit()
		if !ok {
			t.Fatalf("bit %d: unexpected end of stream", i)
		}
		if bit != w {
			t.Errorf("bit %d: got %d want %d", i, bit, w)
		}
	}
	if _, ok := r.NextBit(); ok {
		t.Error("expected stream exhausted")
	}
}

func TestReaderReadBitsGroups(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4} {
		t.Run(string(rune('0'+n)), func(t *testing.T) {
			data := []byte("hello world, this is a test payload")
			r := NewReader(data)
			w := NewWriter()
			total := len(data) * 8
			read := 0
			for read+n <= total {
				v, ok := r.ReadBits(n)
				if !ok {
					t.Fatalf("unexpected end of stream at bit %d", read)
				}
				w.WriteBits(v, n)
				read += n
			}
			got := w.Bytes()
			if !bytes.Equal(got[:len(data)], data) {
				t.Errorf("round trip at depth %d mismatch:\ngot  %q\nwant %q", n, got[:len(data)], data)
			}
		})
	}
}

func TestWriterPacksBytes(t *testing.T) {
	w := NewWriter()
	w.Write([]byte("AB"))
	got := w.Bytes()
	if !bytes.Equal(got, []byte("AB")) {
		t.Errorf("got %q want %q", got, "AB")
	}
}

func TestReadBytesRoundTrip(t *testing.T) {
	data := []byte{0x53, 0x54, 0x45, 0x47, 0x00, 0x00, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}
	r := NewReader(data)
	got, ok := r.ReadBytes(len(data))
	if !ok {
		t.Fatal("expected ok")
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %x want %x", got, data)
	}
	if _, ok := r.ReadBytes(1); ok {
		t.Error("expected exhausted reader to fail further reads")
	}
}
