package wav

import (
	"encoding/binary"
	"testing"

	"github.com/rfani/stegolock/models"
)

func buildWAV(channels, sampleRate int, samples []int16) []byte {
	s := &models.Samples{SampleRate: sampleRate, Channels: channels, Data: samples}
	buf, _ := Encode(s)
	return buf
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	samples := make([]int16, 400)
	for i := range samples {
		samples[i] = int16(i*37 - 5000)
	}
	buf := buildWAV(2, 44100, samples)
	if !Sniff(buf) {
		t.Fatal("Sniff should recognize encoder output")
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Channels != 2 || got.SampleRate != 44100 {
		t.Fatalf("got channels=%d rate=%d", got.Channels, got.SampleRate)
	}
	if len(got.Data) != len(samples) {
		t.Fatalf("sample count: got %d want %d", len(got.Data), len(samples))
	}
	for i := range samples {
		if got.Data[i] != samples[i] {
			t.Fatalf("sample %d: got %d want %d", i, got.Data[i], samples[i])
		}
	}
}

func TestDecodeRejectsMissingFmtChunk(t *testing.T) {
	buf := make([]byte, 12+8+4)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(buf)-8))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "data")
	binary.LittleEndian.PutUint32(buf[16:20], 4)

	_, err := Decode(buf)
	if err == nil {
		t.Fatal("expected error for missing fmt chunk")
	}
	perr, ok := err.(*models.Error)
	if !ok || perr.Kind != models.KindCarrierCorrupt {
		t.Errorf("expected CarrierCorrupt, got %v", err)
	}
}

func TestDecodeRejectsNonPCMFormat(t *testing.T) {
	samples := []int16{1, 2, 3, 4}
	buf := buildWAV(1, 8000, samples)
	// Flip the audio format field (offset 20) from PCM(1) to something else.
	binary.LittleEndian.PutUint16(buf[20:22], 3)
	_, err := Decode(buf)
	if err == nil {
		t.Fatal("expected error for non-PCM format")
	}
	perr, ok := err.(*models.Error)
	if !ok || perr.Kind != models.KindUnsupportedFormat {
		t.Errorf("expected UnsupportedFormat, got %v", err)
	}
}

func TestDecodeHandlesOddSizedChunkPadding(t *testing.T) {
	// Build RIFF with an odd-length extraneous "JUNK" chunk before fmt.
	var buf []byte
	appendStr := func(s string) { buf = append(buf, []byte(s)...) }
	appendU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}

	appendStr("RIFF")
	appendU32(0) // patched below
	appendStr("WAVE")

	appendStr("JUNK")
	appendU32(3)
	buf = append(buf, 1, 2, 3, 0) // odd size 3, padded with one byte

	fmtChunk := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtChunk[0:2], 1)
	binary.LittleEndian.PutUint16(fmtChunk[2:4], 1)
	binary.LittleEndian.PutUint32(fmtChunk[4:8], 8000)
	binary.LittleEndian.PutUint32(fmtChunk[8:12], 16000)
	binary.LittleEndian.PutUint16(fmtChunk[12:14], 2)
	binary.LittleEndian.PutUint16(fmtChunk[14:16], 16)
	appendStr("fmt ")
	appendU32(16)
	buf = append(buf, fmtChunk...)

	appendStr("data")
	appendU32(4)
	buf = append(buf, 0, 0, 1, 0)

	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(buf)-8))

	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Data) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got.Data))
	}
}
