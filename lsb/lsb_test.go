package lsb

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/rfani/stegolock/models"
)

func makeRaster(w, h int, seed int64) *models.Raster {
	rnd := rand.New(rand.NewSource(seed))
	pix := make([]byte, w*h*4)
	rnd.Read(pix)
	for i := 0; i < w*h; i++ {
		pix[i*4+3] = 255
	}
	return &models.Raster{Width: w, Height: h, Pix: pix}
}

func TestImageEmbedExtractRoundTrip(t *testing.T) {
	for depth := 1; depth <= 4; depth++ {
		r := makeRaster(40, 40, int64(depth))
		envelope := []byte("the quick brown fox jumps over the lazy dog, repeated for bulk")
		if err := EmbedImage(r, envelope, depth); err != nil {
			t.Fatalf("depth %d: EmbedImage: %v", depth, err)
		}
		for _, off := range []int{3, 7, 11} {
			if r.Pix[off] != 255 {
				t.Errorf("depth %d: alpha not forced to 255 at offset %d", depth, off)
			}
		}
		got, err := ExtractImage(r, depth)
		if err != nil {
			t.Fatalf("depth %d: ExtractImage: %v", depth, err)
		}
		if !bytes.Equal(got, envelope) {
			t.Fatalf("depth %d: round trip mismatch: got %q want %q", depth, got, envelope)
		}
	}
}

func TestImageExtractNoHiddenData(t *testing.T) {
	r := makeRaster(20, 20, 99)
	_, err := ExtractImage(r, 1)
	if err == nil {
		t.Fatal("expected NoHiddenData on an untouched raster")
	}
	perr, ok := err.(*models.Error)
	if !ok || perr.Kind != models.KindNoHiddenData {
		t.Errorf("expected NoHiddenData, got %v", err)
	}
}

func TestImageEmbedRejectsOverCapacity(t *testing.T) {
	r := makeRaster(4, 4, 1) // 4*4*3*1/8 - 8 bytes capacity, negative
	err := EmbedImage(r, []byte("too much data for this tiny image"), 1)
	if err == nil {
		t.Fatal("expected CapacityExceeded")
	}
	perr, ok := err.(*models.Error)
	if !ok || perr.Kind != models.KindCapacityExceeded {
		t.Errorf("expected CapacityExceeded, got %v", err)
	}
}

func TestImageDepthMismatchYieldsNoHiddenData(t *testing.T) {
	r := makeRaster(40, 40, 7)
	envelope := []byte("secret payload bytes")
	if err := EmbedImage(r, envelope, 1); err != nil {
		t.Fatalf("EmbedImage: %v", err)
	}
	_, err := ExtractImage(r, 2)
	if err == nil {
		t.Fatal("expected error when extracting at the wrong depth")
	}
}

func makeSamples(n int, seed int64) *models.Samples {
	rnd := rand.New(rand.NewSource(seed))
	data := make([]int16, n)
	for i := range data {
		data[i] = int16(rnd.Intn(65536) - 32768)
	}
	return &models.Samples{SampleRate: 44100, Channels: 1, Data: data}
}

func TestAudioEmbedExtractRoundTrip(t *testing.T) {
	for depth := 1; depth <= 4; depth++ {
		s := makeSamples(4000, int64(depth)+100)
		envelope := []byte("hidden audio envelope contents for round trip testing")
		if err := EmbedAudio(s, envelope, depth); err != nil {
			t.Fatalf("depth %d: EmbedAudio: %v", depth, err)
		}
		got, err := ExtractAudio(s, depth)
		if err != nil {
			t.Fatalf("depth %d: ExtractAudio: %v", depth, err)
		}
		if !bytes.Equal(got, envelope) {
			t.Fatalf("depth %d: round trip mismatch: got %q want %q", depth, got, envelope)
		}
	}
}

func TestAudioEmbedRejectsOverCapacity(t *testing.T) {
	s := makeSamples(10, 2)
	err := EmbedAudio(s, []byte("far too much data for ten samples"), 1)
	if err == nil {
		t.Fatal("expected CapacityExceeded")
	}
}
