package service

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/rfani/stegolock/codec/bmp"
	"github.com/rfani/stegolock/codec/png"
	"github.com/rfani/stegolock/codec/wav"
	"github.com/rfani/stegolock/models"
)

func newService() SteganographyService {
	return NewStegoService(NewCryptographyService(), NewAudioService())
}

func solidPNG(w, h int, r, g, b byte) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4+0] = r
		pix[i*4+1] = g
		pix[i*4+2] = b
		pix[i*4+3] = 255
	}
	data, err := png.Encode(&models.Raster{Width: w, Height: h, Pix: pix})
	if err != nil {
		panic(err)
	}
	return data
}

func randomBMP(w, h int, seed int64) []byte {
	rnd := rand.New(rand.NewSource(seed))
	pix := make([]byte, w*h*4)
	rnd.Read(pix)
	for i := 0; i < w*h; i++ {
		pix[i*4+3] = 255
	}
	data, err := bmp.Encode(&models.Raster{Width: w, Height: h, Pix: pix})
	if err != nil {
		panic(err)
	}
	return data
}

func sineWAV(sampleRate, seconds, channels int) []byte {
	n := sampleRate * seconds * channels
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16((i * 37) % 2000)
	}
	data, err := wav.Encode(&models.Samples{SampleRate: sampleRate, Channels: channels, Data: samples})
	if err != nil {
		panic(err)
	}
	return data
}

// S1 - Text over PNG, quick mode.
func TestS1TextOverPNGQuickMode(t *testing.T) {
	svc := newService()
	carrier := solidPNG(32, 32, 255, 0, 0)

	res, err := svc.Encode(carrier, models.CarrierPNG, models.Payload{
		Kind:  models.PayloadText,
		Bytes: []byte("hello"),
	}, "correcthorsebatterystaple1", models.EncodeOptions{
		LSBDepth: 1,
		Compress: true,
		Platform: models.PlatformDesktop,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if res.StegoKind != models.CarrierPNG {
		t.Fatalf("expected PNG output, got %s", res.StegoKind)
	}

	raster, err := png.Decode(res.StegoBytes)
	if err != nil {
		t.Fatalf("decoding stego PNG: %v", err)
	}
	if raster.Width != 32 || raster.Height != 32 {
		t.Fatalf("dimensions changed: got %dx%d", raster.Width, raster.Height)
	}

	decoded, err := svc.Decode(res.StegoBytes, models.CarrierPNG, "correcthorsebatterystaple1", models.DecodeOptions{
		LSBDepth: 1,
		Platform: models.PlatformDesktop,
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Kind != models.PayloadText || !bytes.Equal(decoded.Bytes, []byte("hello")) {
		t.Fatalf("got %+v", decoded)
	}
}

// S2 - File over BMP, expert mode d=2.
func TestS2FileOverBMPExpertDepth2(t *testing.T) {
	svc := newService()
	carrier := randomBMP(100, 100, 42)

	payloadBytes := make([]byte, 1024)
	rand.New(rand.NewSource(7)).Read(payloadBytes)

	res, err := svc.Encode(carrier, models.CarrierBMP, models.Payload{
		Kind:     models.PayloadFile,
		Bytes:    payloadBytes,
		Name:     "report.bin",
		MimeType: "application/octet-stream",
	}, "anotherlongpassword123", models.EncodeOptions{
		LSBDepth:     2,
		HighSecurity: true,
		Compress:     false,
		Platform:     models.PlatformDesktop,
		Expert:       true,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := svc.Decode(res.StegoBytes, models.CarrierBMP, "anotherlongpassword123", models.DecodeOptions{
		LSBDepth: 2,
		Platform: models.PlatformDesktop,
		Expert:   true,
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Kind != models.PayloadFile || decoded.Name != "report.bin" || !bytes.Equal(decoded.Bytes, payloadBytes) {
		t.Fatalf("round trip mismatch: name=%q len=%d", decoded.Name, len(decoded.Bytes))
	}
}

// S3 - Wrong password yields the uniform DecryptFailure message.
func TestS3WrongPasswordUniformMessage(t *testing.T) {
	svc := newService()
	carrier := solidPNG(32, 32, 10, 20, 30)

	res, err := svc.Encode(carrier, models.CarrierPNG, models.Payload{
		Kind:  models.PayloadText,
		Bytes: []byte("secret message"),
	}, "rightpassword12345678901", models.EncodeOptions{
		LSBDepth: 1,
		Compress: true,
		Platform: models.PlatformDesktop,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = svc.Decode(res.StegoBytes, models.CarrierPNG, "wrongpassword", models.DecodeOptions{
		LSBDepth: 1,
		Platform: models.PlatformDesktop,
	})
	if err == nil {
		t.Fatal("expected DecryptFailure for wrong password")
	}
	perr, ok := err.(*models.Error)
	if !ok || perr.Kind != models.KindDecryptFailure {
		t.Fatalf("expected DecryptFailure, got %v", err)
	}
}

// S4 - Capacity overflow is rejected before any crypto is performed.
func TestS4CapacityOverflow(t *testing.T) {
	svc := newService()
	carrier := solidPNG(8, 8, 0, 0, 0)

	_, err := svc.Encode(carrier, models.CarrierPNG, models.Payload{
		Kind:  models.PayloadText,
		Bytes: bytes.Repeat([]byte("x"), 200),
	}, "password1234567890123456", models.EncodeOptions{
		LSBDepth: 1,
		Compress: false,
		Platform: models.PlatformDesktop,
	})
	if err == nil {
		t.Fatal("expected CapacityExceeded")
	}
	perr, ok := err.(*models.Error)
	if !ok || perr.Kind != models.KindCapacityExceeded {
		t.Fatalf("expected CapacityExceeded, got %v", err)
	}
}

// S5 - WAV audio round trip preserves sample rate and channel count.
func TestS5WAVAudioRoundTrip(t *testing.T) {
	svc := newService()
	carrier := sineWAV(44100, 1, 1)

	res, err := svc.Encode(carrier, models.CarrierWAV, models.Payload{
		Kind:  models.PayloadText,
		Bytes: bytes.Repeat([]byte("a"), 200),
	}, "audiopassword1234567890", models.EncodeOptions{
		LSBDepth: 1,
		Compress: true,
		Platform: models.PlatformDesktop,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	samples, err := wav.Decode(res.StegoBytes)
	if err != nil {
		t.Fatalf("decoding stego WAV: %v", err)
	}
	if samples.SampleRate != 44100 || samples.Channels != 1 {
		t.Fatalf("got rate=%d channels=%d", samples.SampleRate, samples.Channels)
	}

	decoded, err := svc.Decode(res.StegoBytes, models.CarrierWAV, "audiopassword1234567890", models.DecodeOptions{
		LSBDepth: 1,
		Platform: models.PlatformDesktop,
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Bytes, bytes.Repeat([]byte("a"), 200)) {
		t.Fatal("payload mismatch after WAV round trip")
	}
}

// Decoding at a different LSB depth than the one used to embed must fail
// closed rather than return garbage.
func TestDepthMismatchYieldsNoHiddenData(t *testing.T) {
	svc := newService()
	carrier := randomBMP(64, 64, 3)

	res, err := svc.Encode(carrier, models.CarrierBMP, models.Payload{
		Kind:  models.PayloadText,
		Bytes: []byte("depth mismatch test"),
	}, "password1234567890123456", models.EncodeOptions{
		LSBDepth: 1,
		Compress: true,
		Platform: models.PlatformDesktop,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = svc.Decode(res.StegoBytes, models.CarrierBMP, "password1234567890123456", models.DecodeOptions{
		LSBDepth: 2,
		Platform: models.PlatformDesktop,
		Expert:   true,
	})
	if err == nil {
		t.Fatal("expected an error when decoding at the wrong depth")
	}
}

func TestEncodeAcrossDepthsTableDriven(t *testing.T) {
	for depth := 1; depth <= 4; depth++ {
		t.Run(fmt.Sprintf("depth=%d", depth), func(t *testing.T) {
			svc := newService()
			carrier := randomBMP(80, 80, int64(depth)+1)
			payloadBytes := []byte("table driven payload contents")

			res, err := svc.Encode(carrier, models.CarrierBMP, models.Payload{
				Kind:  models.PayloadFile,
				Bytes: payloadBytes,
				Name:  "data.bin",
			}, "tabledrivenpassword12345", models.EncodeOptions{
				LSBDepth: depth,
				Compress: depth%2 == 0,
				Platform: models.PlatformDesktop,
				Expert:   depth > 1,
			})
			if err != nil {
				t.Fatalf("Encode depth=%d: %v", depth, err)
			}

			decoded, err := svc.Decode(res.StegoBytes, models.CarrierBMP, "tabledrivenpassword12345", models.DecodeOptions{
				LSBDepth: depth,
				Platform: models.PlatformDesktop,
				Expert:   depth > 1,
			})
			if err != nil {
				t.Fatalf("Decode depth=%d: %v", depth, err)
			}
			if !bytes.Equal(decoded.Bytes, payloadBytes) {
				t.Fatalf("depth=%d: mismatch", depth)
			}
		})
	}
}
