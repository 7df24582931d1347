package service

import (
	"time"

	"github.com/rfani/stegolock/codec/bmp"
	"github.com/rfani/stegolock/codec/png"
	"github.com/rfani/stegolock/codec/wav"
	"github.com/rfani/stegolock/crypto"
	"github.com/rfani/stegolock/lsb"
	"github.com/rfani/stegolock/models"
	"github.com/rfani/stegolock/payload"
	"github.com/rfani/stegolock/validate"
)

// stegoService implements SteganographyService, orchestrating the codec,
// lsb, payload, and crypto packages behind the three public operations.
// Grounded on the teacher's stegoService shape (a struct depending on
// injected CryptographyService and AudioService collaborators), with the
// MP3-frame-index bit placement replaced by the spec's RGB-channel and
// PCM-sample LSB engines.
type stegoService struct {
	crypto CryptographyService
	audio  AudioService
}

// NewStegoService creates a new steganography service instance.
func NewStegoService(crypto CryptographyService, audio AudioService) SteganographyService {
	return &stegoService{crypto: crypto, audio: audio}
}

func wallClock() int64 { return time.Now().Unix() }

func decodeCarrier(kind models.CarrierKind, data []byte) (raster *models.Raster, samples *models.Samples, err error) {
	switch kind {
	case models.CarrierPNG:
		raster, err = png.Decode(data)
	case models.CarrierBMP:
		raster, err = bmp.Decode(data)
	case models.CarrierWAV:
		samples, err = wav.Decode(data)
	default:
		err = models.NewUnsupportedFormatError("unsupported carrier kind")
	}
	return
}

func encodeCarrier(kind models.CarrierKind, raster *models.Raster, samples *models.Samples) ([]byte, error) {
	switch kind {
	case models.CarrierPNG:
		return png.Encode(raster)
	case models.CarrierBMP:
		return bmp.Encode(raster)
	case models.CarrierWAV:
		return wav.Encode(samples)
	default:
		return nil, models.NewUnsupportedFormatError("unsupported carrier kind")
	}
}

// checkDeclaredKind validates that kind is one of the supported carrier
// kinds and that it matches what data actually sniffs as. A caller-supplied
// kind that isn't even in the enum (a stray string from a malformed
// request) gets its own clear error instead of falling through to the
// generic mismatch message.
func checkDeclaredKind(kind models.CarrierKind, data []byte) error {
	if !kind.IsValid() {
		return models.NewUnsupportedFormatError("unsupported carrier kind: " + string(kind))
	}
	sniffed, err := validate.SniffCarrierKind(data)
	if err != nil {
		return err
	}
	if sniffed != kind {
		return models.NewUnsupportedFormatError("declared carrier kind does not match its contents")
	}
	return nil
}

func capacityForDepth(kind models.CarrierKind, raster *models.Raster, samples *models.Samples, depth int) int {
	if kind == models.CarrierWAV {
		return lsb.AudioCapacity(len(samples.Data), depth)
	}
	return lsb.ImageCapacity(raster.Width, raster.Height, depth)
}

// CalculateCapacity reports the embedding capacity, in bytes, at every LSB
// depth 1-4 for the given carrier.
func (s *stegoService) CalculateCapacity(carrierBytes []byte, kind models.CarrierKind) (*models.CapacityResult, error) {
	if err := checkDeclaredKind(kind, carrierBytes); err != nil {
		return nil, err
	}

	raster, samples, err := decodeCarrier(kind, carrierBytes)
	if err != nil {
		return nil, err
	}

	res := &models.CapacityResult{
		OneLSB:   capacityForDepth(kind, raster, samples, 1),
		TwoLSB:   capacityForDepth(kind, raster, samples, 2),
		ThreeLSB: capacityForDepth(kind, raster, samples, 3),
		FourLSB:  capacityForDepth(kind, raster, samples, 4),
	}
	return res, nil
}

// Encode implements the public "encode" operation of spec.md §6.
func (s *stegoService) Encode(carrierBytes []byte, kind models.CarrierKind, p models.Payload, password string, opts models.EncodeOptions) (*models.EncodeResult, error) {
	if err := checkDeclaredKind(kind, carrierBytes); err != nil {
		return nil, err
	}
	if err := validate.CarrierSizeCeiling(kind, len(carrierBytes), opts.Platform); err != nil {
		return nil, err
	}

	depthWarning, err := validate.DepthPolicy(opts.LSBDepth, opts.Platform, opts.Expert)
	if err != nil {
		return nil, err
	}

	raster, samples, err := decodeCarrier(kind, carrierBytes)
	if err != nil {
		return nil, err
	}

	meta := payload.Metadata{Name: p.Name, MimeType: p.MimeType}
	if p.Kind == models.PayloadText {
		meta.Type = "text"
	} else {
		meta.Type = "file"
	}
	packed, err := payload.Pack(meta, p.Bytes, wallClock)
	if err != nil {
		return nil, err
	}
	if err := validate.PayloadSizeCeiling(len(packed), opts.Platform); err != nil {
		return nil, err
	}

	// Precheck capacity against an estimate of the envelope size (the
	// uncompressed container plus crypto.EnvelopeOverhead) before running
	// any crypto. gzip adds its own header and trailer, so a small or
	// incompressible payload can seal to more than this estimate; the exact
	// envelope length is checked again after Seal.
	capacity := capacityForDepth(kind, raster, samples, opts.LSBDepth)
	estimatedEnvelopeLen := len(packed) + crypto.EnvelopeOverhead
	if _, err := validate.CapacityPrecheck(estimatedEnvelopeLen, capacity); err != nil {
		return nil, err
	}

	envelope, err := s.crypto.Seal(packed, password, crypto.Options{
		HighSecurity: opts.HighSecurity,
		Compress:     opts.Compress,
	})
	if err != nil {
		return nil, err
	}

	densityWarnings, err := validate.CapacityPrecheck(len(envelope), capacity)
	if err != nil {
		return nil, err
	}
	var warnings []string
	if depthWarning != "" {
		warnings = append(warnings, depthWarning)
	}
	warnings = append(warnings, densityWarnings...)

	var psnr float64
	switch kind {
	case models.CarrierWAV:
		original := make([]int16, len(samples.Data))
		copy(original, samples.Data)
		if err := lsb.EmbedAudio(samples, envelope, opts.LSBDepth); err != nil {
			return nil, err
		}
		psnr = s.audio.CalculatePSNR(original, samples.Data)
	default:
		originalPix := make([]byte, len(raster.Pix))
		copy(originalPix, raster.Pix)
		if err := lsb.EmbedImage(raster, envelope, opts.LSBDepth); err != nil {
			return nil, err
		}
		psnr = s.audio.CalculatePSNR(bytesToSamples(originalPix), bytesToSamples(raster.Pix))
	}

	stegoBytes, err := encodeCarrier(kind, raster, samples)
	if err != nil {
		return nil, err
	}

	return &models.EncodeResult{
		StegoBytes: stegoBytes,
		StegoKind:  kind,
		PSNR:       psnr,
		Warnings:   warnings,
	}, nil
}

// Decode implements the public "decode" operation of spec.md §6.
func (s *stegoService) Decode(stegoBytes []byte, kind models.CarrierKind, password string, opts models.DecodeOptions) (*models.DecodedPayload, error) {
	if err := checkDeclaredKind(kind, stegoBytes); err != nil {
		return nil, err
	}
	if err := validate.CarrierSizeCeiling(kind, len(stegoBytes), opts.Platform); err != nil {
		return nil, err
	}
	if _, err := validate.DepthPolicy(opts.LSBDepth, opts.Platform, opts.Expert); err != nil {
		return nil, err
	}

	raster, samples, err := decodeCarrier(kind, stegoBytes)
	if err != nil {
		return nil, err
	}

	var envelope []byte
	if kind == models.CarrierWAV {
		envelope, err = lsb.ExtractAudio(samples, opts.LSBDepth)
	} else {
		envelope, err = lsb.ExtractImage(raster, opts.LSBDepth)
	}
	if err != nil {
		return nil, err
	}

	plaintext, err := s.crypto.Open(envelope, password)
	if err != nil {
		return nil, err
	}

	unpacked, err := payload.Unpack(plaintext, wallClock)
	if err != nil {
		return nil, err
	}

	kindOut := models.PayloadFile
	if unpacked.Metadata.Type == "text" {
		kindOut = models.PayloadText
	}

	return &models.DecodedPayload{
		Bytes:    unpacked.Data,
		Kind:     kindOut,
		Name:     unpacked.Metadata.Name,
		MimeType: unpacked.Metadata.MimeType,
	}, nil
}

// bytesToSamples reinterprets a raw byte slice as a sequence of signed
// 16-bit values, two bytes at a time, so image PSNR can reuse the same
// sample-domain diagnostic the audio path uses.
func bytesToSamples(b []byte) []int16 {
	n := len(b) / 2
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		out[i] = int16(uint16(b[i*2]) | uint16(b[i*2+1])<<8)
	}
	return out
}
