// Package validate implements the public-API boundary checks of spec.md
// §4.9: platform-aware size ceilings, the carrier format whitelist, LSB
// depth policy, and the capacity precheck with density warnings. Grounded
// on the teacher's models/error.go sentinel-error style, generalized to the
// Kind-tagged models.Error taxonomy the rest of this module shares.
package validate

import (
	"github.com/rfani/stegolock/codec/bmp"
	"github.com/rfani/stegolock/codec/png"
	"github.com/rfani/stegolock/codec/wav"
	"github.com/rfani/stegolock/models"
)

const (
	desktopImageCeiling   = 100 * 1024 * 1024
	desktopAudioCeiling   = 200 * 1024 * 1024
	desktopPayloadCeiling = 50 * 1024 * 1024

	mobileImageCeiling   = 20 * 1024 * 1024
	mobileAudioCeiling   = 20 * 1024 * 1024
	mobilePayloadCeiling = 10 * 1024 * 1024
)

// MaxUploadBytes returns the largest platform-aware carrier ceiling for
// platform (audio carriers are allowed larger than image carriers on
// desktop), for callers that need a single upload-size cap before they
// even know which carrier kind a request is sniffed as.
func MaxUploadBytes(platform models.Platform) int {
	if platform == models.PlatformMobile {
		return mobileAudioCeiling
	}
	return desktopAudioCeiling
}

// SniffCarrierKind identifies a carrier's format from its own magic bytes,
// independent of any caller-supplied extension or MIME type.
func SniffCarrierKind(data []byte) (models.CarrierKind, error) {
	switch {
	case png.Sniff(data):
		return models.CarrierPNG, nil
	case bmp.Sniff(data):
		return models.CarrierBMP, nil
	case wav.Sniff(data):
		return models.CarrierWAV, nil
	default:
		return "", models.NewUnsupportedFormatError("carrier format not recognized: only PNG, BMP, and 16-bit PCM WAV are supported")
	}
}

// CarrierSizeCeiling checks a carrier's byte length against the
// platform-aware ceiling for its kind.
func CarrierSizeCeiling(kind models.CarrierKind, size int, platform models.Platform) error {
	var limit int
	switch kind {
	case models.CarrierPNG, models.CarrierBMP:
		if platform == models.PlatformMobile {
			limit = mobileImageCeiling
		} else {
			limit = desktopImageCeiling
		}
	case models.CarrierWAV:
		if platform == models.PlatformMobile {
			limit = mobileAudioCeiling
		} else {
			limit = desktopAudioCeiling
		}
	default:
		return models.NewUnsupportedFormatError("unknown carrier kind")
	}
	if size > limit {
		return models.NewCapacityExceededError("carrier exceeds the platform size ceiling")
	}
	return nil
}

// PayloadSizeCeiling checks a plaintext payload's byte length against the
// platform-aware ceiling.
func PayloadSizeCeiling(size int, platform models.Platform) error {
	limit := desktopPayloadCeiling
	if platform == models.PlatformMobile {
		limit = mobilePayloadCeiling
	}
	if size > limit {
		return models.NewCapacityExceededError("payload exceeds the platform size ceiling")
	}
	return nil
}

// DepthPolicy enforces spec.md §4.9's LSB depth policy: depth 1 is
// mandatory on mobile or outside expert mode; depths 2-4 require expert
// mode on desktop. It returns a detectability warning (not an error) for
// depth > 2 whenever the depth itself is otherwise permitted.
func DepthPolicy(depth int, platform models.Platform, expert bool) (warning string, err error) {
	if depth < 1 || depth > 4 {
		return "", models.NewDepthPolicyError("lsb depth must be between 1 and 4")
	}
	if depth == 1 {
		return "", nil
	}
	if platform == models.PlatformMobile {
		return "", models.NewDepthPolicyError("lsb depth greater than 1 requires desktop platform")
	}
	if !expert {
		return "", models.NewDepthPolicyError("lsb depth greater than 1 requires expert mode")
	}
	if depth > 2 {
		return "depth greater than 2 significantly increases detectability", nil
	}
	return "", nil
}

// CapacityPrecheck verifies an envelope fits within a carrier's capacity at
// the requested depth, returning density warnings at 50%/80% occupancy.
func CapacityPrecheck(envelopeLen, capacityBytes int) (warnings []string, err error) {
	if envelopeLen > capacityBytes {
		return nil, models.NewCapacityExceededError("encrypted payload exceeds carrier capacity at this depth")
	}
	if capacityBytes <= 0 {
		return nil, nil
	}
	density := float64(envelopeLen) / float64(capacityBytes)
	switch {
	case density > 0.8:
		warnings = append(warnings, "high density: embedded data uses more than 80% of available capacity")
	case density > 0.5:
		warnings = append(warnings, "near capacity: embedded data uses more than 50% of available capacity")
	}
	return warnings, nil
}
