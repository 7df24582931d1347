package service

import (
	"log"
	"math"
)

// audioService implements the AudioService interface.
type audioService struct{}

// NewAudioService creates a new audio service instance.
func NewAudioService() AudioService {
	return &audioService{}
}

// CalculatePSNR calculates Peak Signal-to-Noise Ratio between original and
// modified 16-bit sample sets. Used for both audio and image carriers (an
// image's RGBA pixel bytes, alpha included, are compared the same way, two
// bytes at a time, by the caller reshaping them into int16 values first).
func (a *audioService) CalculatePSNR(original, modified []int16) float64 {
	if len(original) != len(modified) {
		log.Printf("[WARN] CalculatePSNR: length mismatch - original: %d, modified: %d", len(original), len(modified))
		return 0.0
	}
	if len(original) == 0 {
		return 0.0
	}

	var mse float64
	for i := range original {
		diff := float64(original[i]) - float64(modified[i])
		mse += diff * diff
	}
	mse /= float64(len(original))

	if mse == 0 {
		return math.Inf(1)
	}

	const maxValue = 32767.0
	psnr := 20 * math.Log10(maxValue/math.Sqrt(mse))
	log.Printf("[DEBUG] CalculatePSNR: MSE=%.6f, PSNR=%.2f dB (samples: %d)", mse, psnr, len(original))
	return psnr
}
