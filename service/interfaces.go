package service

import (
	"github.com/rfani/stegolock/crypto"
	"github.com/rfani/stegolock/models"
)

// SteganographyService defines the interface for steganography operations:
// the three public operations of spec.md §6 (encode, decode,
// analyze_capacity).
type SteganographyService interface {
	// CalculateCapacity reports embedding capacity in bytes for each LSB
	// depth 1-4, given the raw carrier bytes and its sniffed kind.
	CalculateCapacity(carrierBytes []byte, kind models.CarrierKind) (*models.CapacityResult, error)

	// Encode embeds a password-encrypted payload into carrierBytes and
	// returns the new stego carrier.
	Encode(carrierBytes []byte, kind models.CarrierKind, payload models.Payload, password string, opts models.EncodeOptions) (*models.EncodeResult, error)

	// Decode recovers the original payload and its metadata from a stego
	// carrier, given the password it was encrypted with.
	Decode(stegoBytes []byte, kind models.CarrierKind, password string, opts models.DecodeOptions) (*models.DecodedPayload, error)
}

// CryptographyService defines the interface for the encrypted envelope.
type CryptographyService interface {
	Seal(plaintext []byte, password string, opts crypto.Options) ([]byte, error)
	Open(envelope []byte, password string) ([]byte, error)
}

// AudioService defines the interface for audio/image sample-quality
// diagnostics.
type AudioService interface {
	// CalculatePSNR calculates Peak Signal-to-Noise Ratio between original
	// and modified 16-bit sample sequences.
	CalculatePSNR(original, modified []int16) float64
}
