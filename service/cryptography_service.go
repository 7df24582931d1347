package service

import (
	"log"

	"github.com/rfani/stegolock/crypto"
)

// cryptographyService implements the CryptographyService interface,
// wrapping the AES-256-GCM + PBKDF2 envelope. Replaces the teacher's
// VigenereCipher (reversible XOR, unauthenticated) with an AEAD - see
// DESIGN.md for why the XOR algorithm itself could not be kept while the
// interface shape (a single injected service the orchestrator calls for
// both directions) is unchanged.
type cryptographyService struct{}

// NewCryptographyService creates a new cryptography service instance.
func NewCryptographyService() CryptographyService {
	return &cryptographyService{}
}

// Seal encrypts plaintext under password, per the options requested.
func (c *cryptographyService) Seal(plaintext []byte, password string, opts crypto.Options) ([]byte, error) {
	log.Printf("[DEBUG] Seal: encrypting %d bytes (compress=%v, high_security=%v)", len(plaintext), opts.Compress, opts.HighSecurity)
	envelope, err := crypto.Seal(plaintext, password, opts)
	if err != nil {
		log.Printf("[ERROR] Seal: %v", err)
		return nil, err
	}
	log.Printf("[DEBUG] Seal: produced %d byte envelope", len(envelope))
	return envelope, nil
}

// Open decrypts an envelope produced by Seal. Every internal failure mode
// is collapsed to the same opaque error by the crypto package itself.
func (c *cryptographyService) Open(envelope []byte, password string) ([]byte, error) {
	plaintext, err := crypto.Open(envelope, password)
	if err != nil {
		log.Printf("[DEBUG] Open: envelope failed to decrypt")
		return nil, err
	}
	log.Printf("[DEBUG] Open: recovered %d bytes of plaintext", len(plaintext))
	return plaintext, nil
}
