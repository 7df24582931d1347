// Package crypto implements the encrypted envelope: PBKDF2-HMAC-SHA256 key
// derivation, AES-256-GCM authenticated encryption, and optional gzip
// compression of the plaintext before encryption. Grounded on the
// zanicar-stegano cmd/stegano CLI's AES-GCM + zlib pairing (stdlib
// crypto/aes, crypto/cipher, compress/zlib), generalized to PBKDF2 key
// derivation (golang.org/x/crypto/pbkdf2, used across the retrieved pack's
// go.mod manifests) instead of a bare SHA-256 hash of the password, and to
// a salt-based per-operation key rather than a fixed passphrase hash.
package crypto

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/rfani/stegolock/models"
)

const (
	saltSize              = 16
	nonceSize             = 12
	keySize               = 32 // AES-256
	iterationsDefault     = 100000
	iterationsHighSecurty = 310000

	flagCompressed   = 1 << 0
	flagHighSecurity = 1 << 1

	envelopeHeaderMin = 1 + 4 + saltSize + nonceSize

	// EnvelopeOverhead is the number of bytes Seal adds to its input
	// besides the (possibly compressed) plaintext itself: flag byte, salt
	// length field, salt, nonce, and the GCM auth tag. Callers that need a
	// capacity estimate before calling Seal use this bound.
	EnvelopeOverhead = envelopeHeaderMin + 16
)

// Options controls the envelope's key-derivation strength and whether the
// plaintext is compressed before encryption.
type Options struct {
	HighSecurity bool
	Compress     bool
}

// Seal derives a key from password and a fresh random salt, optionally
// gzip-compresses plaintext, and produces an AES-256-GCM envelope:
// [flags][saltLen LE u32][salt][nonce][ciphertext+tag].
func Seal(plaintext []byte, password string, opts Options) ([]byte, error) {
	var flags byte
	data := plaintext

	if opts.Compress {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(plaintext); err != nil {
			return nil, models.NewDecryptFailureError()
		}
		if err := gw.Close(); err != nil {
			return nil, models.NewDecryptFailureError()
		}
		data = buf.Bytes()
		flags |= flagCompressed
	}

	iterations := iterationsDefault
	if opts.HighSecurity {
		iterations = iterationsHighSecurty
		flags |= flagHighSecurity
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, models.NewDecryptFailureError()
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, models.NewDecryptFailureError()
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, models.NewDecryptFailureError()
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, models.NewDecryptFailureError()
	}

	ciphertext := gcm.Seal(nil, nonce, data, nil)

	out := make([]byte, envelopeHeaderMin+len(ciphertext))
	out[0] = flags
	binary.LittleEndian.PutUint32(out[1:5], saltSize)
	copy(out[5:5+saltSize], salt)
	copy(out[5+saltSize:5+saltSize+nonceSize], nonce)
	copy(out[5+saltSize+nonceSize:], ciphertext)
	return out, nil
}

// Open reverses Seal. Every failure mode - truncated envelope, wrong salt
// length, auth tag mismatch, wrong password - collapses into the same
// opaque DecryptFailure error so a caller cannot distinguish them.
func Open(envelope []byte, password string) ([]byte, error) {
	if len(envelope) < envelopeHeaderMin {
		return nil, models.NewDecryptFailureError()
	}

	flags := envelope[0]
	saltLen := binary.LittleEndian.Uint32(envelope[1:5])
	if saltLen != saltSize {
		return nil, models.NewDecryptFailureError()
	}

	salt := envelope[5 : 5+saltSize]
	nonce := envelope[5+saltSize : 5+saltSize+nonceSize]
	ciphertext := envelope[5+saltSize+nonceSize:]
	if len(ciphertext) < 16 {
		return nil, models.NewDecryptFailureError()
	}

	iterations := iterationsDefault
	if flags&flagHighSecurity != 0 {
		iterations = iterationsHighSecurty
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, models.NewDecryptFailureError()
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, models.NewDecryptFailureError()
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, models.NewDecryptFailureError()
	}

	if flags&flagCompressed != 0 {
		gr, err := gzip.NewReader(bytes.NewReader(plaintext))
		if err != nil {
			return nil, models.NewDecryptFailureError()
		}
		defer gr.Close()
		out, err := io.ReadAll(gr)
		if err != nil {
			return nil, models.NewDecryptFailureError()
		}
		return out, nil
	}
	return plaintext, nil
}
