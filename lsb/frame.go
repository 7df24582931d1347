// Package lsb implements the LSB bit-stream engines over image rasters and
// audio samples, plus the shared message-frame wrapper both engines embed:
// "STEG" magic + big-endian u32 length + envelope bytes.
package lsb

import (
	"encoding/binary"

	"github.com/rfani/stegolock/models"
)

var magic = [4]byte{'S', 'T', 'E', 'G'}

const frameHeaderSize = 8 // 4 magic + 4 length

// frame wraps an envelope into the wire message frame.
func frame(envelope []byte) []byte {
	out := make([]byte, frameHeaderSize+len(envelope))
	copy(out[0:4], magic[:])
	binary.BigEndian.PutUint32(out[4:8], uint32(len(envelope)))
	copy(out[8:], envelope)
	return out
}

// unframe validates the magic and length field of a reconstituted bit
// stream and returns the envelope bytes it encloses.
func unframe(totalBits int, header []byte, rest []byte) ([]byte, error) {
	if header[0] != magic[0] || header[1] != magic[1] || header[2] != magic[2] || header[3] != magic[3] {
		return nil, models.NewNoHiddenDataError()
	}
	l := binary.BigEndian.Uint32(header[4:8])
	maxLen := uint32((totalBits - frameHeaderSize*8) / 8)
	if l == 0 || l > maxLen {
		return nil, models.NewNoHiddenDataError()
	}
	if len(rest) < int(l) {
		return nil, models.NewNoHiddenDataError()
	}
	return rest[:l], nil
}
