package lsb

import (
	"github.com/rfani/stegolock/bitio"
	"github.com/rfani/stegolock/models"
)

// AudioCapacity returns the maximum envelope size, in bytes, that n 16-bit
// samples can carry at the given LSB depth: floor(n*d/8) - 8.
func AudioCapacity(n, depth int) int {
	bits := n * depth
	return bits/8 - frameHeaderSize
}

// EmbedAudio writes the framed envelope into the low `depth` bits of every
// sample in s, visited in index order; stereo interleaving is ignored,
// samples are interchangeable bit cells. s is mutated in place.
//
// As in EmbedImage, the loop runs an exact ceil(totalBits/depth) count of
// samples rather than draining the reader via Remaining()>0, since the
// message's bit length need not be a multiple of depth.
func EmbedAudio(s *models.Samples, envelope []byte, depth int) error {
	msg := frame(envelope)
	capacity := AudioCapacity(len(s.Data), depth)
	if len(envelope) > capacity {
		return models.NewCapacityExceededError("lsb: envelope exceeds audio capacity at this depth")
	}

	br := bitio.NewReader(msg)
	mask := int16(int32(0xFFFF) << uint(depth))
	totalBits := len(msg) * 8
	cellsNeeded := (totalBits + depth - 1) / depth

	for i := 0; i < cellsNeeded; i++ {
		bits, _ := br.ReadBitsPadded(depth)
		s.Data[i] = (s.Data[i] & mask) | int16(bits)
	}
	return nil
}

// ExtractAudio reads back the low `depth` bits of every sample in index
// order and unframes the resulting bit stream into an envelope.
func ExtractAudio(s *models.Samples, depth int) ([]byte, error) {
	totalBits := len(s.Data) * depth
	if totalBits < frameHeaderSize*8 {
		return nil, models.NewNoHiddenDataError()
	}

	readMask := int16(uint16(0xFFFF) >> uint(16-depth))
	bw := bitio.NewWriter()
	for i := 0; i < len(s.Data); i++ {
		v := s.Data[i] & readMask
		bw.WriteBits(byte(v), depth)
	}
	raw := bw.Bytes()

	if len(raw) < frameHeaderSize {
		return nil, models.NewNoHiddenDataError()
	}
	return unframe(totalBits, raw[:frameHeaderSize], raw[frameHeaderSize:])
}
