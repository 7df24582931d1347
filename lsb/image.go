package lsb

import (
	"github.com/rfani/stegolock/bitio"
	"github.com/rfani/stegolock/models"
)

// ImageCapacity returns the maximum envelope size, in bytes, that a W*H
// raster can carry at the given LSB depth: floor(W*H*3*d/8) - 8, the 8
// bytes being the message-frame header.
func ImageCapacity(width, height, depth int) int {
	bits := width * height * 3 * depth
	return bits/8 - frameHeaderSize
}

// EmbedImage writes the framed envelope into the low `depth` bits of the R,
// G, B channels of r, visiting pixels in row-major order and channels in R,
// G, B order (alpha is never touched as a capacity channel, only forced to
// 255 on every pixel whose RGB was written). r is mutated in place.
//
// The loop is bounded by an exact cell count (ceil(totalBits/depth)), not
// by draining the bit reader until it reports no bits left: the message's
// bit length isn't generally a multiple of depth (e.g. depth 3 needs the
// byte-aligned frame length to also be a multiple of 3), so a
// Remaining()>0 guard would spin forever on a final 1-2 bit remainder
// that ReadBits refuses to return. ReadBitsPadded always returns a full
// depth-wide group, zero-padding the trailing bits of the last cell.
func EmbedImage(r *models.Raster, envelope []byte, depth int) error {
	msg := frame(envelope)
	capacity := ImageCapacity(r.Width, r.Height, depth)
	if len(envelope) > capacity {
		return models.NewCapacityExceededError("lsb: envelope exceeds image capacity at this depth")
	}

	br := bitio.NewReader(msg)
	mask := byte(0xFF << uint(depth))
	totalBits := len(msg) * 8
	cellsNeeded := (totalBits + depth - 1) / depth
	written := 0

	for y := 0; y < r.Height && written < cellsNeeded; y++ {
		for x := 0; x < r.Width && written < cellsNeeded; x++ {
			off := r.At(x, y)
			touched := false
			for c := 0; c < 3 && written < cellsNeeded; c++ {
				bits, _ := br.ReadBitsPadded(depth)
				r.Pix[off+c] = (r.Pix[off+c] & mask) | bits
				written++
				touched = true
			}
			if touched {
				r.Pix[off+3] = 255
			}
		}
	}
	return nil
}

// ExtractImage reads back the low `depth` bits of every R,G,B channel in
// row-major pixel order and unframes the resulting bit stream into an
// envelope.
func ExtractImage(r *models.Raster, depth int) ([]byte, error) {
	totalCells := r.Width * r.Height * 3
	totalBits := totalCells * depth
	if totalBits < frameHeaderSize*8 {
		return nil, models.NewNoHiddenDataError()
	}

	readMask := byte(0xFF >> uint(8-depth))
	bw := bitio.NewWriter()
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			off := r.At(x, y)
			for c := 0; c < 3; c++ {
				v := r.Pix[off+c] & readMask
				bw.WriteBits(v, depth)
			}
		}
	}
	raw := bw.Bytes()

	if len(raw) < frameHeaderSize {
		return nil, models.NewNoHiddenDataError()
	}
	return unframe(totalBits, raw[:frameHeaderSize], raw[frameHeaderSize:])
}
