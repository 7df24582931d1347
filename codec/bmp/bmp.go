// Package bmp implements a minimal BI_RGB BMP decoder (24/32-bit, top-down
// or bottom-up) and a fixed 32-bit top-down BGRA encoder, per spec.
package bmp

import (
	"encoding/binary"

	"github.com/rfani/stegolock/models"
)

const (
	fileHeaderSize = 14
	maxDimension   = 32768
)

// Sniff reports whether data begins with the "BM" BMP magic.
func Sniff(data []byte) bool {
	return len(data) >= 2 && data[0] == 'B' && data[1] == 'M'
}

// Decode parses a BI_RGB 24 or 32-bit BMP into an RGBA raster.
func Decode(data []byte) (*models.Raster, error) {
	if !Sniff(data) {
		return nil, models.NewCarrierCorruptError("bmp: bad signature")
	}
	if len(data) < fileHeaderSize+40 {
		return nil, models.NewCarrierCorruptError("bmp: header truncated")
	}

	dataOffset := int(binary.LittleEndian.Uint32(data[10:14]))
	width := int(int32(binary.LittleEndian.Uint32(data[18:22])))
	heightRaw := int32(binary.LittleEndian.Uint32(data[22:26]))
	bpp := binary.LittleEndian.Uint16(data[28:30])

	if bpp != 24 && bpp != 32 {
		return nil, models.NewUnsupportedFormatError("bmp: only 24 and 32 bits-per-pixel BI_RGB are supported")
	}

	topDown := heightRaw < 0
	height := int(heightRaw)
	if topDown {
		height = -height
	}

	if width <= 0 || width > maxDimension || height <= 0 || height > maxDimension {
		return nil, models.NewCarrierCorruptError("bmp: invalid dimensions")
	}
	if dataOffset < 0 || dataOffset >= len(data) {
		return nil, models.NewCarrierCorruptError("bmp: invalid pixel data offset")
	}

	bytesPerPixel := int(bpp) / 8
	rowStride := ((width*int(bpp) + 31) / 32) * 4
	need := dataOffset + rowStride*height
	if need > len(data) {
		return nil, models.NewCarrierCorruptError("bmp: pixel data runs past end of file")
	}

	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		srcRow := y
		if !topDown {
			srcRow = height - 1 - y
		}
		rowOff := dataOffset + srcRow*rowStride
		dstRowOff := y * width * 4
		for x := 0; x < width; x++ {
			s := rowOff + x*bytesPerPixel
			d := dstRowOff + x*4
			b := data[s+0]
			g := data[s+1]
			r := data[s+2]
			a := byte(255)
			if bytesPerPixel == 4 {
				a = data[s+3]
			}
			pix[d+0] = r
			pix[d+1] = g
			pix[d+2] = b
			pix[d+3] = a
		}
	}

	return &models.Raster{Width: width, Height: height, Pix: pix}, nil
}

// Encode always emits 32-bit top-down BGRA, unpadded rows, 2835 ppm
// resolution, no palette - the fixed encoder profile the spec mandates.
func Encode(r *models.Raster) ([]byte, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, models.NewCarrierCorruptError("bmp: invalid raster dimensions")
	}

	rowStride := r.Width * 4
	pixelDataSize := rowStride * r.Height
	dataOffset := fileHeaderSize + 40
	fileSize := dataOffset + pixelDataSize

	buf := make([]byte, fileSize)

	// BITMAPFILEHEADER
	buf[0] = 'B'
	buf[1] = 'M'
	binary.LittleEndian.PutUint32(buf[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(buf[10:14], uint32(dataOffset))

	// BITMAPINFOHEADER
	binary.LittleEndian.PutUint32(buf[14:18], 40) // header size
	binary.LittleEndian.PutUint32(buf[18:22], uint32(r.Width))
	binary.LittleEndian.PutUint32(buf[22:26], uint32(int32(-r.Height))) // negative = top-down
	binary.LittleEndian.PutUint16(buf[26:28], 1)                       // planes
	binary.LittleEndian.PutUint16(buf[28:30], 32)                      // bpp
	binary.LittleEndian.PutUint32(buf[30:34], 0)                       // BI_RGB, no compression
	binary.LittleEndian.PutUint32(buf[34:38], uint32(pixelDataSize))
	binary.LittleEndian.PutUint32(buf[38:42], 2835) // x ppm
	binary.LittleEndian.PutUint32(buf[42:46], 2835) // y ppm
	binary.LittleEndian.PutUint32(buf[46:50], 0)    // colors used
	binary.LittleEndian.PutUint32(buf[50:54], 0)    // important colors

	for y := 0; y < r.Height; y++ {
		srcRowOff := y * r.Width * 4
		dstRowOff := dataOffset + y*rowStride
		for x := 0; x < r.Width; x++ {
			s := srcRowOff + x*4
			d := dstRowOff + x*4
			buf[d+0] = r.Pix[s+2] // B
			buf[d+1] = r.Pix[s+1] // G
			buf[d+2] = r.Pix[s+0] // R
			buf[d+3] = r.Pix[s+3] // A
		}
	}

	return buf, nil
}
