// Package wav implements a RIFF/WAVE chunk walker that extracts 16-bit PCM
// samples, and a canonical 44-byte-header encoder. Grounded on the
// teacher's service/utils.go parseWAVHeader (which only hunted for the
// data chunk) and audio_service.go EncodeToWAV (hardcoded to stereo and a
// fixed byte rate formula) - both generalized here to arbitrary channel
// count and sample rate and to require (not just look for) a fmt chunk.
package wav

import (
	"encoding/binary"

	"github.com/rfani/stegolock/models"
)

// Sniff reports whether data begins with a RIFF/WAVE header.
func Sniff(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// Decode walks the RIFF chunk list and extracts 16-bit PCM samples.
func Decode(data []byte) (*models.Samples, error) {
	if !Sniff(data) {
		return nil, models.NewCarrierCorruptError("wav: missing RIFF/WAVE header")
	}

	var (
		haveFmt                      bool
		audioFormat, bitsPerSample   uint16
		channels                     uint16
		sampleRate                   uint32
		pcm                          []byte
		haveData                     bool
	)

	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := binary.LittleEndian.Uint32(data[off+4 : off+8])
		body := off + 8
		end := body + int(size)
		if end > len(data) {
			return nil, models.NewCarrierCorruptError("wav: chunk runs past end of file")
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, models.NewCarrierCorruptError("wav: fmt chunk too short")
			}
			audioFormat = binary.LittleEndian.Uint16(data[body : body+2])
			channels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			sampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			bitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			haveFmt = true
		case "data":
			pcm = data[body:end]
			haveData = true
		}

		next := end
		if size%2 == 1 {
			next++ // chunks are padded to even byte boundaries
		}
		if next <= off {
			return nil, models.NewCarrierCorruptError("wav: malformed chunk size")
		}
		off = next
	}

	if !haveFmt {
		return nil, models.NewCarrierCorruptError("wav: missing fmt chunk")
	}
	if !haveData {
		return nil, models.NewCarrierCorruptError("wav: missing data chunk")
	}
	if audioFormat != 1 {
		return nil, models.NewUnsupportedFormatError("wav: only PCM (format 1) is supported")
	}
	if bitsPerSample != 16 {
		return nil, models.NewUnsupportedFormatError("wav: only 16-bit PCM is supported")
	}
	if channels == 0 {
		return nil, models.NewCarrierCorruptError("wav: invalid channel count")
	}

	n := len(pcm) / 2
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}

	return &models.Samples{
		SampleRate: int(sampleRate),
		Channels:   int(channels),
		Data:       samples,
	}, nil
}

// Encode emits a canonical 44-byte WAV header followed by the samples as
// little-endian signed 16-bit PCM.
func Encode(s *models.Samples) ([]byte, error) {
	if s.Channels <= 0 {
		return nil, models.NewCarrierCorruptError("wav: invalid channel count")
	}

	dataSize := len(s.Data) * 2
	blockAlign := s.Channels * 2
	byteRate := s.SampleRate * blockAlign

	buf := make([]byte, 44+dataSize)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(s.Channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(s.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], 16) // bits per sample

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for i, v := range s.Data {
		binary.LittleEndian.PutUint16(buf[44+i*2:46+i*2], uint16(v))
	}

	return buf, nil
}
