// Package payload implements the container format wrapped inside the
// encrypted envelope: a version byte, a length-prefixed JSON metadata
// record, and the opaque payload bytes, with a legacy fallback for
// version-less buffers. Grounded on the teacher's models/error.go style
// of returning a fixed taxonomy of errors, generalized from the teacher's
// MP3-only metadata (which only ever carried a filename via ID3 tags) to
// the spec's richer {type,timestamp,name,mimeType} record.
package payload

import (
	"encoding/binary"
	"encoding/json"
	"unicode/utf16"

	"github.com/rfani/stegolock/models"
)

const (
	version          = 1
	maxMetadataBytes = 10240
	maxNameUTF16     = 255
	maxMimeBytes     = 100
	headerSize       = 5 // version(1) + length(4)
)

// Metadata is the sanitized, JSON-serialized record stored ahead of the
// opaque payload bytes.
type Metadata struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Name      string `json:"name,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
}

// Packed is the result of unpacking a container: the sanitized metadata and
// the raw payload bytes it describes.
type Packed struct {
	Metadata Metadata
	Data     []byte
}

// NowFunc supplies the Unix timestamp that Pack records when meta.Timestamp
// is zero and that Unpack records for legacy buffers. This package never
// calls time.Now itself: tests pass a fixed clock, and the service package
// passes a wall-clock function.
type NowFunc func() int64

// Pack sanitizes meta, JSON-serializes it, and emits
// [version][len u32-LE][json][data].
func Pack(meta Metadata, data []byte, now NowFunc) ([]byte, error) {
	sanitized := sanitize(meta, now)

	js, err := json.Marshal(sanitized)
	if err != nil {
		return nil, models.NewDecryptFailureError()
	}
	if len(js) > maxMetadataBytes {
		return nil, models.NewDecryptFailureError()
	}

	out := make([]byte, headerSize+len(js)+len(data))
	out[0] = version
	binary.LittleEndian.PutUint32(out[1:5], uint32(len(js)))
	copy(out[5:5+len(js)], js)
	copy(out[5+len(js):], data)
	return out, nil
}

// Unpack reverses Pack. Buffers whose version byte is not 1 are treated as
// legacy raw payloads: the whole buffer becomes Data and Metadata gets the
// fixed legacy defaults.
func Unpack(buf []byte, now NowFunc) (*Packed, error) {
	if len(buf) < 1 {
		return nil, models.NewDecryptFailureError()
	}
	if buf[0] != version {
		return &Packed{
			Metadata: Metadata{Type: "file", Timestamp: now(), Name: "recovered_data.bin"},
			Data:     buf,
		}, nil
	}
	if len(buf) < headerSize {
		return nil, models.NewDecryptFailureError()
	}

	m := binary.LittleEndian.Uint32(buf[1:5])
	if m == 0 || int(m) > maxMetadataBytes || headerSize+int(m) > len(buf) {
		return nil, models.NewDecryptFailureError()
	}

	var meta Metadata
	if err := json.Unmarshal(buf[headerSize:headerSize+int(m)], &meta); err != nil {
		return nil, models.NewDecryptFailureError()
	}
	if meta.Type != "text" && meta.Type != "file" {
		return nil, models.NewDecryptFailureError()
	}

	meta.Name = sanitizeName(meta.Name)
	if len(meta.MimeType) > maxMimeBytes {
		meta.MimeType = meta.MimeType[:maxMimeBytes]
	}

	return &Packed{
		Metadata: meta,
		Data:     buf[headerSize+int(m):],
	}, nil
}

func sanitize(meta Metadata, now NowFunc) Metadata {
	if meta.Type != "text" && meta.Type != "file" {
		meta.Type = "file"
	}
	if meta.Timestamp == 0 {
		meta.Timestamp = now()
	}
	meta.Name = sanitizeName(meta.Name)
	if len(meta.MimeType) > maxMimeBytes {
		meta.MimeType = meta.MimeType[:maxMimeBytes]
	}
	return meta
}

// isForbiddenNameRune reports the filename characters the spec forbids in a
// sanitized name: <>:"/\|?* plus control characters U+0000..U+001F.
func isForbiddenNameRune(r rune) bool {
	if r <= 0x1F {
		return true
	}
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return true
	}
	return false
}

// sanitizeName truncates to 255 UTF-16 code units (matching the source
// format's truncation unit, which can split a surrogate pair - this
// implementation truncates by UTF-16 code unit, not code point or byte, to
// stay bit-compatible with carriers produced by the original tool) and then
// strips forbidden characters.
func sanitizeName(name string) string {
	if name == "" {
		return ""
	}
	units := utf16.Encode([]rune(name))
	if len(units) > maxNameUTF16 {
		units = units[:maxNameUTF16]
	}
	runes := utf16.Decode(units)

	filtered := make([]rune, 0, len(runes))
	for _, r := range runes {
		if !isForbiddenNameRune(r) {
			filtered = append(filtered, r)
		}
	}
	return string(filtered)
}
