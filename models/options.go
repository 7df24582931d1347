package models

// Platform is a configuration input describing the caller's deployment
// target, not a runtime discovery - a host picks this ahead of time and
// passes it in, the core never probes its environment for it.
type Platform string

const (
	PlatformDesktop Platform = "desktop"
	PlatformMobile  Platform = "mobile"
)

// EncodeOptions mirrors the public "encode" operation's options from
// spec.md §6.
type EncodeOptions struct {
	LSBDepth     int
	HighSecurity bool
	Compress     bool
	Platform     Platform
	Expert       bool
}

// DecodeOptions mirrors the public "decode" operation's options.
type DecodeOptions struct {
	LSBDepth int
	Platform Platform
	Expert   bool
}

// PayloadKind distinguishes an inline text secret from a named file secret.
type PayloadKind string

const (
	PayloadText PayloadKind = "text"
	PayloadFile PayloadKind = "file"
)

// Payload is the caller-supplied secret to embed. For PayloadText, Bytes
// holds the UTF-8 text. Name and MimeType, when set, are stored in the
// container metadata for either kind.
type Payload struct {
	Kind     PayloadKind
	Bytes    []byte
	Name     string
	MimeType string
}

// DecodedPayload is what decode() hands back: the recovered bytes plus the
// metadata that traveled alongside them in the payload container.
type DecodedPayload struct {
	Bytes    []byte
	Kind     PayloadKind
	Name     string
	MimeType string
}

// EncodeResult is the output of encode(): the new stego carrier bytes, its
// kind (always equal to the input carrier's kind), and an optional PSNR
// quality diagnostic (see CalculatePSNR in the service package).
type EncodeResult struct {
	StegoBytes []byte
	StegoKind  CarrierKind
	PSNR       float64
	Warnings   []string
}
