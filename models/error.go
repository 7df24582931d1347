package models

// Kind is the closed taxonomy of errors the core can surface. Every failure
// inside the core collapses into one of these; callers switch on Kind
// rather than matching message text (DecryptFailure's message text is
// itself part of the contract though - see Error).
type Kind string

const (
	KindUnsupportedFormat Kind = "unsupported_format"
	KindCarrierCorrupt    Kind = "carrier_corrupt"
	KindCapacityExceeded  Kind = "capacity_exceeded"
	KindDepthPolicy       Kind = "depth_policy"
	KindNoHiddenData      Kind = "no_hidden_data"
	KindDecryptFailure    Kind = "decrypt_failure"
	KindCancelled         Kind = "cancelled"
)

// decryptFailureMessage is surfaced verbatim for every crypto, framing, or
// metadata failure during decode. Distinguishing these by message would
// open a padding-oracle-style attack on the format, so the text is fixed
// and never includes the underlying cause.
const decryptFailureMessage = "Decryption failed - wrong password or corrupted data"

// Error is the single public error type. It carries a Kind tag plus a
// short, human-readable sentence - no stack traces, no wrapped causes.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewUnsupportedFormatError(reason string) *Error {
	return newError(KindUnsupportedFormat, reason)
}

func NewCarrierCorruptError(reason string) *Error {
	return newError(KindCarrierCorrupt, reason)
}

func NewCapacityExceededError(reason string) *Error {
	return newError(KindCapacityExceeded, reason)
}

func NewDepthPolicyError(reason string) *Error {
	return newError(KindDepthPolicy, reason)
}

func NewNoHiddenDataError() *Error {
	return newError(KindNoHiddenData, "no hidden data found - magic mismatch or invalid length field")
}

// NewDecryptFailureError always returns the same Kind and the same message
// text, regardless of what went wrong. This is intentional: see
// decryptFailureMessage.
func NewDecryptFailureError() *Error {
	return newError(KindDecryptFailure, decryptFailureMessage)
}

func NewCancelledError() *Error {
	return newError(KindCancelled, "operation cancelled")
}

// ErrorResponse and ErrorDetail are the teacher's own HTTP error envelope
// shape, kept as-is for the handlers layer.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
