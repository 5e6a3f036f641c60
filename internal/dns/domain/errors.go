package domain

import "errors"

// Encode-side failures. These indicate the outgoing question could never be
// valid on the wire, so retrying the same call cannot succeed.
var (
	// ErrInvalidName indicates a name that cannot be canonicalized or encoded.
	ErrInvalidName = errors.New("invalid domain name")

	// ErrLabelTooLong indicates a single label longer than 63 octets.
	ErrLabelTooLong = errors.New("label exceeds 63 octets")

	// ErrNameTooLong indicates an encoded name longer than 255 octets.
	ErrNameTooLong = errors.New("name exceeds 255 octets")

	// ErrMessageTooLarge indicates a message that cannot fit a 16-bit length frame.
	ErrMessageTooLarge = errors.New("message exceeds 65535 octets")
)

// Decode-side failures. These indicate the response bytes violate RFC 1035
// structure and the message cannot be trusted.
var (
	// ErrMalformedName indicates a broken name encoding: a compression pointer
	// that points forward or into itself, reserved prefix bits, or a label
	// running past the end of the buffer.
	ErrMalformedName = errors.New("malformed domain name")

	// ErrTruncated indicates fewer bytes remain than a header or record declares.
	ErrTruncated = errors.New("truncated message")
)

// Transport failures.
var (
	// ErrTimeout indicates no response arrived within the configured bound.
	// Retrying is the caller's decision; the client never retries internally.
	ErrTimeout = errors.New("query timed out")

	// ErrNetwork indicates a socket or connection level failure.
	ErrNetwork = errors.New("network failure")

	// ErrShortRead indicates a TCP stream that closed before delivering the
	// length its own prefix declared.
	ErrShortRead = errors.New("connection closed before full message")
)

// ErrNoAnswers is returned by Resolve when the response decoded cleanly but
// contained no usable answer data.
var ErrNoAnswers = errors.New("no answers")
