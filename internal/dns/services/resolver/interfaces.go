package resolver

import (
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// MessageCodec translates between domain messages and RFC 1035 wire bytes.
// The service layer depends on this interface rather than a concrete codec
// so tests can substitute their own.
type MessageCodec interface {
	// Encode serializes a message for transmission.
	Encode(msg domain.Message) ([]byte, error)

	// Decode parses a received message, resolving compressed names.
	Decode(data []byte) (domain.Message, error)
}
