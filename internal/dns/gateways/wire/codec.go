// Package wire encodes and decodes complete DNS messages in the RFC 1035
// wire format, including compressed domain names on decode.
package wire

import (
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// Codec converts DNS messages between their in-memory and wire
// representations.
type Codec interface {
	// Encode serializes a message, deriving the header section counts from
	// the section slice lengths.
	Encode(msg domain.Message) ([]byte, error)

	// Decode parses a complete DNS message, resolving compressed names
	// against the whole buffer.
	Decode(data []byte) (domain.Message, error)
}
