package domain

import "fmt"

// Opcode represents the DNS operation requested by a message.
// Only the low 4 bits travel in the header flags word.
type Opcode uint8

// DNS Opcode constants (RFC 1035, RFC 2136)
const (
	OpcodeQuery  Opcode = 0 // QUERY - Standard query
	OpcodeIQuery Opcode = 1 // IQUERY - Inverse query (obsolete)
	OpcodeStatus Opcode = 2 // STATUS - Server status request
	OpcodeNotify Opcode = 4 // NOTIFY - Zone change notification
	OpcodeUpdate Opcode = 5 // UPDATE - Dynamic update
)

// String returns the textual representation of the Opcode.
func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	case OpcodeNotify:
		return "NOTIFY"
	case OpcodeUpdate:
		return "UPDATE"
	default:
		return fmt.Sprintf("OPCODE%d", uint8(o))
	}
}
