package domain

// Flag masks for the second 16-bit word of a DNS header (RFC 1035 §4.1.1).
const (
	maskQR     uint16 = 0x8000 // bit 15: query/response
	maskOpcode uint16 = 0x7800 // bits 14-11: operation code
	maskAA     uint16 = 0x0400 // bit 10: authoritative answer
	maskTC     uint16 = 0x0200 // bit 9: truncated
	maskRD     uint16 = 0x0100 // bit 8: recursion desired
	maskRA     uint16 = 0x0080 // bit 7: recursion available
	maskZ      uint16 = 0x0070 // bits 6-4: reserved
	maskRCode  uint16 = 0x000F // bits 3-0: response code

	opcodeShift = 11
	zShift      = 4
)

// Flags holds the unpacked flag bits of a DNS header.
type Flags struct {
	Response           bool   // QR: true for responses, false for queries
	Opcode             Opcode // 4-bit operation code
	Authoritative      bool   // AA
	Truncated          bool   // TC: response did not fit the transport
	RecursionDesired   bool   // RD
	RecursionAvailable bool   // RA
	Zero               uint8  // Z: 3 reserved bits, preserved verbatim
	RCode              RCode  // 4-bit response code
}

// Header represents the fixed 12-byte DNS message header.
// The four count fields mirror the wire values: populated by decoding,
// derived from section lengths when encoding.
type Header struct {
	ID      uint16
	Flags   Flags
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// Pack folds the flags into the 16-bit wire representation.
func (f Flags) Pack() uint16 {
	var v uint16
	if f.Response {
		v |= maskQR
	}
	v |= (uint16(f.Opcode) << opcodeShift) & maskOpcode
	if f.Authoritative {
		v |= maskAA
	}
	if f.Truncated {
		v |= maskTC
	}
	if f.RecursionDesired {
		v |= maskRD
	}
	if f.RecursionAvailable {
		v |= maskRA
	}
	v |= (uint16(f.Zero) << zShift) & maskZ
	v |= uint16(f.RCode) & maskRCode
	return v
}

// UnpackFlags expands the 16-bit wire representation into a Flags value.
func UnpackFlags(v uint16) Flags {
	return Flags{
		Response:           v&maskQR != 0,
		Opcode:             Opcode((v & maskOpcode) >> opcodeShift),
		Authoritative:      v&maskAA != 0,
		Truncated:          v&maskTC != 0,
		RecursionDesired:   v&maskRD != 0,
		RecursionAvailable: v&maskRA != 0,
		Zero:               uint8((v & maskZ) >> zShift),
		RCode:              RCode(v & maskRCode),
	}
}
