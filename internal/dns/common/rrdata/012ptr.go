package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodePTRData encodes a PTR record value into its binary representation.
func encodePTRData(data domain.RData) ([]byte, error) {
	name, ok := data.(domain.NameData)
	if !ok {
		return nil, fmt.Errorf("PTR record requires a pointer name, got %s", describeRData(data))
	}
	return EncodeName(name.Name)
}

// decodePTRData decodes a PTR (Pointer) record's data from the message.
func decodePTRData(msg []byte, off, rdlen int) (domain.RData, error) {
	return decodeNameData(msg, off, rdlen)
}
