package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodeCNAMEData encodes a CNAME record value into its binary representation.
func encodeCNAMEData(data domain.RData) ([]byte, error) {
	name, ok := data.(domain.NameData)
	if !ok {
		return nil, fmt.Errorf("CNAME record requires a target name, got %s", describeRData(data))
	}
	return EncodeName(name.Name)
}

// decodeCNAMEData decodes a CNAME record's data from the message.
func decodeCNAMEData(msg []byte, off, rdlen int) (domain.RData, error) {
	return decodeNameData(msg, off, rdlen)
}
