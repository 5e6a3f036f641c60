package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodeNSData encodes an NS record value into its binary representation.
func encodeNSData(data domain.RData) ([]byte, error) {
	name, ok := data.(domain.NameData)
	if !ok {
		return nil, fmt.Errorf("NS record requires a host name, got %s", describeRData(data))
	}
	return EncodeName(name.Name)
}

// decodeNSData decodes an NS (Name Server) record's data from the message.
func decodeNSData(msg []byte, off, rdlen int) (domain.RData, error) {
	return decodeNameData(msg, off, rdlen)
}
