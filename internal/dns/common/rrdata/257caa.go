package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodeCAAData encodes a CAA record value into its binary representation:
// 1 byte of flags, 1 byte of tag length, the tag, then the value.
func encodeCAAData(data domain.RData) ([]byte, error) {
	caa, ok := data.(domain.CAAData)
	if !ok {
		return nil, fmt.Errorf("CAA record requires flags, tag and value, got %s", describeRData(data))
	}
	if len(caa.Tag) == 0 || len(caa.Tag) > maxCharString {
		return nil, fmt.Errorf("invalid CAA tag length: %d", len(caa.Tag))
	}
	encoded := []byte{caa.Flags, byte(len(caa.Tag))}
	encoded = append(encoded, caa.Tag...)
	encoded = append(encoded, caa.Value...)
	return encoded, nil
}

// decodeCAAData decodes a CAA record from its binary representation.
// The value portion is opaque: for issue/issuewild it is a CA domain (often
// without a trailing dot), for iodef it can be a mailto: or https: URI, so
// it passes through unchanged.
func decodeCAAData(msg []byte, off, rdlen int) (domain.RData, error) {
	if rdlen < 2 {
		return nil, nil
	}
	flags := msg[off]
	tagLen := int(msg[off+1])
	if tagLen == 0 || 2+tagLen > rdlen {
		return nil, nil
	}
	return domain.CAAData{
		Flags: flags,
		Tag:   string(msg[off+2 : off+2+tagLen]),
		Value: string(msg[off+2+tagLen : off+rdlen]),
	}, nil
}
