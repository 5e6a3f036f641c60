package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodeTXTData encodes a TXT record value into its binary representation.
// Each segment becomes one length-prefixed character-string,
// see RFC 1035 section 3.3.14.
func encodeTXTData(data domain.RData) ([]byte, error) {
	txt, ok := data.(domain.TXTData)
	if !ok {
		return nil, fmt.Errorf("TXT record requires text segments, got %s", describeRData(data))
	}
	if len(txt.Segments) == 0 {
		return nil, fmt.Errorf("TXT record must contain at least one segment")
	}
	var encoded []byte
	for _, segment := range txt.Segments {
		if len(segment) > maxCharString {
			return nil, fmt.Errorf("TXT segment too long: %d bytes", len(segment))
		}
		encoded = append(encoded, byte(len(segment)))
		encoded = append(encoded, segment...)
	}
	return encoded, nil
}

// decodeTXTData decodes a TXT record's character-strings from the message.
func decodeTXTData(msg []byte, off, rdlen int) (domain.RData, error) {
	end := off + rdlen
	var segments []string
	for pos := off; pos < end; {
		segLen := int(msg[pos])
		pos++
		if pos+segLen > end {
			return nil, nil
		}
		segments = append(segments, string(msg[pos:pos+segLen]))
		pos += segLen
	}
	return domain.TXTData{Segments: segments}, nil
}
