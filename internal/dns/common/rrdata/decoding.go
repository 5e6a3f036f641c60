package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// Decode decodes a record value based on its type, from its wire
// representation. msg is the entire DNS message and off/rdlen delimit the
// record's RDATA within it, so names inside the data can follow compression
// pointers into earlier parts of the response.
//
// A record whose data does not match its type's structure decodes to a nil
// value rather than failing the whole message. Names that violate RFC 1035
// encoding rules and data that runs past the end of the message are hard
// errors. Types without a structured decoder pass through as raw bytes.
func Decode(rrType domain.RRType, msg []byte, off, rdlen int) (domain.RData, error) {
	if off < 0 || rdlen < 0 || off+rdlen > len(msg) {
		return nil, fmt.Errorf("%s record data outside message bounds: %w", rrType, domain.ErrTruncated)
	}
	if rdlen == 0 {
		return nil, nil
	}
	switch rrType {
	case domain.RRTypeA: // 1
		return decodeAData(msg, off, rdlen)
	case domain.RRTypeNS: // 2
		return decodeNSData(msg, off, rdlen)
	case domain.RRTypeCNAME: // 5
		return decodeCNAMEData(msg, off, rdlen)
	case domain.RRTypeSOA: // 6
		return decodeSOAData(msg, off, rdlen)
	case domain.RRTypePTR: // 12
		return decodePTRData(msg, off, rdlen)
	case domain.RRTypeMX: // 15
		return decodeMXData(msg, off, rdlen)
	case domain.RRTypeTXT: // 16
		return decodeTXTData(msg, off, rdlen)
	case domain.RRTypeAAAA: // 28
		return decodeAAAAData(msg, off, rdlen)
	case domain.RRTypeSRV: // 33
		return decodeSRVData(msg, off, rdlen)
	case domain.RRTypeCAA: // 257
		return decodeCAAData(msg, off, rdlen)
	default:
		raw := make(domain.RawData, rdlen)
		copy(raw, msg[off:off+rdlen])
		return raw, nil
	}
}
