package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// Encode encodes a record value based on its type, to its wire
// representation. Names inside record data are always written uncompressed.
// Types without a structured encoder accept raw bytes only.
func Encode(rrType domain.RRType, data domain.RData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("%s record has no data to encode", rrType)
	}
	switch rrType {
	case domain.RRTypeA: // 1
		return encodeAData(data)
	case domain.RRTypeNS: // 2
		return encodeNSData(data)
	case domain.RRTypeCNAME: // 5
		return encodeCNAMEData(data)
	case domain.RRTypeSOA: // 6
		return encodeSOAData(data)
	case domain.RRTypePTR: // 12
		return encodePTRData(data)
	case domain.RRTypeMX: // 15
		return encodeMXData(data)
	case domain.RRTypeTXT: // 16
		return encodeTXTData(data)
	case domain.RRTypeAAAA: // 28
		return encodeAAAAData(data)
	case domain.RRTypeSRV: // 33
		return encodeSRVData(data)
	case domain.RRTypeCAA: // 257
		return encodeCAAData(data)
	default:
		raw, ok := data.(domain.RawData)
		if !ok {
			return nil, fmt.Errorf("%s record requires raw bytes, got %s", rrType, describeRData(data))
		}
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	}
}
