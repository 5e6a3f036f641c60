package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodeMXData encodes an MX record value into its binary representation.
func encodeMXData(data domain.RData) ([]byte, error) {
	mx, ok := data.(domain.MXData)
	if !ok {
		return nil, fmt.Errorf("MX record requires preference and exchange, got %s", describeRData(data))
	}
	exchange, err := EncodeName(mx.Exchange)
	if err != nil {
		return nil, fmt.Errorf("invalid MX exchange: %w", err)
	}
	encoded := make([]byte, 2, 2+len(exchange))
	binary.BigEndian.PutUint16(encoded, mx.Preference)
	return append(encoded, exchange...), nil
}

// decodeMXData decodes MX (Mail Exchange) record data from the message.
func decodeMXData(msg []byte, off, rdlen int) (domain.RData, error) {
	// 2 bytes of preference plus at least a root name
	if rdlen < 3 {
		return nil, nil
	}
	pref := binary.BigEndian.Uint16(msg[off:])
	exchange, end, err := DecodeName(msg, off+2)
	if err != nil {
		return nil, err
	}
	if end-off != rdlen {
		return nil, nil
	}
	return domain.MXData{Preference: pref, Exchange: exchange}, nil
}
