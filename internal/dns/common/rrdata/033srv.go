package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodeSRVData encodes an SRV record value into its binary representation.
// The target name is written uncompressed, per RFC 2782.
func encodeSRVData(data domain.RData) ([]byte, error) {
	srv, ok := data.(domain.SRVData)
	if !ok {
		return nil, fmt.Errorf("SRV record requires priority, weight, port and target, got %s", describeRData(data))
	}
	target, err := EncodeName(srv.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid SRV target: %w", err)
	}
	encoded := make([]byte, 6, 6+len(target))
	binary.BigEndian.PutUint16(encoded[0:], srv.Priority)
	binary.BigEndian.PutUint16(encoded[2:], srv.Weight)
	binary.BigEndian.PutUint16(encoded[4:], srv.Port)
	return append(encoded, target...), nil
}

// decodeSRVData decodes an SRV record from the message.
func decodeSRVData(msg []byte, off, rdlen int) (domain.RData, error) {
	// 3 uint16 fields plus at least a root name
	if rdlen < 7 {
		return nil, nil
	}
	target, end, err := DecodeName(msg, off+6)
	if err != nil {
		return nil, err
	}
	if end-off != rdlen {
		return nil, nil
	}
	return domain.SRVData{
		Priority: binary.BigEndian.Uint16(msg[off:]),
		Weight:   binary.BigEndian.Uint16(msg[off+2:]),
		Port:     binary.BigEndian.Uint16(msg[off+4:]),
		Target:   target,
	}, nil
}
