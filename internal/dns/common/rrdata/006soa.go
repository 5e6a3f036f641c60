package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodeSOAData encodes an SOA record value into its binary representation.
func encodeSOAData(data domain.RData) ([]byte, error) {
	soa, ok := data.(domain.SOAData)
	if !ok {
		return nil, fmt.Errorf("SOA record requires SOA fields, got %s", describeRData(data))
	}

	// mname is the primary name server for the zone
	mname, err := EncodeName(soa.MName)
	if err != nil {
		return nil, fmt.Errorf("invalid SOA mname: %w", err)
	}

	// rname is the mailbox of the zone administrator, encoded as a name
	// (e.g. "hostmaster.example.com" for hostmaster@example.com)
	rname, err := EncodeName(soa.RName)
	if err != nil {
		return nil, fmt.Errorf("invalid SOA rname: %w", err)
	}

	// The remaining five fields are 32-bit unsigned integers:
	// serial, refresh, retry, expire, minimum
	u32 := make([]byte, 20)
	binary.BigEndian.PutUint32(u32[0:], soa.Serial)
	binary.BigEndian.PutUint32(u32[4:], soa.Refresh)
	binary.BigEndian.PutUint32(u32[8:], soa.Retry)
	binary.BigEndian.PutUint32(u32[12:], soa.Expire)
	binary.BigEndian.PutUint32(u32[16:], soa.Minimum)

	var encoded []byte
	encoded = append(encoded, mname...)
	encoded = append(encoded, rname...)
	encoded = append(encoded, u32...)
	return encoded, nil
}

// decodeSOAData decodes an SOA record from the message. Both names may be
// compressed, so the fixed integer block is located by how many bytes the
// names actually consumed.
func decodeSOAData(msg []byte, off, rdlen int) (domain.RData, error) {
	end := off + rdlen

	mname, pos, err := DecodeName(msg, off)
	if err != nil {
		return nil, err
	}
	rname, pos, err := DecodeName(msg, pos)
	if err != nil {
		return nil, err
	}
	if end-pos != 20 {
		return nil, nil
	}

	return domain.SOAData{
		MName:   mname,
		RName:   rname,
		Serial:  binary.BigEndian.Uint32(msg[pos:]),
		Refresh: binary.BigEndian.Uint32(msg[pos+4:]),
		Retry:   binary.BigEndian.Uint32(msg[pos+8:]),
		Expire:  binary.BigEndian.Uint32(msg[pos+12:]),
		Minimum: binary.BigEndian.Uint32(msg[pos+16:]),
	}, nil
}
