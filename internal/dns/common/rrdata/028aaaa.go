package rrdata

import (
	"fmt"
	"net"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodeAAAAData encodes an AAAA record value into its binary representation.
func encodeAAAAData(data domain.RData) ([]byte, error) {
	ip, ok := data.(domain.IPData)
	if !ok || !isIPv6(ip.IP) {
		return nil, fmt.Errorf("AAAA record requires an IPv6 address, got %s", describeRData(data))
	}
	return ip.IP.To16(), nil
}

// decodeAAAAData decodes an AAAA record from its binary representation.
func decodeAAAAData(msg []byte, off, rdlen int) (domain.RData, error) {
	if rdlen != net.IPv6len {
		return nil, nil
	}
	ip := make(net.IP, net.IPv6len)
	copy(ip, msg[off:off+rdlen])
	return domain.IPData{IP: ip}, nil
}
