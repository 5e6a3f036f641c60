package rrdata

import (
	"fmt"
	"net"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// encodeAData encodes an A record value into its binary representation.
func encodeAData(data domain.RData) ([]byte, error) {
	ip, ok := data.(domain.IPData)
	if !ok || !isIPv4(ip.IP) {
		return nil, fmt.Errorf("A record requires an IPv4 address, got %s", describeRData(data))
	}
	return ip.IP.To4(), nil
}

// decodeAData decodes an A record from its binary representation.
func decodeAData(msg []byte, off, rdlen int) (domain.RData, error) {
	if rdlen != net.IPv4len {
		return nil, nil
	}
	ip := make(net.IP, net.IPv4len)
	copy(ip, msg[off:off+rdlen])
	return domain.IPData{IP: ip}, nil
}
