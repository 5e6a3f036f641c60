// Package rrdata encodes and decodes the RDATA portion of DNS resource
// records. Decoders receive the entire message so that domain names inside
// record data can follow compression pointers anywhere in the response.
package rrdata

import (
	"fmt"
	"net"
	"strings"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

const (
	// maxLabelLength and maxNameLength are the RFC 1035 section 2.3.4 size
	// limits for a single label and a full encoded name.
	maxLabelLength = 63
	maxNameLength  = 255

	// maxCharString is the RFC 1035 section 3.3 limit for one
	// character-string, as used by TXT segments and CAA tags.
	maxCharString = 255

	// maxPointerHops bounds compression pointer chases for a single name.
	maxPointerHops = 32
)

// EncodeName encodes a domain name into uncompressed wire format
// (length-prefixed labels ending in a zero octet). The root name "." and the
// empty string both encode to a lone zero octet.
func EncodeName(name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return []byte{0x00}, nil
	}
	labels := strings.Split(name, ".")
	encoded := make([]byte, 0, len(name)+2)
	for _, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("empty label in %q: %w", name, domain.ErrInvalidName)
		}
		if len(label) > maxLabelLength {
			return nil, fmt.Errorf("label %q is %d octets: %w", label, len(label), domain.ErrLabelTooLong)
		}
		encoded = append(encoded, byte(len(label)))
		encoded = append(encoded, label...)
	}
	encoded = append(encoded, 0x00)
	if len(encoded) > maxNameLength {
		return nil, fmt.Errorf("name %q encodes to %d octets: %w", name, len(encoded), domain.ErrNameTooLong)
	}
	return encoded, nil
}

// DecodeName reads a possibly compressed domain name from msg starting at
// off. It returns the decoded name and the offset of the first byte after
// the name at its original position; bytes reached through compression
// pointers do not count toward that offset. Compression pointers must jump
// strictly backward: each target must be lower than the name's own start and
// lower than any target already followed.
func DecodeName(msg []byte, off int) (string, int, error) {
	if off < 0 || off >= len(msg) {
		return "", 0, fmt.Errorf("name offset %d outside message of %d bytes: %w", off, len(msg), domain.ErrTruncated)
	}
	var labels []string
	pos := off
	next := -1   // offset after the name at its original position
	floor := pos // lowest offset this name may point to, exclusive
	hops := 0
	nameLen := 0
	for {
		if pos >= len(msg) {
			return "", 0, fmt.Errorf("name runs past end of message: %w", domain.ErrTruncated)
		}
		b := msg[pos]
		switch {
		case b == 0x00:
			if next == -1 {
				next = pos + 1
			}
			if len(labels) == 0 {
				return ".", next, nil
			}
			return strings.Join(labels, "."), next, nil

		case b&0xC0 == 0xC0:
			if pos+1 >= len(msg) {
				return "", 0, fmt.Errorf("compression pointer at offset %d missing second octet: %w", pos, domain.ErrTruncated)
			}
			target := int(b&0x3F)<<8 | int(msg[pos+1])
			if target >= floor {
				return "", 0, fmt.Errorf("compression pointer at offset %d targets %d (must be below %d): %w", pos, target, floor, domain.ErrMalformedName)
			}
			hops++
			if hops > maxPointerHops {
				return "", 0, fmt.Errorf("compression chain exceeds %d pointers: %w", maxPointerHops, domain.ErrMalformedName)
			}
			if next == -1 {
				next = pos + 2
			}
			floor = target
			pos = target

		case b&0xC0 != 0:
			// 0x40 and 0x80 label prefixes are reserved by RFC 1035.
			return "", 0, fmt.Errorf("reserved label prefix 0x%02x at offset %d: %w", b&0xC0, pos, domain.ErrMalformedName)

		default:
			end := pos + 1 + int(b)
			if end > len(msg) {
				return "", 0, fmt.Errorf("label at offset %d runs past end of message: %w", pos, domain.ErrTruncated)
			}
			nameLen += int(b) + 1
			if nameLen+1 > maxNameLength {
				return "", 0, fmt.Errorf("decoded name exceeds %d octets: %w", maxNameLength, domain.ErrMalformedName)
			}
			labels = append(labels, string(msg[pos+1:end]))
			pos = end
		}
	}
}

// decodeNameData decodes record data that consists of a single domain name,
// as used by NS, CNAME, and PTR records.
func decodeNameData(msg []byte, off, rdlen int) (domain.RData, error) {
	name, end, err := DecodeName(msg, off)
	if err != nil {
		return nil, err
	}
	if end-off != rdlen {
		return nil, nil
	}
	return domain.NameData{Name: name}, nil
}

// describeRData renders a record value for error messages.
func describeRData(data domain.RData) string {
	if data == nil {
		return "nil"
	}
	return fmt.Sprintf("%T(%s)", data, data)
}

// isIPv4 checks whether the provided net.IP address is an IPv4 address.
// It returns true if the IP is not nil and can be converted to IPv4 format.
func isIPv4(ip net.IP) bool {
	return ip != nil && ip.To4() != nil
}

// isIPv6 checks whether the provided net.IP is a valid IPv6 address.
// It returns true if the IP is not nil, has a valid 16-byte representation,
// and does not have a valid 4-byte IPv4 representation.
func isIPv6(ip net.IP) bool {
	return ip != nil && ip.To16() != nil && ip.To4() == nil
}
