package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
// Only the low 4 bits travel in the header flags word.
type RCode uint8

// DNS Response Code constants (RFC 1035, RFC 2136)
const (
	RCodeNoError  RCode = 0  // NOERROR - No error condition
	RCodeFormErr  RCode = 1  // FORMERR - Format error
	RCodeServFail RCode = 2  // SERVFAIL - Server failure
	RCodeNXDomain RCode = 3  // NXDOMAIN - Nonexistent domain
	RCodeNotImp   RCode = 4  // NOTIMP - Not implemented
	RCodeRefused  RCode = 5  // REFUSED - Query refused
	RCodeYXDomain RCode = 6  // YXDOMAIN - Name exists when it should not
	RCodeYXRRSet  RCode = 7  // YXRRSET - RR set exists when it should not
	RCodeNXRRSet  RCode = 8  // NXRRSET - RR set that should exist does not
	RCodeNotAuth  RCode = 9  // NOTAUTH - Server not authoritative
	RCodeNotZone  RCode = 10 // NOTZONE - Name not contained in zone
)

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNXDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	case RCodeYXDomain:
		return "YXDOMAIN"
	case RCodeYXRRSet:
		return "YXRRSET"
	case RCodeNXRRSet:
		return "NXRRSET"
	case RCodeNotAuth:
		return "NOTAUTH"
	case RCodeNotZone:
		return "NOTZONE"
	default:
		return fmt.Sprintf("RCODE%d", uint8(r))
	}
}
