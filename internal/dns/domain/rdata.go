package domain

import (
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// RData is the type-tagged payload of a resource record. The concrete type
// is selected by the record's RRType during decoding; types without a
// structured decoder carry RawData. String returns the dig-style
// presentation form.
type RData interface {
	String() string
}

// IPData holds the address payload of A and AAAA records.
type IPData struct {
	IP net.IP
}

func (d IPData) String() string {
	return d.IP.String()
}

// NameData holds the single domain name payload of CNAME, NS, and PTR records.
type NameData struct {
	Name string
}

func (d NameData) String() string {
	return d.Name
}

// MXData holds the payload of an MX record.
type MXData struct {
	Preference uint16
	Exchange   string
}

func (d MXData) String() string {
	return fmt.Sprintf("%d %s", d.Preference, d.Exchange)
}

// TXTData holds the character strings of a TXT record, one entry per
// length-prefixed segment in the original order.
type TXTData struct {
	Segments []string
}

func (d TXTData) String() string {
	quoted := make([]string, len(d.Segments))
	for i, s := range d.Segments {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, " ")
}

// Join concatenates the segments without separators, the usual
// interpretation for values split only to satisfy the 255-byte
// segment limit.
func (d TXTData) Join() string {
	return strings.Join(d.Segments, "")
}

// SOAData holds the payload of an SOA record.
type SOAData struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (d SOAData) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d",
		d.MName, d.RName, d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum)
}

// SRVData holds the payload of an SRV record.
type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

func (d SRVData) String() string {
	return fmt.Sprintf("%d %d %d %s", d.Priority, d.Weight, d.Port, d.Target)
}

// CAAData holds the payload of a CAA record.
type CAAData struct {
	Flags uint8
	Tag   string
	Value string
}

func (d CAAData) String() string {
	return fmt.Sprintf("%d %s %q", d.Flags, d.Tag, d.Value)
}

// RawData carries the verbatim RDATA bytes of record types without a
// structured decoder.
type RawData []byte

// String renders the bytes in the RFC 3597 generic form, e.g. "\# 4 7F000001".
func (d RawData) String() string {
	if len(d) == 0 {
		return `\# 0`
	}
	return fmt.Sprintf(`\# %d %s`, len(d), strings.ToUpper(hex.EncodeToString(d)))
}
