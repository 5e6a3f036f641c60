package domain

import "fmt"

// ResourceRecord represents a DNS resource record from the answer,
// authority, or additional section of a message. Data is nil when the
// record carried no RDATA or its RDATA failed the type-specific parse;
// such records survive decoding but are skipped by answer projection.
type ResourceRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32
	Data  RData
}

// NewResourceRecord constructs a ResourceRecord and validates its fields.
func NewResourceRecord(name string, rrtype RRType, class RRClass, ttl uint32, data RData) (ResourceRecord, error) {
	rr := ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: class,
		TTL:   ttl,
		Data:  data,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks whether the ResourceRecord fields are structurally valid.
// Unknown type and class codes pass through; only the reserved zero codes
// are rejected. A nil Data is legal (absent or unparseable RDATA).
func (rr ResourceRecord) Validate() error {
	if rr.Name == "" {
		return fmt.Errorf("%w: record name must not be empty", ErrInvalidName)
	}
	if rr.Type == 0 {
		return fmt.Errorf("record type must not be zero")
	}
	if rr.Class == 0 {
		return fmt.Errorf("record class must not be zero")
	}
	return nil
}

// HasData reports whether the record carries usable RDATA.
func (rr ResourceRecord) HasData() bool {
	return rr.Data != nil
}

// String returns the record in dig-style presentation form.
func (rr ResourceRecord) String() string {
	if rr.Data == nil {
		return fmt.Sprintf("%s\t%d\t%s\t%s", rr.Name, rr.TTL, rr.Class, rr.Type)
	}
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s", rr.Name, rr.TTL, rr.Class, rr.Type, rr.Data)
}
