package domain

import "fmt"

// Message represents a complete DNS message: the fixed header plus the
// question, answer, authority, and additional sections. On decode the
// header counts are the values read off the wire; on encode the counts
// written are derived from the section lengths, so a Message built through
// NewQuery is always internally consistent.
type Message struct {
	Header     Header
	Questions  []Question
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// NewQuery constructs the standard outgoing query message: a fresh header
// carrying the supplied ID with RecursionDesired set, and a single question.
func NewQuery(id uint16, q Question) Message {
	return Message{
		Header: Header{
			ID: id,
			Flags: Flags{
				Opcode:           OpcodeQuery,
				RecursionDesired: true,
			},
			QDCount: 1,
		},
		Questions: []Question{q},
	}
}

// Validate checks that the header counts agree with the section lengths
// and that every section entry is itself valid.
func (m Message) Validate() error {
	if int(m.Header.QDCount) != len(m.Questions) {
		return fmt.Errorf("header QDCOUNT %d does not match %d questions", m.Header.QDCount, len(m.Questions))
	}
	if int(m.Header.ANCount) != len(m.Answers) {
		return fmt.Errorf("header ANCOUNT %d does not match %d answers", m.Header.ANCount, len(m.Answers))
	}
	if int(m.Header.NSCount) != len(m.Authority) {
		return fmt.Errorf("header NSCOUNT %d does not match %d authority records", m.Header.NSCount, len(m.Authority))
	}
	if int(m.Header.ARCount) != len(m.Additional) {
		return fmt.Errorf("header ARCOUNT %d does not match %d additional records", m.Header.ARCount, len(m.Additional))
	}
	for i, q := range m.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	for i, rr := range m.Answers {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("answer %d: %w", i, err)
		}
	}
	for i, rr := range m.Authority {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("authority %d: %w", i, err)
		}
	}
	for i, rr := range m.Additional {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("additional %d: %w", i, err)
		}
	}
	return nil
}

// HasAnswers reports whether the answer section is non-empty.
func (m Message) HasAnswers() bool {
	return len(m.Answers) > 0
}

// AnswerData projects the answer section to its RData values, skipping
// records whose RDATA was absent or failed its type-specific parse.
func (m Message) AnswerData() []RData {
	if len(m.Answers) == 0 {
		return nil
	}
	out := make([]RData, 0, len(m.Answers))
	for _, rr := range m.Answers {
		if rr.Data != nil {
			out = append(out, rr.Data)
		}
	}
	return out
}
