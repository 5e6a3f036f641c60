package domain

import "fmt"

// Question represents the question section entry of a DNS message.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question and validates its fields.
func NewQuestion(name string, rrtype RRType, class RRClass) (Question, error) {
	q := Question{
		Name:  name,
		Type:  rrtype,
		Class: class,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks whether the Question fields are structurally valid.
// Unknown type and class codes are allowed; only the zero values are
// rejected since code 0 is reserved in both registries.
func (q Question) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if q.Type == 0 {
		return fmt.Errorf("question type must not be zero")
	}
	if q.Class == 0 {
		return fmt.Errorf("question class must not be zero")
	}
	return nil
}

// String returns the question in dig-style presentation form.
func (q Question) String() string {
	return fmt.Sprintf("%s\t%s\t%s", q.Name, q.Class, q.Type)
}
