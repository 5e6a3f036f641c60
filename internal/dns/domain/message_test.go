package domain

import (
	"net"
	"testing"
)

func TestNewQuery(t *testing.T) {
	q := Question{Name: "example.com", Type: RRTypeA, Class: RRClassIN}
	m := NewQuery(0xBEEF, q)

	if m.Header.ID != 0xBEEF {
		t.Errorf("Expected ID 0xBEEF, got 0x%04X", m.Header.ID)
	}
	if !m.Header.Flags.RecursionDesired {
		t.Errorf("Expected RecursionDesired to be set")
	}
	if m.Header.Flags.Response {
		t.Errorf("Query must not carry the response flag")
	}
	if m.Header.Flags.Opcode != OpcodeQuery {
		t.Errorf("Expected QUERY opcode, got %v", m.Header.Flags.Opcode)
	}
	if m.Header.QDCount != 1 || len(m.Questions) != 1 {
		t.Errorf("Expected exactly one question, got QDCount=%d len=%d", m.Header.QDCount, len(m.Questions))
	}
	if m.Questions[0] != q {
		t.Errorf("Expected question %+v, got %+v", q, m.Questions[0])
	}
	if err := m.Validate(); err != nil {
		t.Errorf("NewQuery produced an invalid message: %v", err)
	}
}

func TestMessage_Validate(t *testing.T) {
	valid := Message{
		Header:    Header{ID: 1, QDCount: 1},
		Questions: []Question{{Name: "example.com", Type: RRTypeA, Class: RRClassIN}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Unexpected error for valid message: %v", err)
	}

	tests := []struct {
		name string
		msg  Message
	}{
		{
			name: "question count mismatch",
			msg: Message{
				Header: Header{QDCount: 2},
				Questions: []Question{
					{Name: "example.com", Type: RRTypeA, Class: RRClassIN},
				},
			},
		},
		{
			name: "answer count mismatch",
			msg: Message{
				Header: Header{ANCount: 1},
			},
		},
		{
			name: "authority count mismatch",
			msg: Message{
				Header: Header{NSCount: 3},
			},
		},
		{
			name: "additional count mismatch",
			msg: Message{
				Header: Header{ARCount: 1},
			},
		},
		{
			name: "invalid question",
			msg: Message{
				Header:    Header{QDCount: 1},
				Questions: []Question{{Name: "", Type: RRTypeA, Class: RRClassIN}},
			},
		},
		{
			name: "invalid answer record",
			msg: Message{
				Header:  Header{ANCount: 1},
				Answers: []ResourceRecord{{Name: "", Type: RRTypeA, Class: RRClassIN}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.msg.Validate(); err == nil {
				t.Errorf("Expected error but got none")
			}
		})
	}
}

func TestMessage_AnswerData(t *testing.T) {
	msg := Message{
		Answers: []ResourceRecord{
			{Name: "a.example.com", Type: RRTypeA, Class: RRClassIN, Data: IPData{IP: net.ParseIP("192.0.2.1")}},
			{Name: "b.example.com", Type: RRTypeA, Class: RRClassIN, Data: nil},
			{Name: "c.example.com", Type: RRTypeTXT, Class: RRClassIN, Data: TXTData{Segments: []string{"x"}}},
		},
	}

	data := msg.AnswerData()
	if len(data) != 2 {
		t.Fatalf("Expected 2 usable answers, got %d", len(data))
	}
	if data[0].String() != "192.0.2.1" {
		t.Errorf("Unexpected first answer: %s", data[0])
	}
	if data[1].String() != `"x"` {
		t.Errorf("Unexpected second answer: %s", data[1])
	}

	empty := Message{}
	if got := empty.AnswerData(); got != nil {
		t.Errorf("Expected nil for message without answers, got %v", got)
	}
	if empty.HasAnswers() {
		t.Errorf("Expected HasAnswers() = false for empty message")
	}
}
