package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/common/rrdata"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// headerLen is the fixed size of the DNS message header.
const headerLen = 12

// maxSectionCount is the largest value a 16-bit header count can carry.
const maxSectionCount = 65535

// messageCodec implements the Codec interface for RFC 1035 DNS messages.
type messageCodec struct {
	logger log.Logger
}

// NewCodec creates and returns a new message codec. The logger is used for
// debug tracing of encode and decode results; a nil logger disables tracing.
func NewCodec(logger log.Logger) *messageCodec {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &messageCodec{logger: logger}
}

// Encode serializes a Message into wire format. The four section counts are
// derived from the section slice lengths, so a hand-built message never
// writes counts that disagree with its contents. Names are written without
// compression.
func (c *messageCodec) Encode(msg domain.Message) ([]byte, error) {
	counts, err := sectionCounts(msg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, msg.Header.ID)           // ID
	_ = binary.Write(&buf, binary.BigEndian, msg.Header.Flags.Pack()) // Flags
	_ = binary.Write(&buf, binary.BigEndian, counts[0])               // QDCOUNT
	_ = binary.Write(&buf, binary.BigEndian, counts[1])               // ANCOUNT
	_ = binary.Write(&buf, binary.BigEndian, counts[2])               // NSCOUNT
	_ = binary.Write(&buf, binary.BigEndian, counts[3])               // ARCOUNT

	for _, q := range msg.Questions {
		if err := encodeQuestion(&buf, q); err != nil {
			return nil, fmt.Errorf("failed to encode question %q: %w", q.Name, err)
		}
	}

	sections := []struct {
		name    string
		records []domain.ResourceRecord
	}{
		{"answer", msg.Answers},
		{"authority", msg.Authority},
		{"additional", msg.Additional},
	}
	for _, section := range sections {
		for _, rr := range section.records {
			if err := encodeRecord(&buf, rr); err != nil {
				return nil, fmt.Errorf("failed to encode %s record %q: %w", section.name, rr.Name, err)
			}
		}
	}

	c.logger.Debug(map[string]any{
		"id":   msg.Header.ID,
		"size": buf.Len(),
		"qd":   counts[0],
		"an":   counts[1],
		"ns":   counts[2],
		"ar":   counts[3],
	}, "Encoded DNS message")

	return buf.Bytes(), nil
}

// Decode parses a wire format message. The header counts drive how many
// questions and records are parsed, and the returned Header preserves them
// as read off the wire.
func (c *messageCodec) Decode(data []byte) (domain.Message, error) {
	if len(data) < headerLen {
		return domain.Message{}, fmt.Errorf("message is %d bytes, header needs %d: %w", len(data), headerLen, domain.ErrTruncated)
	}

	msg := domain.Message{
		Header: domain.Header{
			ID:      binary.BigEndian.Uint16(data[0:2]),
			Flags:   domain.UnpackFlags(binary.BigEndian.Uint16(data[2:4])),
			QDCount: binary.BigEndian.Uint16(data[4:6]),
			ANCount: binary.BigEndian.Uint16(data[6:8]),
			NSCount: binary.BigEndian.Uint16(data[8:10]),
			ARCount: binary.BigEndian.Uint16(data[10:12]),
		},
	}

	offset := headerLen
	for i := 0; i < int(msg.Header.QDCount); i++ {
		q, next, err := decodeQuestion(data, offset)
		if err != nil {
			return domain.Message{}, fmt.Errorf("failed to decode question %d: %w", i, err)
		}
		msg.Questions = append(msg.Questions, q)
		offset = next
	}

	var err error
	if msg.Answers, offset, err = decodeRecords(data, offset, int(msg.Header.ANCount), "answer"); err != nil {
		return domain.Message{}, err
	}
	if msg.Authority, offset, err = decodeRecords(data, offset, int(msg.Header.NSCount), "authority"); err != nil {
		return domain.Message{}, err
	}
	if msg.Additional, _, err = decodeRecords(data, offset, int(msg.Header.ARCount), "additional"); err != nil {
		return domain.Message{}, err
	}

	c.logger.Debug(map[string]any{
		"id":    msg.Header.ID,
		"rcode": msg.Header.Flags.RCode.String(),
		"qd":    msg.Header.QDCount,
		"an":    msg.Header.ANCount,
		"ns":    msg.Header.NSCount,
		"ar":    msg.Header.ARCount,
	}, "Decoded DNS message")

	return msg, nil
}

// sectionCounts derives the header counts from the section lengths, checking
// each fits in 16 bits.
func sectionCounts(msg domain.Message) ([4]uint16, error) {
	sections := []struct {
		name string
		n    int
	}{
		{"question", len(msg.Questions)},
		{"answer", len(msg.Answers)},
		{"authority", len(msg.Authority)},
		{"additional", len(msg.Additional)},
	}
	var counts [4]uint16
	for i, s := range sections {
		if s.n > maxSectionCount {
			return counts, fmt.Errorf("too many %s entries: %d (max %d)", s.name, s.n, maxSectionCount)
		}
		counts[i] = uint16(s.n)
	}
	return counts, nil
}

// encodeQuestion writes one question entry: name, qtype, qclass.
func encodeQuestion(buf *bytes.Buffer, q domain.Question) error {
	name, err := rrdata.EncodeName(q.Name)
	if err != nil {
		return err
	}
	buf.Write(name)
	_ = binary.Write(buf, binary.BigEndian, uint16(q.Type))
	_ = binary.Write(buf, binary.BigEndian, uint16(q.Class))
	return nil
}

// encodeRecord writes one resource record. A record with no data is written
// with rdlength zero, mirroring how such records decode.
func encodeRecord(buf *bytes.Buffer, rr domain.ResourceRecord) error {
	name, err := rrdata.EncodeName(rr.Name)
	if err != nil {
		return err
	}
	var data []byte
	if rr.Data != nil {
		data, err = rrdata.Encode(rr.Type, rr.Data)
		if err != nil {
			return err
		}
		if len(data) > maxSectionCount {
			return fmt.Errorf("record data is %d bytes (max %d)", len(data), maxSectionCount)
		}
	}
	buf.Write(name)
	_ = binary.Write(buf, binary.BigEndian, uint16(rr.Type))
	_ = binary.Write(buf, binary.BigEndian, uint16(rr.Class))
	_ = binary.Write(buf, binary.BigEndian, rr.TTL)
	_ = binary.Write(buf, binary.BigEndian, uint16(len(data)))
	buf.Write(data)
	return nil
}

// decodeQuestion parses one question entry starting at offset.
func decodeQuestion(data []byte, offset int) (domain.Question, int, error) {
	name, next, err := rrdata.DecodeName(data, offset)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if next+4 > len(data) {
		return domain.Question{}, 0, fmt.Errorf("question truncated after name: %w", domain.ErrTruncated)
	}
	q := domain.Question{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(data[next : next+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[next+2 : next+4])),
	}
	return q, next + 4, nil
}

// decodeRecords parses count records beginning at offset and returns the
// records together with the offset of the first byte after them.
func decodeRecords(data []byte, offset, count int, section string) ([]domain.ResourceRecord, int, error) {
	var records []domain.ResourceRecord
	for i := 0; i < count; i++ {
		rr, next, err := decodeRecord(data, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode %s record %d: %w", section, i, err)
		}
		records = append(records, rr)
		offset = next
	}
	return records, offset, nil
}

// decodeRecord parses a single resource record starting at offset.
func decodeRecord(data []byte, offset int) (domain.ResourceRecord, int, error) {
	name, next, err := rrdata.DecodeName(data, offset)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("failed to decode record name: %w", err)
	}
	if next+10 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("record truncated after name: %w", domain.ErrTruncated)
	}

	rrType := domain.RRType(binary.BigEndian.Uint16(data[next : next+2]))
	class := domain.RRClass(binary.BigEndian.Uint16(data[next+2 : next+4]))
	ttl := binary.BigEndian.Uint32(data[next+4 : next+8])
	rdlen := int(binary.BigEndian.Uint16(data[next+8 : next+10]))
	rdataOff := next + 10

	if rdataOff+rdlen > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("record declares %d data bytes, %d remain: %w", rdlen, len(data)-rdataOff, domain.ErrTruncated)
	}

	rdata, err := rrdata.Decode(rrType, data, rdataOff, rdlen)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("failed to decode %s record data: %w", rrType, err)
	}

	return domain.ResourceRecord{
		Name:  name,
		Type:  rrType,
		Class: class,
		TTL:   ttl,
		Data:  rdata,
	}, rdataOff + rdlen, nil
}

var _ Codec = &messageCodec{}
