package transport

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/haukened/rr-dig/internal/dns/common/clock"
	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// TCPTransport implements RoundTripper for DNS over TCP (RFC 1035 section
// 4.2.2). Messages travel with a 2-byte big-endian length prefix in each
// direction, so arbitrarily large responses arrive intact where UDP would
// truncate them.
type TCPTransport struct {
	address string
	timeout time.Duration
	dial    DialFunc
	clock   clock.Clock
	logger  log.Logger
}

// NewTCPTransport creates a TCP transport from the given options.
func NewTCPTransport(opts Options) (*TCPTransport, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &TCPTransport{
		address: opts.Address,
		timeout: opts.Timeout,
		dial:    opts.Dial,
		clock:   opts.Clock,
		logger:  opts.Logger,
	}, nil
}

// Proto returns the transport protocol.
func (t *TCPTransport) Proto() Proto {
	return ProtoTCP
}

// Address returns the server address queries are sent to.
func (t *TCPTransport) Address() string {
	return t.address
}

// Exchange sends query on a fresh TCP connection and reads exactly one
// length-prefixed response. The prefix and payload go out in a single
// writev so the query is never split across a prefix-only segment.
func (t *TCPTransport) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	if len(query) > maxMessageSize {
		return nil, fmt.Errorf("query is %d bytes: %w", len(query), domain.ErrMessageTooLarge)
	}

	ctx, cancel := ensureDeadline(ctx, t.clock, t.timeout)
	if cancel != nil {
		defer cancel()
	}

	conn, err := t.dial(ctx, "tcp", t.address)
	if err != nil {
		return nil, exchangeErr(errConnect, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	t.logger.Debug(map[string]any{
		"server": t.address,
		"proto":  ProtoTCP,
		"size":   len(query),
	}, "Sending DNS query")

	resultChan := make(chan exchangeResult, 1)
	go func() {
		prefix := []byte{byte(len(query) >> 8), byte(len(query))}
		buffers := net.Buffers{prefix, query}
		if _, err := buffers.WriteTo(conn); err != nil {
			resultChan <- exchangeResult{err: exchangeErr(errSend, err)}
			return
		}

		var lenBuf [2]byte
		if _, err := io.ReadFull(conn, lenBuf[:]); err != nil {
			resultChan <- exchangeResult{err: readErr(err)}
			return
		}
		payload := make([]byte, binary.BigEndian.Uint16(lenBuf[:]))
		if _, err := io.ReadFull(conn, payload); err != nil {
			resultChan <- exchangeResult{err: readErr(err)}
			return
		}
		resultChan <- exchangeResult{data: payload}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			return nil, res.err
		}
		t.logger.Debug(map[string]any{
			"server": t.address,
			"proto":  ProtoTCP,
			"size":   len(res.data),
		}, "Received DNS response")
		return res.data, nil
	case <-ctx.Done():
		return nil, contextErr(ctx.Err())
	}
}

// readErr maps a TCP read failure: a stream that ends before delivering the
// bytes its length prefix promised is a short read, everything else follows
// the usual timeout/network split.
func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: %w", errReceive, domain.ErrShortRead)
	}
	return exchangeErr(errReceive, err)
}

var _ RoundTripper = (*TCPTransport)(nil)
