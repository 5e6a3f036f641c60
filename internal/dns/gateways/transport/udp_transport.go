package transport

import (
	"context"
	"time"

	"github.com/haukened/rr-dig/internal/dns/common/clock"
	"github.com/haukened/rr-dig/internal/dns/common/log"
)

// UDPTransport implements RoundTripper for standard DNS over UDP (RFC 1035).
// Each exchange dials an ephemeral connected socket, sends one datagram, and
// waits for one response datagram. Responses larger than the configured
// buffer are silently truncated by the kernel; callers detect that through
// the TC bit in the decoded message.
type UDPTransport struct {
	address string
	timeout time.Duration
	bufSize int
	dial    DialFunc
	clock   clock.Clock
	logger  log.Logger
}

// NewUDPTransport creates a UDP transport from the given options.
func NewUDPTransport(opts Options) (*UDPTransport, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &UDPTransport{
		address: opts.Address,
		timeout: opts.Timeout,
		bufSize: opts.BufferSize,
		dial:    opts.Dial,
		clock:   opts.Clock,
		logger:  opts.Logger,
	}, nil
}

// Proto returns the transport protocol.
func (t *UDPTransport) Proto() Proto {
	return ProtoUDP
}

// Address returns the server address queries are sent to.
func (t *UDPTransport) Address() string {
	return t.address
}

// Exchange sends query as a single datagram and returns the first response
// datagram. The socket is closed on every exit path; a cancelled context
// unblocks the read by closing the socket under it.
func (t *UDPTransport) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	ctx, cancel := ensureDeadline(ctx, t.clock, t.timeout)
	if cancel != nil {
		defer cancel()
	}

	conn, err := t.dial(ctx, "udp", t.address)
	if err != nil {
		return nil, exchangeErr(errConnect, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	t.logger.Debug(map[string]any{
		"server": t.address,
		"proto":  ProtoUDP,
		"size":   len(query),
	}, "Sending DNS query")

	resultChan := make(chan exchangeResult, 1)
	go func() {
		if _, err := conn.Write(query); err != nil {
			resultChan <- exchangeResult{err: exchangeErr(errSend, err)}
			return
		}
		buffer := make([]byte, t.bufSize)
		n, err := conn.Read(buffer)
		if err != nil {
			resultChan <- exchangeResult{err: exchangeErr(errReceive, err)}
			return
		}
		resultChan <- exchangeResult{data: buffer[:n]}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			return nil, res.err
		}
		t.logger.Debug(map[string]any{
			"server": t.address,
			"proto":  ProtoUDP,
			"size":   len(res.data),
		}, "Received DNS response")
		return res.data, nil
	case <-ctx.Done():
		return nil, contextErr(ctx.Err())
	}
}

var _ RoundTripper = (*UDPTransport)(nil)
