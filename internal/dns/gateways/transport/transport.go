// Package transport carries encoded DNS messages between the client and a
// server. Each protocol handles its own framing (bare datagrams for UDP,
// 2-byte length prefixes for TCP) so the layers above deal only in message
// bytes.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/haukened/rr-dig/internal/dns/common/clock"
	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// Proto identifies a DNS transport protocol.
type Proto string

const (
	// ProtoUDP is standard DNS over UDP (RFC 1035).
	ProtoUDP Proto = "udp"

	// ProtoTCP is DNS over TCP (RFC 1035 section 4.2.2).
	ProtoTCP Proto = "tcp"

	// ProtoDoT is DNS over TLS (RFC 7858) - future implementation.
	ProtoDoT Proto = "dot"

	// ProtoDoH is DNS over HTTPS (RFC 8484) - future implementation.
	ProtoDoH Proto = "doh"
)

const (
	// DefaultTimeout bounds an exchange when the caller's context carries
	// no deadline.
	DefaultTimeout = 5 * time.Second

	// DefaultBufferSize is the traditional RFC 1035 UDP payload limit.
	DefaultBufferSize = 512

	// maxMessageSize is the largest message a 2-byte length prefix can frame.
	maxMessageSize = 65535
)

// DialFunc defines a function type for establishing a network connection.
// It takes a context for cancellation, the network type (e.g., "udp", "tcp"),
// and the address to connect to, returning a net.Conn and an error if any occurs.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// RoundTripper sends one encoded DNS query and returns the raw response
// bytes. Implementations hold configuration only and dial a fresh socket
// per exchange, so a single value is safe for concurrent use.
type RoundTripper interface {
	// Exchange transmits query and blocks until a response arrives, the
	// context is done, or the transport timeout elapses.
	Exchange(ctx context.Context, query []byte) ([]byte, error)

	// Proto returns the transport protocol.
	Proto() Proto

	// Address returns the server address queries are sent to.
	Address() string
}

// Options defines configuration parameters shared by all transports.
type Options struct {
	// required parameters
	Address string
	// optional parameters with defaults
	Timeout    time.Duration
	BufferSize int
	// optional parameters to inject for testing purposes
	Dial   DialFunc
	Clock  clock.Clock
	Logger log.Logger
}

// withDefaults validates the options and fills in any unset fields.
func (o Options) withDefaults() (Options, error) {
	if o.Address == "" {
		return o, errors.New("server address is required")
	}
	if _, _, err := net.SplitHostPort(o.Address); err != nil {
		return o, fmt.Errorf("invalid server address %q: %w", o.Address, err)
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.Dial == nil {
		o.Dial = (&net.Dialer{}).DialContext
	}
	if o.Clock == nil {
		o.Clock = clock.RealClock{}
	}
	if o.Logger == nil {
		o.Logger = log.NewNoopLogger()
	}
	return o, nil
}

// error message prefixes shared by the transports
const (
	errConnect = "failed to connect"
	errSend    = "failed to send query"
	errReceive = "failed to read response"
)

// exchangeResult carries the outcome of the I/O goroutine back to Exchange.
type exchangeResult struct {
	data []byte
	err  error
}

// ensureDeadline guarantees ctx carries a deadline, deriving one from the
// clock and timeout when the caller supplied none. The returned cancel func
// is nil when ctx already had a deadline.
func ensureDeadline(ctx context.Context, clk clock.Clock, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, nil
	}
	return context.WithDeadline(ctx, clk.Now().Add(timeout))
}

// exchangeErr wraps a low-level network failure with the matching sentinel:
// timeouts surface as domain.ErrTimeout, everything else as domain.ErrNetwork.
func exchangeErr(op string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrNetwork, err)
}

// contextErr converts a finished context into the error taxonomy: deadline
// expiry is a timeout, explicit cancellation passes through unchanged.
func contextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("no response before deadline: %w", domain.ErrTimeout)
	}
	return err
}
