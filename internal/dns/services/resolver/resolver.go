// Package resolver provides the stub-resolver facade: it canonicalizes query
// names, assigns random message IDs, and drives the wire codec and a
// transport to turn (name, type) lookups into decoded DNS messages.
package resolver

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/haukened/rr-dig/internal/dns/common/clock"
	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/common/utils"
	"github.com/haukened/rr-dig/internal/dns/domain"
	"github.com/haukened/rr-dig/internal/dns/gateways/transport"
	"github.com/haukened/rr-dig/internal/dns/gateways/wire"
)

// defaults applied by New for unset options
const (
	DefaultServer  = "8.8.8.8:53"
	DefaultProto   = transport.ProtoUDP
	DefaultTimeout = 5 * time.Second
)

// Options configures a Client.
type Options struct {
	// Server is the DNS server to query, as host:port.
	Server string

	// Proto selects the transport protocol.
	Proto transport.Proto

	// Timeout bounds each exchange when the caller's context carries no
	// deadline.
	Timeout time.Duration

	// BufferSize caps UDP responses; larger datagrams are truncated by
	// the kernel.
	BufferSize int

	// optional dependencies, injected for testing
	Codec  MessageCodec
	Dial   transport.DialFunc
	Clock  clock.Clock
	Logger log.Logger
}

// QueryOptions overrides client defaults for a single call. Zero values
// inherit the client's settings.
type QueryOptions struct {
	Server  string
	Proto   transport.Proto
	Timeout time.Duration
}

// Client is a DNS stub resolver. It holds configuration only; every query
// dials its own socket, so a single Client is safe for unbounded concurrent
// use.
type Client struct {
	server  string
	proto   transport.Proto
	timeout time.Duration
	bufSize int
	codec   MessageCodec
	dial    transport.DialFunc
	clock   clock.Clock
	logger  log.Logger
}

// New creates a Client, filling unset options with defaults and rejecting
// unusable server addresses or protocols up front.
func New(opts Options) (*Client, error) {
	if opts.Server == "" {
		opts.Server = DefaultServer
	}
	if opts.Proto == "" {
		opts.Proto = DefaultProto
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = transport.DefaultBufferSize
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Codec == nil {
		opts.Codec = wire.NewCodec(opts.Logger)
	}

	// Surface bad addresses and protocols now rather than on first query
	if _, err := transport.New(opts.Proto, transport.Options{Address: opts.Server}); err != nil {
		return nil, err
	}

	return &Client{
		server:  opts.Server,
		proto:   opts.Proto,
		timeout: opts.Timeout,
		bufSize: opts.BufferSize,
		codec:   opts.Codec,
		dial:    opts.Dial,
		clock:   opts.Clock,
		logger:  opts.Logger,
	}, nil
}

// Query looks up name with the given record type and returns the decoded
// response exactly as the server sent it. No attempt is made to match the
// response ID against the query or to retry truncated answers over TCP;
// callers inspect the returned header themselves.
func (c *Client) Query(ctx context.Context, name string, rrType domain.RRType, opts QueryOptions) (domain.Message, error) {
	server := c.server
	if opts.Server != "" {
		server = opts.Server
	}
	proto := c.proto
	if opts.Proto != "" {
		proto = opts.Proto
	}
	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	canonical, err := utils.CanonicalDNSName(name)
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", domain.ErrInvalidName, err)
	}

	question, err := domain.NewQuestion(canonical, rrType, domain.RRClassIN)
	if err != nil {
		return domain.Message{}, fmt.Errorf("invalid question: %w", err)
	}

	id, err := randomID()
	if err != nil {
		return domain.Message{}, err
	}

	data, err := c.codec.Encode(domain.NewQuery(id, question))
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to encode query: %w", err)
	}

	rt, err := transport.New(proto, transport.Options{
		Address:    server,
		Timeout:    timeout,
		BufferSize: c.bufSize,
		Dial:       c.dial,
		Clock:      c.clock,
		Logger:     c.logger,
	})
	if err != nil {
		return domain.Message{}, err
	}

	c.logger.Debug(map[string]any{
		"id":     id,
		"name":   canonical,
		"type":   rrType.String(),
		"server": server,
		"proto":  proto,
	}, "Sending DNS query")

	respData, err := rt.Exchange(ctx, data)
	if err != nil {
		return domain.Message{}, err
	}

	response, err := c.codec.Decode(respData)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug(map[string]any{
		"id":      response.Header.ID,
		"rcode":   response.Header.Flags.RCode.String(),
		"answers": len(response.Answers),
	}, "Received DNS response")

	return response, nil
}

// Resolve runs Query and flattens the answer section into typed record
// data. Records whose RDATA could not be parsed are dropped; an empty
// answer section, whatever the response code, yields ErrNoAnswers.
func (c *Client) Resolve(ctx context.Context, name string, rrType domain.RRType, opts QueryOptions) ([]domain.RData, error) {
	response, err := c.Query(ctx, name, rrType, opts)
	if err != nil {
		return nil, err
	}
	answers := response.AnswerData()
	if len(answers) == 0 {
		return nil, fmt.Errorf("%s %s: %w", name, rrType, domain.ErrNoAnswers)
	}
	return answers, nil
}

// randomID draws a message ID from crypto/rand so concurrent queries do not
// carry predictable IDs.
func randomID() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("failed to generate message id: %w", err)
	}
	return binary.BigEndian.Uint16(b[:]), nil
}
