package resolver

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-dig/internal/dns/domain"
	"github.com/haukened/rr-dig/internal/dns/gateways/transport"
)

// MockCodec implements MessageCodec for testing
type MockCodec struct {
	mock.Mock
}

func (m *MockCodec) Encode(msg domain.Message) ([]byte, error) {
	args := m.Called(msg)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCodec) Decode(data []byte) (domain.Message, error) {
	args := m.Called(data)
	return args.Get(0).(domain.Message), args.Error(1)
}

// MockConn implements net.Conn for testing
type MockConn struct {
	mock.Mock
	readData []byte
}

func (m *MockConn) Read(b []byte) (n int, err error) {
	args := m.Called(b)
	if m.readData != nil {
		copy(b, m.readData)
		return len(m.readData), args.Error(1)
	}
	return args.Int(0), args.Error(1)
}

func (m *MockConn) Write(b []byte) (n int, err error) {
	args := m.Called(b)
	return args.Int(0), args.Error(1)
}

func (m *MockConn) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockConn) LocalAddr() net.Addr                { return nil }
func (m *MockConn) RemoteAddr() net.Addr               { return nil }
func (m *MockConn) SetDeadline(t time.Time) error      { return nil }
func (m *MockConn) SetReadDeadline(t time.Time) error  { return nil }
func (m *MockConn) SetWriteDeadline(t time.Time) error { return nil }

// Helper functions for creating test data
func createTestResponse() domain.Message {
	return domain.Message{
		Header: domain.Header{
			ID: 12345,
			Flags: domain.Flags{
				Response:           true,
				RecursionDesired:   true,
				RecursionAvailable: true,
			},
			QDCount: 1,
			ANCount: 1,
		},
		Questions: []domain.Question{
			{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN},
		},
		Answers: []domain.ResourceRecord{
			{
				Name:  "example.com",
				Type:  domain.RRTypeA,
				Class: domain.RRClassIN,
				TTL:   300,
				Data:  domain.IPData{IP: net.IPv4(93, 184, 216, 34).To4()},
			},
		},
	}
}

// matchQuestion matches an encoded query message by its single question,
// ignoring the randomly assigned ID.
func matchQuestion(name string, rrType domain.RRType) any {
	return mock.MatchedBy(func(msg domain.Message) bool {
		return len(msg.Questions) == 1 &&
			msg.Questions[0].Name == name &&
			msg.Questions[0].Type == rrType &&
			msg.Questions[0].Class == domain.RRClassIN &&
			msg.Header.Flags.RecursionDesired &&
			!msg.Header.Flags.Response
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{
			name: "all defaults",
			opts: Options{},
		},
		{
			name: "explicit options",
			opts: Options{
				Server:     "1.1.1.1:53",
				Proto:      transport.ProtoTCP,
				Timeout:    2 * time.Second,
				BufferSize: 1232,
			},
		},
		{
			name:    "invalid server address",
			opts:    Options{Server: "not-a-hostport"},
			wantErr: "invalid server address",
		},
		{
			name:    "unimplemented protocol",
			opts:    Options{Proto: transport.ProtoDoT},
			wantErr: "not yet implemented",
		},
		{
			name:    "unknown protocol",
			opts:    Options{Proto: transport.Proto("carrier-pigeon")},
			wantErr: "unsupported transport protocol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.opts)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, client)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, client)

			if tt.opts.Server == "" {
				assert.Equal(t, DefaultServer, client.server)
			} else {
				assert.Equal(t, tt.opts.Server, client.server)
			}
			if tt.opts.Proto == "" {
				assert.Equal(t, DefaultProto, client.proto)
			}
			if tt.opts.Timeout <= 0 {
				assert.Equal(t, DefaultTimeout, client.timeout)
			}
			if tt.opts.BufferSize <= 0 {
				assert.Equal(t, transport.DefaultBufferSize, client.bufSize)
			}
			assert.NotNil(t, client.codec)
			assert.NotNil(t, client.clock)
			assert.NotNil(t, client.logger)
		})
	}
}

func TestClient_Query(t *testing.T) {
	queryBytes := []byte("encoded query")
	responseBytes := []byte("encoded response")
	response := createTestResponse()

	tests := []struct {
		name       string
		queryName  string
		setupMocks func(*MockCodec, *MockConn)
		dialErr    error
		wantErr    error
		wantErrMsg string
	}{
		{
			name:      "successful query",
			queryName: "example.com",
			setupMocks: func(codec *MockCodec, conn *MockConn) {
				codec.On("Encode", matchQuestion("example.com", domain.RRTypeA)).Return(queryBytes, nil)
				codec.On("Decode", responseBytes).Return(response, nil)
				conn.On("Write", queryBytes).Return(len(queryBytes), nil)
				conn.On("Read", mock.AnythingOfType("[]uint8")).Return(len(responseBytes), nil)
				conn.On("Close").Return(nil)
				conn.readData = responseBytes
			},
		},
		{
			name:      "name is canonicalized before encoding",
			queryName: "  WWW.Example.COM. ",
			setupMocks: func(codec *MockCodec, conn *MockConn) {
				codec.On("Encode", matchQuestion("www.example.com", domain.RRTypeA)).Return(queryBytes, nil)
				codec.On("Decode", responseBytes).Return(response, nil)
				conn.On("Write", queryBytes).Return(len(queryBytes), nil)
				conn.On("Read", mock.AnythingOfType("[]uint8")).Return(len(responseBytes), nil)
				conn.On("Close").Return(nil)
				conn.readData = responseBytes
			},
		},
		{
			name:      "unicode name becomes punycode",
			queryName: "bücher.example",
			setupMocks: func(codec *MockCodec, conn *MockConn) {
				codec.On("Encode", matchQuestion("xn--bcher-kva.example", domain.RRTypeA)).Return(queryBytes, nil)
				codec.On("Decode", responseBytes).Return(response, nil)
				conn.On("Write", queryBytes).Return(len(queryBytes), nil)
				conn.On("Read", mock.AnythingOfType("[]uint8")).Return(len(responseBytes), nil)
				conn.On("Close").Return(nil)
				conn.readData = responseBytes
			},
		},
		{
			name:       "empty name",
			queryName:  "   ",
			setupMocks: func(codec *MockCodec, conn *MockConn) {},
			wantErr:    domain.ErrInvalidName,
		},
		{
			name:      "encode error",
			queryName: "example.com",
			setupMocks: func(codec *MockCodec, conn *MockConn) {
				codec.On("Encode", mock.Anything).Return([]byte(nil), errors.New("encode failed"))
			},
			wantErrMsg: "failed to encode query",
		},
		{
			name:      "dial error maps to network failure",
			queryName: "example.com",
			setupMocks: func(codec *MockCodec, conn *MockConn) {
				codec.On("Encode", mock.Anything).Return(queryBytes, nil)
			},
			dialErr: errors.New("connection refused"),
			wantErr: domain.ErrNetwork,
		},
		{
			name:      "decode error",
			queryName: "example.com",
			setupMocks: func(codec *MockCodec, conn *MockConn) {
				codec.On("Encode", mock.Anything).Return(queryBytes, nil)
				codec.On("Decode", responseBytes).Return(domain.Message{}, errors.New("decode failed"))
				conn.On("Write", queryBytes).Return(len(queryBytes), nil)
				conn.On("Read", mock.AnythingOfType("[]uint8")).Return(len(responseBytes), nil)
				conn.On("Close").Return(nil)
				conn.readData = responseBytes
			},
			wantErrMsg: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := &MockCodec{}
			conn := &MockConn{}
			tt.setupMocks(codec, conn)

			dial := func(ctx context.Context, network, address string) (net.Conn, error) {
				if tt.dialErr != nil {
					return nil, tt.dialErr
				}
				return conn, nil
			}

			client, err := New(Options{
				Server: "192.0.2.1:53",
				Codec:  codec,
				Dial:   dial,
			})
			require.NoError(t, err)

			resp, err := client.Query(context.Background(), tt.queryName, domain.RRTypeA, QueryOptions{})

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				assert.NoError(t, err)
				assert.Equal(t, response, resp)
			}

			codec.AssertExpectations(t)
			conn.AssertExpectations(t)
		})
	}
}

func TestClient_Query_ResponseReturnedVerbatim(t *testing.T) {
	// A response whose ID cannot match the query and whose flags say NXDOMAIN
	// must come back untouched: the client performs no verification.
	queryBytes := []byte("encoded query")
	responseBytes := []byte("encoded response")
	mismatched := domain.Message{
		Header: domain.Header{
			ID: 1, // random query IDs are never checked
			Flags: domain.Flags{
				Response: true,
				RCode:    domain.RCodeNXDomain,
			},
		},
	}

	codec := &MockCodec{}
	conn := &MockConn{}
	codec.On("Encode", mock.Anything).Return(queryBytes, nil)
	codec.On("Decode", responseBytes).Return(mismatched, nil)
	conn.On("Write", queryBytes).Return(len(queryBytes), nil)
	conn.On("Read", mock.AnythingOfType("[]uint8")).Return(len(responseBytes), nil)
	conn.On("Close").Return(nil)
	conn.readData = responseBytes

	client, err := New(Options{
		Server: "192.0.2.1:53",
		Codec:  codec,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			return conn, nil
		},
	})
	require.NoError(t, err)

	resp, err := client.Query(context.Background(), "example.com", domain.RRTypeA, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, mismatched, resp)
}

func TestClient_Query_PerCallOverrides(t *testing.T) {
	type dialCall struct {
		network string
		address string
	}

	codec := &MockCodec{}
	codec.On("Encode", mock.Anything).Return([]byte("q"), nil)

	var calls []dialCall
	client, err := New(Options{
		Server: "192.0.2.1:53",
		Proto:  transport.ProtoUDP,
		Codec:  codec,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			calls = append(calls, dialCall{network, address})
			return nil, errors.New("stop after dial")
		},
	})
	require.NoError(t, err)

	// Defaults reach the dialer
	_, err = client.Query(context.Background(), "example.com", domain.RRTypeA, QueryOptions{})
	require.Error(t, err)

	// Overrides replace server and protocol for this call only
	_, err = client.Query(context.Background(), "example.com", domain.RRTypeA, QueryOptions{
		Server: "198.51.100.9:5353",
		Proto:  transport.ProtoTCP,
	})
	require.Error(t, err)

	// Next call reverts to the client defaults
	_, err = client.Query(context.Background(), "example.com", domain.RRTypeA, QueryOptions{})
	require.Error(t, err)

	require.Len(t, calls, 3)
	assert.Equal(t, dialCall{"udp", "192.0.2.1:53"}, calls[0])
	assert.Equal(t, dialCall{"tcp", "198.51.100.9:5353"}, calls[1])
	assert.Equal(t, dialCall{"udp", "192.0.2.1:53"}, calls[2])
}

func TestClient_Query_ContextCancelled(t *testing.T) {
	codec := &MockCodec{}
	conn := &MockConn{}
	codec.On("Encode", mock.Anything).Return([]byte("q"), nil)
	conn.On("Write", mock.Anything).Return(1, nil)
	// Block the read long enough for the cancellation to win
	conn.On("Read", mock.AnythingOfType("[]uint8")).Run(func(mock.Arguments) {
		time.Sleep(200 * time.Millisecond)
	}).Return(0, errors.New("read interrupted"))
	conn.On("Close").Return(nil)

	client, err := New(Options{
		Server: "192.0.2.1:53",
		Codec:  codec,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			return conn, nil
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = client.Query(ctx, "example.com", domain.RRTypeA, QueryOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Resolve(t *testing.T) {
	queryBytes := []byte("encoded query")
	responseBytes := []byte("encoded response")

	tests := []struct {
		name     string
		response domain.Message
		want     []domain.RData
		wantErr  error
	}{
		{
			name:     "answers flattened to record data",
			response: createTestResponse(),
			want:     []domain.RData{domain.IPData{IP: net.IPv4(93, 184, 216, 34).To4()}},
		},
		{
			name: "empty answer section",
			response: domain.Message{
				Header: domain.Header{
					Flags: domain.Flags{Response: true, RCode: domain.RCodeNXDomain},
				},
			},
			wantErr: domain.ErrNoAnswers,
		},
		{
			name: "unparseable answers are dropped",
			response: domain.Message{
				Header: domain.Header{Flags: domain.Flags{Response: true}},
				Answers: []domain.ResourceRecord{
					{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 60, Data: nil},
					{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 60, Data: domain.IPData{IP: net.IPv4(192, 0, 2, 7).To4()}},
				},
			},
			want: []domain.RData{domain.IPData{IP: net.IPv4(192, 0, 2, 7).To4()}},
		},
		{
			name: "all answers unparseable",
			response: domain.Message{
				Header: domain.Header{Flags: domain.Flags{Response: true}},
				Answers: []domain.ResourceRecord{
					{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 60, Data: nil},
				},
			},
			wantErr: domain.ErrNoAnswers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := &MockCodec{}
			conn := &MockConn{}
			codec.On("Encode", mock.Anything).Return(queryBytes, nil)
			codec.On("Decode", responseBytes).Return(tt.response, nil)
			conn.On("Write", queryBytes).Return(len(queryBytes), nil)
			conn.On("Read", mock.AnythingOfType("[]uint8")).Return(len(responseBytes), nil)
			conn.On("Close").Return(nil)
			conn.readData = responseBytes

			client, err := New(Options{
				Server: "192.0.2.1:53",
				Codec:  codec,
				Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
					return conn, nil
				},
			})
			require.NoError(t, err)

			got, err := client.Resolve(context.Background(), "example.com", domain.RRTypeA, QueryOptions{})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRandomID_Varies(t *testing.T) {
	// Drawing a handful of IDs should not produce a single constant value.
	seen := make(map[uint16]bool)
	for i := 0; i < 32; i++ {
		id, err := randomID()
		require.NoError(t, err)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}
