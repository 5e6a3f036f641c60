package transport

import "fmt"

// New creates a transport for the given protocol. Keeping the protocol
// switch in one place lets additional transports plug in without touching
// callers.
func New(proto Proto, opts Options) (RoundTripper, error) {
	switch proto {
	case ProtoUDP:
		return NewUDPTransport(opts)

	case ProtoTCP:
		return NewTCPTransport(opts)

	case ProtoDoT:
		return nil, fmt.Errorf("DNS over TLS transport not yet implemented")

	case ProtoDoH:
		return nil, fmt.Errorf("DNS over HTTPS transport not yet implemented")

	default:
		return nil, fmt.Errorf("unsupported transport protocol: %s", proto)
	}
}

// SupportedProtos returns the list of currently implemented protocols.
func SupportedProtos() []Proto {
	return []Proto{
		ProtoUDP,
		ProtoTCP,
		// Future implementations will be added here:
		// ProtoDoT,
		// ProtoDoH,
	}
}

// IsProtoSupported checks if a given protocol is currently implemented.
func IsProtoSupported(proto Proto) bool {
	for _, p := range SupportedProtos() {
		if p == proto {
			return true
		}
	}
	return false
}
