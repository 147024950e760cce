package entity

import "time"

// Protocol defines the type for RPC protocols.
type Protocol string

// Constants for known protocols.
const (
	ProtocolHTTP    Protocol = "http"
	ProtocolHTTPS   Protocol = "https"
	ProtocolWS      Protocol = "ws"
	ProtocolWSS     Protocol = "wss"
	ProtocolUnknown Protocol = "unknown"
)

// IsWebsocket reports whether the protocol is ws or wss.
func (p Protocol) IsWebsocket() bool {
	return p == ProtocolWS || p == ProtocolWSS
}

// ProbeResult is the outcome of a successful probe. A failed probe is reported
// through the error return of the prober instead.
type ProbeResult struct {
	Latency time.Duration
	// BlockNumber is nil when result.number could not be parsed as hex.
	BlockNumber *uint64
}
