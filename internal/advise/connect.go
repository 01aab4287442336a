package advise

import (
	"context"
	"net"
	"time"
)

// DNSServers are public resolvers dialled to decide whether the network is up.
var DNSServers = []string{
	"8.8.8.8:53",
	"1.1.1.1:53",
	"9.9.9.9:53",
	"208.67.222.222:53",
}

// dialTimeout bounds each connection attempt.
const dialTimeout = 5 * time.Second

// DialFunc opens a connection. (*net.Dialer).DialContext satisfies it.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// CheckInternetConnection reports whether a TCP connection to any of servers
// succeeds. Servers are tried in order; no servers means DNSServers. A nil
// dial uses a net.Dialer.
func CheckInternetConnection(ctx context.Context, dial DialFunc, servers ...string) bool {
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}
	if len(servers) == 0 {
		servers = DNSServers
	}
	for _, addr := range servers {
		if ctx.Err() != nil {
			return false
		}
		if tryDial(ctx, dial, addr) {
			return true
		}
	}
	return false
}

func tryDial(ctx context.Context, dial DialFunc, addr string) bool {
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	conn, err := dial(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
