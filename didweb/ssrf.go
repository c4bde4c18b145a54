package didweb

import (
	"context"
	"fmt"
	"net"
)

// blockedRanges enumerates the P7 exclusion set: RFC 1918 private ranges,
// loopback, link-local, unique-local (IPv6 ULA), and the IPv6 loopback and
// link-local prefixes.
var blockedRanges = mustParseCIDRs(
	"127.0.0.0/8",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"169.254.0.0/16",
	"::1/128",
	"fe80::/10",
	"fc00::/7",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic("didweb: invalid blocked CIDR literal " + c)
		}
		nets = append(nets, n)
	}
	return nets
}

// isBlockedAddr reports whether ip falls within any P7 blocked range.
func isBlockedAddr(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}
	for _, n := range blockedRanges {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// guardedDialContext wraps a net.Dialer's DialContext so every connection
// this resolver's http.Client makes is resolved and range-checked before
// the TCP handshake, rejecting the whole dial with ErrBlockedHost if the
// resolved address is private or reserved (P7). This runs at dial time
// rather than only validating the literal hostname, so a DNS response
// rebound to a private address is caught too.
func guardedDialContext(dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
		}

		ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
		}
		if len(ips) == 0 {
			return nil, fmt.Errorf("%w: no addresses for host %q", ErrNetworkError, host)
		}
		for _, ipAddr := range ips {
			if isBlockedAddr(ipAddr.IP) {
				return nil, fmt.Errorf("%w: %s", ErrBlockedHost, ipAddr.IP)
			}
		}

		// Dial the already-resolved, already-checked address directly so a
		// second (TOCTOU) DNS resolution inside dialer.DialContext cannot
		// return a different, unchecked address.
		return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
	}
}
