package client

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"golang.org/x/net/proxy"
)

// DefaultPort is the Java Edition server port.
const DefaultPort = 25565

// ResolveAddress resolves a server address the way the vanilla client
// does: an explicit port wins; otherwise a _minecraft._tcp SRV record is
// consulted, falling back to the default port.
func ResolveAddress(address string) (string, uint16, error) {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		// no port in the address; the whole thing is the hostname
		host = address
		portStr = ""
	}

	if portStr != "" {
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return "", 0, fmt.Errorf("invalid port %q: %w", portStr, err)
		}
		return host, uint16(port), nil
	}

	if _, records, err := net.LookupSRV("minecraft", "tcp", host); err == nil && len(records) > 0 {
		srv := records[0]
		return strings.TrimSuffix(srv.Target, "."), srv.Port, nil
	}

	return host, DefaultPort, nil
}

// WithSOCKS5Proxy dials the server through a SOCKS5 proxy instead of a
// direct TCP connection.
func WithSOCKS5Proxy(proxyAddr string, auth *proxy.Auth) Option {
	return func(c *Client) {
		c.dialFunc = func(addr string) (net.Conn, error) {
			d, err := proxy.SOCKS5("tcp", proxyAddr, auth, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
			}
			return d.Dial("tcp", addr)
		}
	}
}

func (c *Client) dial(addr string) (net.Conn, error) {
	if c.dialFunc != nil {
		return c.dialFunc(addr)
	}
	return net.Dial("tcp", addr)
}
