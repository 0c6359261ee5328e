package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient builds an HTTP client configured for external API calls.
//
// http.DefaultClient has no timeout, so callers must always use this
// client. The transport is tuned for connection reuse: proxy settings come
// from the environment, dials time out after 5s, and up to 100 idle
// connections are kept alive for 90s.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
