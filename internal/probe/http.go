package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout   = 60 * time.Second
	DefaultUserAgent = "pageload/1.0"
)

// Config holds the connection settings shared by every measurement.
type Config struct {
	URL       string
	Timeout   time.Duration
	UserAgent string

	// StrictTLS enables certificate verification. Development servers commonly
	// run with self-signed certificates, so it is off by default.
	StrictTLS bool
}

// HTTPProbe measures how long a page takes to load over HTTP. Each call uses a
// fresh transport, so every sample includes connection setup to the server but
// nothing is shared between samples.
type HTTPProbe struct {
	cfg Config
}

// NewHTTPProbe validates cfg and returns a probe for cfg.URL.
func NewHTTPProbe(cfg Config) (*HTTPProbe, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", cfg.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid url %q: scheme must be http or https", cfg.URL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid url %q: missing host", cfg.URL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &HTTPProbe{cfg: cfg}, nil
}

// URL returns the page being measured.
func (p *HTTPProbe) URL() string {
	return p.cfg.URL
}

// Measure loads the page once and returns the time in milliseconds from the
// moment a connection was obtained until the last byte of the body was read.
func (p *HTTPProbe) Measure(ctx context.Context) (float64, error) {
	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DisableKeepAlives: true,
		TLSClientConfig:   &tls.Config{InsecureSkipVerify: !p.cfg.StrictTLS},
	}
	defer transport.CloseIdleConnections()

	client := &http.Client{
		Transport: transport,
		Timeout:   p.cfg.Timeout,
	}

	// Written from the transport's goroutines.
	var requestStart, firstByte atomic.Int64
	trace := &httptrace.ClientTrace{
		GotConn: func(httptrace.GotConnInfo) {
			requestStart.Store(time.Now().UnixNano())
		},
		GotFirstResponseByte: func() {
			firstByte.Store(time.Now().UnixNano())
		},
	}

	req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, trace), http.MethodGet, p.cfg.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", p.cfg.URL, err)
	}
	defer resp.Body.Close()

	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", p.cfg.URL, err)
	}
	end := time.Now()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("load %s: unexpected status %d", p.cfg.URL, resp.StatusCode)
	}

	from := start
	if ns := requestStart.Load(); ns != 0 {
		from = time.Unix(0, ns)
	}
	latency := end.Sub(from)

	ev := log.Debug().
		Str("url", p.cfg.URL).
		Int("status", resp.StatusCode).
		Int64("bytes", n).
		Dur("connect", from.Sub(start)).
		Dur("load", latency)
	if ns := firstByte.Load(); ns != 0 {
		ev = ev.Dur("ttfb", time.Unix(0, ns).Sub(from))
	}
	ev.Msg("Page loaded")

	return float64(latency) / float64(time.Millisecond), nil
}
