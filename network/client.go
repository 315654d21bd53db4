// Package network provides the shared HTTP client used for release checks.
package network

import (
	"net/http"
	"time"
)

// Client is the HTTP client shared across the application.
// Release checks run in front of interactive commands, so every phase is bounded tightly.
var Client = &http.Client{
	Timeout:   5 * time.Second,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 5 * time.Second
	t.TLSHandshakeTimeout = 3 * time.Second
	return t
}
