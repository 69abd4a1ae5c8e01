// Package network provides the HTTP clients used to reach the catalog source.
package network

import (
	"net/http"
	"time"

	"github.com/peek-cli/peek/key"
	"github.com/spf13/viper"
)

// Client is the default shared client.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// FingerprintClient routes requests through a Chrome-like TLS handshake.
var FingerprintClient = &http.Client{
	Timeout:   time.Minute,
	Transport: NewFingerprintTransport(),
}

// Current returns the client selected by network.tls_fingerprint.
func Current() *http.Client {
	if viper.GetBool(key.NetworkTLSFingerprint) {
		return FingerprintClient
	}
	return Client
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}
