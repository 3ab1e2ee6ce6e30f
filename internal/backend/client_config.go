package backend

import (
	"time"

	"resty.dev/v3"
)

var DefaultTransportSettings = &resty.TransportSettings{
	DialerTimeout:         2 * time.Second,
	DialerKeepAlive:       30 * time.Second,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   2 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 10 * time.Second,
}
