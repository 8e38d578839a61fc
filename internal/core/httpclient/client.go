package httpclient

import (
	"net/http"
	"time"

	"cybake-bridge/internal/core/logger"

	"go.uber.org/zap"
)

// LoggingRoundTripper logs every outbound call made to an upstream API.
type LoggingRoundTripper struct {
	// Upstream names the remote system in log entries (e.g. shopify, cybake).
	Upstream string
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs its outcome. Header values are never logged.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := logger.Get().With(
		zap.String("upstream", lrt.Upstream),
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
	)

	log.Debug("HTTP Request Started")

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		log.Error("HTTP Request Failed", zap.Duration("duration", duration), zap.Error(err))
		return nil, err
	}

	log.Debug("HTTP Request Completed",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware.
func NewClient(upstream string, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Upstream: upstream,
			Proxied:  http.DefaultTransport,
		},
		Timeout: timeout,
	}
}
