package domain

import (
	"errors"
	"unicode/utf8"
)

// ErrCredentialsNotConfigured is returned when the app client id or secret is empty.
var ErrCredentialsNotConfigured = errors.New("shopify app credentials not configured")

// MaxProbeBody bounds the response text kept per probe.
const MaxProbeBody = 500

// ProbeResult is the outcome of one outbound diagnostic call.
// Error is set instead of Status when the call never got a response.
type ProbeResult struct {
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ShopifyIdentity describes the configured store credentials without exposing them.
type ShopifyIdentity struct {
	Store        string `json:"store"`
	TokenLength  int    `json:"token_length"`
	TokenPreview string `json:"token_preview"`
}

// ShopifyReport is the result of the Shopify API probe.
type ShopifyReport struct {
	ShopifyIdentity
	// GraphQL is keyed by API version.
	GraphQL map[string]ProbeResult `json:"graphql"`
	REST    ProbeResult            `json:"rest_api"`
}

// CybakeReport maps each probed path to its result.
type CybakeReport map[string]ProbeResult

// TruncateBody cuts s to at most n bytes without splitting a UTF-8 sequence.
func TruncateBody(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
