package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cybake-bridge/internal/core/config"

	"github.com/stretchr/testify/assert"
)

func TestCybakeProber_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key_123", r.Header.Get("x-api-key"))
		assert.Equal(t, "2.0", r.Header.Get("x-api-version"))

		if r.URL.Path == "/api/home" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer server.Close()

	p := NewCybakeProber(config.CybakeConfig{URL: server.URL + "/", APIKey: "key_123", APIVersion: "2.0"}, 5*time.Second)

	home := p.Get(context.Background(), "/api/home")
	assert.Equal(t, http.StatusMethodNotAllowed, home.Status)

	other := p.Get(context.Background(), "/swagger")
	assert.Equal(t, http.StatusNotFound, other.Status)
	assert.Equal(t, "not found", other.Body)
}
