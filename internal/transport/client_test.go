package transport_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herego/herego/internal/transport"
)

func TestDefaultClientConfig(t *testing.T) {
	cfg := transport.DefaultClientConfig("here-routing")

	assert.Equal(t, "here-routing", cfg.Name)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestClient_Do_SetsRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		assert.NotEmpty(t, id)
		assert.True(t, strings.HasPrefix(id, "req_"), "request id %q should have req_ prefix", id)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := transport.NewClient(transport.ClientConfig{Name: "here-test", Logger: zerolog.Nop()})

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestClient_Do_PreservesExistingRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req_existing", r.Header.Get("X-Request-Id"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := transport.NewClient(transport.DefaultClientConfig("here-test"))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "req_existing")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestClient_Do_UniqueRequestIDs(t *testing.T) {
	ids := make(map[string]bool)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[r.Header.Get("X-Request-Id")] = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := transport.NewClient(transport.DefaultClientConfig("here-test"))

	for i := 0; i < 10; i++ {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Len(t, ids, 10)
}

func TestClient_Do_SingleAttemptOn5xx(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := transport.NewClient(transport.DefaultClientConfig("here-test"))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestClient_Do_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := transport.NewClient(transport.DefaultClientConfig("here-test"))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	assert.Error(t, err)
	assert.Nil(t, resp)
}
