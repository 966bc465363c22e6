package trend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c, err := New(Config{
		Endpoint: endpoint,
		Logger:   &mockLogger{},
		Coin:     func() bool { return true },
	})
	require.NoError(t, err)
	return c
}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"is_bullish": true, "confidence": "high"}`))
	}))
	defer srv.Close()

	signal, err := newClient(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, signal.Bullish)
	assert.Equal(t, "high", signal.Confidence)
	assert.False(t, signal.Degraded)
}

func TestClient_FetchDefaultsConfidence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_bullish": false}`))
	}))
	defer srv.Close()

	signal, err := newClient(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, signal.Bullish)
	assert.Equal(t, "medium", signal.Confidence)
}

func TestClient_FetchDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	signal, err := newClient(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, signal.Degraded)
	assert.Equal(t, "low", signal.Confidence)
	assert.True(t, signal.Bullish) // deterministic test coin
}

func TestClient_FetchDegradesOnEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	signal, err := newClient(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, signal.Degraded)
}

func TestClient_FetchDegradesOnConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	signal, err := newClient(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, signal.Degraded)
}

func TestClient_FetchDegradesOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_bullish": `))
	}))
	defer srv.Close()

	signal, err := newClient(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, signal.Degraded)
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{Logger: &mockLogger{}})
	assert.Error(t, err)
	_, err = New(Config{Endpoint: "http://example.com"})
	assert.Error(t, err)
}
