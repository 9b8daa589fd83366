package sportmonks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fixture-gateway/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGet_ReturnsBodyOnSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("accept"))
		assert.Equal(t, "secret", r.URL.Query().Get("api_token"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{Token: "secret", Timeout: time.Second})
	raw, err := client.Get(context.Background(), srv.URL+"/core/countries?api_token=secret")
	require.NoError(t, err)
	require.JSONEq(t, `{"data":[]}`, string(raw))
}

func TestClientGet_NonSuccessStatusIsStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`maintenance for api_token=secret`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{Token: "secret", Timeout: time.Second})
	_, err := client.Get(context.Background(), srv.URL+"/football/fixtures/1?api_token=secret")
	require.Error(t, err)

	statusErr, ok := AsStatusError(crerr.Wrap(err, "fetch fixture"))
	require.True(t, ok, "expected status error, got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.NotContains(t, statusErr.Error(), "secret")
	assert.False(t, crerr.Is(err, ErrTransport))
}

func TestClientGet_TransportErrorIsRedacted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL
	srv.Close()

	client := NewClient(ClientConfig{Token: "secret", Timeout: time.Second})
	_, err := client.Get(context.Background(), target+"/core/countries?api_token=secret")
	require.Error(t, err)
	assert.True(t, crerr.Is(err, ErrTransport))
	assert.NotContains(t, err.Error(), "secret")
}

func TestClientGet_CircuitBreakerFailsFast(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		Timeout: time.Second,
		Clock:   clockwork.NewFakeClock(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	})

	_, err := client.Get(context.Background(), srv.URL)
	_, isStatus := AsStatusError(err)
	require.True(t, isStatus)

	_, err = client.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, crerr.Is(err, resilience.ErrCircuitOpen))
	assert.True(t, crerr.Is(err, ErrTransport))
	assert.Equal(t, int32(1), hits.Load(), "open breaker must not reach the provider")
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	got := RedactURL("https://api.sportmonks.com/v3/football/fixtures/1?include=lineups.player&api_token=abc123")
	assert.NotContains(t, got, "abc123")
	assert.Contains(t, got, "api_token=REDACTED")
	assert.Contains(t, got, "include=lineups.player")
}

func TestDecodeCountries(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		out, err := DecodeCountries([]byte(`{"data":[{"id":12,"name":"Brazil"},{"id":5,"name":null}]}`))
		require.NoError(t, err)
		require.Len(t, out.Data, 2)
		assert.Equal(t, int64(12), *out.Data[0].ID)
		assert.Equal(t, "Brazil", *out.Data[0].Name)
		assert.Nil(t, out.Data[1].Name)
	})

	invalid := map[string]string{
		"not json":       `<html>`,
		"missing data":   `{"message":"ok"}`,
		"data not array": `{"data":{"id":1}}`,
		"missing id":     `{"data":[{"name":"Brazil"}]}`,
		"string id":      `{"data":[{"id":"12","name":"Brazil"}]}`,
	}
	for name, body := range invalid {
		body := body
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCountries([]byte(body))
			require.Error(t, err)
		})
	}
}

func TestDecodeEnvelope(t *testing.T) {
	t.Parallel()

	data, present, err := DecodeEnvelope([]byte(`{"data":{"name":"A vs B"}}`))
	require.NoError(t, err)
	require.True(t, present)
	obj, ok := data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A vs B", obj["name"])

	_, present, err = DecodeEnvelope([]byte(`{"message":"No result(s) found"}`))
	require.NoError(t, err)
	assert.False(t, present)

	_, _, err = DecodeEnvelope([]byte(`not json`))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decode provider payload"))
}
