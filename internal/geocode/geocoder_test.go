package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1600 Pennsylvania Ave", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":38.8977,"lng":-77.0365}}}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "test-key")
	loc, err := c.Resolve(context.Background(), "1600 Pennsylvania Ave")
	require.NoError(t, err)
	assert.InDelta(t, 38.8977, loc.Lat, 1e-9)
	assert.InDelta(t, -77.0365, loc.Lng, 1e-9)
}

func TestResolveZeroResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	_, err := c.Resolve(context.Background(), "nowhere at all")
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusUnprocessableEntity, ge.Status)
}

func TestResolveProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	_, err := c.Resolve(context.Background(), "somewhere")
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusInternalServerError, ge.Status)
}

func TestResolveEmptyAddress(t *testing.T) {
	c := NewClient("http://localhost:0", "")
	_, err := c.Resolve(context.Background(), "   ")
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusUnprocessableEntity, ge.Status)
}
