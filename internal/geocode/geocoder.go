// Package geocode resolves free-text addresses into coordinates by
// calling an external geocoding provider over HTTP. The client makes
// exactly one call per invocation: no caching and no retries. Failures
// carry the HTTP status and message the handlers forward to the client
// unchanged, so a bad address surfaces as the provider adapter decided,
// not as a generic internal error.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/places-api/internal/model"
)

// Error is a resolution failure the caller can forward verbatim.
// Status is the HTTP status the API should respond with and Message
// is the client-facing text.
type Error struct {
	Status  int    // HTTP status to surface (422 for unresolvable, 500 otherwise)
	Message string // client-facing message
}

func (e *Error) Error() string { return e.Message }

// Client talks to a Google-style geocoding endpoint:
//
//	GET {BaseURL}?address=<urlencoded>&key=<APIKey>
//
// responding with {"status": "OK", "results":[{"geometry":{"location":{"lat":..,"lng":..}}}]}.
// The zero value is not usable; construct with NewClient.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a geocoding client for the given endpoint and API
// key. The underlying HTTP client carries a conservative timeout since
// the adapter itself implements no cancellation logic beyond the
// request context.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// providerResponse mirrors the subset of the provider payload we read.
type providerResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve turns a non-empty address into a coordinate pair. A provider
// error or an address the provider cannot locate yields a *Error; the
// 422 case means the client should fix the address and resubmit.
func (c *Client) Resolve(ctx context.Context, address string) (model.Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return model.Location{}, &Error{Status: http.StatusUnprocessableEntity, Message: "address must not be empty"}
	}

	u := fmt.Sprintf("%s?address=%s&key=%s", c.baseURL, url.QueryEscape(address), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Location{}, &Error{Status: http.StatusInternalServerError, Message: "could not reach geocoding service"}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return model.Location{}, &Error{Status: http.StatusInternalServerError, Message: "could not reach geocoding service"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Location{}, &Error{Status: http.StatusInternalServerError, Message: "geocoding service returned an error"}
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.Location{}, &Error{Status: http.StatusInternalServerError, Message: "could not parse geocoding response"}
	}

	if body.Status == "ZERO_RESULTS" || len(body.Results) == 0 {
		return model.Location{}, &Error{Status: http.StatusUnprocessableEntity, Message: "could not find location for the specified address"}
	}
	if body.Status != "OK" {
		return model.Location{}, &Error{Status: http.StatusInternalServerError, Message: "geocoding service returned an error"}
	}

	loc := body.Results[0].Geometry.Location
	return model.Location{Lat: loc.Lat, Lng: loc.Lng}, nil
}
