package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// testServer fakes the token and search endpoints. The handler passed in
// serves everything except the token path.
func testServer(t *testing.T, tokenCalls *atomic.Int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "test-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "test-secret", r.PostForm.Get("client_secret"))
		json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok-1", TokenType: "Bearer", ExpiresIn: 1799})
	})
	mux.HandleFunc("/", handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// testClient builds a client against the given server with rate limiting
// effectively disabled.
func testClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		BaseURL:      srv.URL,
		RateLimit:    1000,
		RateBurst:    100,
	}, zerolog.Nop())
}

func searchQuery(constraints domain.QueryConstraints) domain.SearchQuery {
	return domain.SearchQuery{
		Origin:        "JFK",
		Destination:   "CUN",
		DepartureDate: "2026-04-15",
		ReturnDate:    "2026-04-22",
		Adults:        1,
		Constraints:   constraints,
	}
}

func TestClient_Search_QueryParameters(t *testing.T) {
	tests := []struct {
		name        string
		constraints domain.QueryConstraints
		check       func(*testing.T, map[string][]string)
	}{
		{
			name:        "baseline single-adult round trip",
			constraints: domain.QueryConstraints{},
			check: func(t *testing.T, q map[string][]string) {
				assert.Equal(t, "JFK", q["originLocationCode"][0])
				assert.Equal(t, "CUN", q["destinationLocationCode"][0])
				assert.Equal(t, "2026-04-15", q["departureDate"][0])
				assert.Equal(t, "2026-04-22", q["returnDate"][0])
				assert.Equal(t, "1", q["adults"][0])
				_, hasNonStop := q["nonStop"]
				assert.False(t, hasNonStop)
				_, hasExcluded := q["excludedAirlineCodes"]
				assert.False(t, hasExcluded)
			},
		},
		{
			name:        "non-stop pushed as query parameter",
			constraints: domain.QueryConstraints{NonStop: true},
			check: func(t *testing.T, q map[string][]string) {
				assert.Equal(t, "true", q["nonStop"][0])
			},
		},
		{
			name:        "excluded airlines joined with commas",
			constraints: domain.QueryConstraints{ExcludedAirlines: []string{"NK", "F9"}},
			check: func(t *testing.T, q map[string][]string) {
				assert.Equal(t, "NK,F9", q["excludedAirlineCodes"][0])
			},
		},
		{
			name:        "empty excluded airlines never sent as empty parameter",
			constraints: domain.QueryConstraints{ExcludedAirlines: []string{}},
			check: func(t *testing.T, q map[string][]string) {
				_, has := q["excludedAirlineCodes"]
				assert.False(t, has)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokenCalls atomic.Int32
			var gotQuery map[string][]string
			srv := testServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/v2/shopping/flight-offers", r.URL.Path)
				assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
				gotQuery = r.URL.Query()
				json.NewEncoder(w).Encode(searchResponse{Data: []flightOffer{rawOffer("1", "400.00")}})
			})

			offers, err := testClient(srv).Search(context.Background(), searchQuery(tt.constraints))

			require.NoError(t, err)
			require.Len(t, offers, 1)
			tt.check(t, gotQuery)
		})
	}
}

func TestClient_Search_TokenCachedAcrossCalls(t *testing.T) {
	var tokenCalls atomic.Int32
	srv := testServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{})
	})
	client := testClient(srv)

	for i := 0; i < 3; i++ {
		_, err := client.Search(context.Background(), searchQuery(domain.QueryConstraints{}))
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestClient_Search_ErrorMapping(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantRetryable bool
	}{
		{"rate limit is retryable", http.StatusTooManyRequests, true},
		{"server error is retryable", http.StatusInternalServerError, true},
		{"bad request is not retryable", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokenCalls atomic.Int32
			srv := testServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(errorResponse{Errors: []apiError{{Status: tt.status, Title: "nope", Detail: "test"}}})
			})

			_, err := testClient(srv).Search(context.Background(), searchQuery(domain.QueryConstraints{}))

			require.Error(t, err)
			var provErr *domain.ProviderError
			require.ErrorAs(t, err, &provErr)
			assert.Equal(t, ProviderName, provErr.Provider)
			assert.Equal(t, tt.wantRetryable, provErr.Retryable)
			assert.Contains(t, provErr.Error(), fmt.Sprintf("status %d", tt.status))
		})
	}
}

func TestClient_ResolveCityName(t *testing.T) {
	t.Run("resolves city name from first match", func(t *testing.T) {
		var tokenCalls atomic.Int32
		srv := testServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/reference-data/locations", r.URL.Path)
			assert.Equal(t, "CUN", r.URL.Query().Get("keyword"))
			assert.Equal(t, "AIRPORT", r.URL.Query().Get("subType"))
			json.NewEncoder(w).Encode(locationsResponse{Data: []locationEntry{
				{Name: "CANCUN INTL", Address: locationAddress{CityName: "Cancun"}},
			}})
		})

		assert.Equal(t, "Cancun", testClient(srv).ResolveCityName(context.Background(), "CUN"))
	})

	t.Run("falls back to code on lookup failure", func(t *testing.T) {
		var tokenCalls atomic.Int32
		srv := testServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		assert.Equal(t, "XXJ", testClient(srv).ResolveCityName(context.Background(), "XXJ"))
	})

	t.Run("falls back to code on empty result", func(t *testing.T) {
		var tokenCalls atomic.Int32
		srv := testServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(locationsResponse{})
		})

		assert.Equal(t, "XXJ", testClient(srv).ResolveCityName(context.Background(), "XXJ"))
	})
}

func TestClient_ImplementsPorts(t *testing.T) {
	var _ domain.SearchProvider = (*Client)(nil)
	var _ domain.LocationResolver = (*Client)(nil)
}
