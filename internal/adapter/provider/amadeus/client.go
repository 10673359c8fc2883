// Package amadeus implements the flight search provider ports against the
// Amadeus self-service REST API. The client owns OAuth2 token handling and
// a process-wide rate limit; the caller only sees domain types.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// ProviderName is the unique identifier for the Amadeus provider.
const ProviderName = "amadeus"

// DefaultBaseURL is the Amadeus self-service test environment.
const DefaultBaseURL = "https://test.api.amadeus.com"

// tokenExpirySlack is subtracted from the advertised token lifetime so a
// token is refreshed before it can expire mid-request.
const tokenExpirySlack = 30 * time.Second

// Config holds the client settings.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string

	// Timeout bounds each HTTP call; an elapsed timeout surfaces as a
	// retryable provider error for that pair
	Timeout time.Duration

	// RateLimit is the allowed searches per second across the whole
	// process, matching the provider's own throttling
	RateLimit float64

	// RateBurst is the limiter's burst allowance
	RateBurst int
}

// Client calls the Amadeus API. It implements domain.SearchProvider and
// domain.LocationResolver.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
	limiter    *rate.Limiter
	log        zerolog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a client from config. Zero-value timeout and rate
// settings fall back to conservative defaults.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 5
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   cfg.ClientID,
		secret:     cfg.ClientSecret,
		limiter:    rate.NewLimiter(rate.Limit(limit), burst),
		log:        log,
	}
}

// Search implements domain.SearchProvider. Query-time constraints are
// mapped onto provider parameters; an empty excluded-airlines constraint
// is omitted entirely rather than sent as an empty value.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) ([]domain.RoundTripOffer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.NewRetryableProviderError(ProviderName, err)
	}

	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.DepartureDate)
	params.Set("returnDate", query.ReturnDate)
	params.Set("adults", fmt.Sprintf("%d", query.Adults))
	if query.Constraints.NonStop {
		params.Set("nonStop", "true")
	}
	if len(query.Constraints.ExcludedAirlines) > 0 {
		params.Set("excludedAirlineCodes", strings.Join(query.Constraints.ExcludedAirlines, ","))
	}

	var resp searchResponse
	if err := c.get(ctx, "/v2/shopping/flight-offers", params, &resp); err != nil {
		return nil, err
	}

	return normalize(resp.Data, c.log), nil
}

// ResolveCityName implements domain.LocationResolver. The lookup is best
// effort: any failure falls back to the raw code and is never surfaced.
func (c *Client) ResolveCityName(ctx context.Context, iataCode string) string {
	if err := c.limiter.Wait(ctx); err != nil {
		return iataCode
	}

	params := url.Values{}
	params.Set("keyword", iataCode)
	params.Set("subType", "AIRPORT")

	var resp locationsResponse
	if err := c.get(ctx, "/v1/reference-data/locations", params, &resp); err != nil {
		c.log.Warn().Str("iata_code", iataCode).Err(err).Msg("Could not resolve city name, using IATA code")
		return iataCode
	}
	if len(resp.Data) == 0 || resp.Data[0].Address.CityName == "" {
		return iataCode
	}
	return resp.Data[0].Address.CityName
}

// get performs an authenticated GET and decodes the 200 response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return domain.NewProviderError(ProviderName, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewRetryableProviderError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewProviderError(ProviderName, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// apiError maps a non-200 response to a provider error. Throttling and
// server-side failures are retryable; other client errors are not.
func (c *Client) apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	detail := resp.Status
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		detail = fmt.Sprintf("%s: %s", envelope.Errors[0].Title, envelope.Errors[0].Detail)
	}
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, detail)

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return domain.NewRetryableProviderError(ProviderName, cause)
	}
	return domain.NewProviderError(ProviderName, cause)
}

// token returns a cached access token, fetching a fresh one when the
// cached token is missing or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.secret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", domain.NewProviderError(ProviderName, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewRetryableProviderError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.apiError(resp)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", domain.NewProviderError(ProviderName, fmt.Errorf("decode token response: %w", err))
	}
	if tok.AccessToken == "" {
		return "", domain.NewProviderError(ProviderName, fmt.Errorf("empty access token"))
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpirySlack)
	return c.accessToken, nil
}

// Ensure Client implements the provider ports at compile time.
var (
	_ domain.SearchProvider   = (*Client)(nil)
	_ domain.LocationResolver = (*Client)(nil)
)
