package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the NOAA paleo study search endpoint.
	DefaultBaseURL = "https://www.ncei.noaa.gov/access/paleo-search/study/search.json"

	// DefaultLimit caps the number of studies a search returns when
	// the caller does not set a limit.
	DefaultLimit = 100

	defaultTimeout   = 30 * time.Second
	defaultRetries   = 2
	defaultBackoff   = 800 * time.Millisecond
	defaultCacheTTL  = time.Hour
	cacheSweepPeriod = 10 * time.Minute
)

// Client queries the NOAA paleoclimatology study archive.
//
// A Client retries transport failures with exponential backoff,
// caches downloaded data files by URL, and logs query normalizations
// through logrus. The zero configuration from NewClient is ready to
// use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	retries    int
	backoff    time.Duration
	log        *logrus.Logger
	cache      *cache.Cache
	cacheTTL   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different search endpoint,
// typically a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetries sets how many times a failed request is retried.
// Only transport failures are retried; HTTP error statuses are not.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithBackoff sets the base delay between retries. The delay doubles
// after each attempt.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger replaces the client's logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithCacheTTL sets how long downloaded data files stay cached.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) { c.cacheTTL = d }
}

// WithoutCache disables the data file cache.
func WithoutCache() Option {
	return func(c *Client) { c.cache = nil }
}

// NewClient returns a Client with sensible defaults: the public NOAA
// endpoint, two retries, and an hour-long file cache.
func NewClient(opts ...Option) *Client {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  "paleotext (github.com/tsawler/paleotext)",
		retries:    defaultRetries,
		backoff:    defaultBackoff,
		log:        log,
		cache:      cache.New(defaultCacheTTL, cacheSweepPeriod),
		cacheTTL:   defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-success HTTP response from the archive.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NOAA API error (status %d) for %s: %s", e.StatusCode, e.URL, e.Body)
}

// Search queries the study endpoint with the given parameters.
//
// A response with no matching studies is not an error: the result is
// empty and, when the query filtered by investigator, a note reminds
// the caller of the "LastName, Initials" format NOAA expects.
func (c *Client) Search(ctx context.Context, params SearchParams) (*Result, error) {
	values, notes, err := params.Values()
	if err != nil {
		return nil, err
	}
	for _, note := range notes {
		c.log.Infof("search: %s", note)
	}

	resp, err := c.get(ctx, c.baseURL, values)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		if inv := values.Get("investigators"); inv != "" {
			hint := fmt.Sprintf("no studies matched investigators %q; NOAA expects names as \"LastName, Initials\"", inv)
			c.log.Warn(hint)
			notes = append(notes, hint)
		}
		return newResult(nil, notes), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        c.baseURL,
			Body:       bodyExcerpt(resp.Body),
		}
	}

	var sr SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if limit, perr := strconv.Atoi(values.Get("limit")); perr == nil && limit > 0 && len(sr.Studies) >= limit {
		hint := fmt.Sprintf("retrieved %d studies, which is the requested limit; more may match", len(sr.Studies))
		c.log.Warn(hint)
		notes = append(notes, hint)
	}

	c.log.Debugf("search returned %d studies", len(sr.Studies))
	return newResult(sr.Studies, notes), nil
}

// get performs a GET with retries and exponential backoff. HTTP error
// statuses are returned to the caller untouched; only transport
// failures are retried.
func (c *Client) get(ctx context.Context, rawURL string, values url.Values) (*http.Response, error) {
	target := rawURL
	if len(values) > 0 {
		target += "?" + values.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := c.backoff * time.Duration(1<<(attempt-1))
			c.log.Debugf("retrying in %s (attempt %d of %d)", delay, attempt+1, c.retries+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		c.log.Warnf("request to %s failed: %v", rawURL, err)
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.retries+1, lastErr)
}

// bodyExcerpt reads at most 512 bytes of an error response body for
// inclusion in an APIError.
func bodyExcerpt(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(b) == 0 {
		return "(no response body)"
	}
	return string(b)
}
