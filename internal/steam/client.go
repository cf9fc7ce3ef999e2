package steam

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultCommunityURL = "https://steamcommunity.com"
	defaultStoreURL     = "https://store.steampowered.com"

	// MaxBodySize caps how much of a detail payload is read for the
	// keyword scan.
	MaxBodySize = 2 * 1024 * 1024
)

// Client talks to the Steam community and store endpoints. It owns no
// business logic: transport plus the minimal parsing the XML endpoints
// need. All requests share one outbound rate budget.
type Client struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	communityURL string
	storeURL     string
	throttleWait time.Duration
	logger       zerolog.Logger
}

type Options struct {
	// CommunityURL and StoreURL override the production endpoints,
	// mainly for tests.
	CommunityURL string
	StoreURL     string
	// ThrottleWait is how long to wait after a 429 before retrying.
	ThrottleWait time.Duration
	// RequestsPerSecond is the steady request budget across all calls.
	RequestsPerSecond float64
}

func NewClient(opts Options, logger zerolog.Logger) *Client {
	if opts.CommunityURL == "" {
		opts.CommunityURL = defaultCommunityURL
	}
	if opts.StoreURL == "" {
		opts.StoreURL = defaultStoreURL
	}
	if opts.ThrottleWait <= 0 {
		opts.ThrottleWait = 60 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		communityURL: opts.CommunityURL,
		storeURL:     opts.StoreURL,
		throttleWait: opts.ThrottleWait,
		logger:       logger.With().Str("component", "steam").Logger(),
	}
}

// get waits for the rate budget, then performs the request. The caller
// owns the response body.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

// ctxReader makes long body reads cancellable: the context is checked
// on every Read, not just between requests.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
