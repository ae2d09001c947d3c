package livefeed

import (
	"bytes"
	"context"
	stderrors "errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/fplcups/minileague/internal/domain/scoring"
	"github.com/fplcups/minileague/internal/platform/cache"
	"github.com/fplcups/minileague/internal/platform/logging"
	"github.com/fplcups/minileague/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://plan.livefpl.net"
	defaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var errFeedUnavailable = crerr.New("live feed unavailable")

// IsUnavailable reports whether the error came from the feed being
// down or the breaker being open, as opposed to a parse failure.
func IsUnavailable(err error) bool {
	return stderrors.Is(err, errFeedUnavailable)
}

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client scrapes the live league page. One upstream fetch at a time
// per league: concurrent requests share a flight and results are
// cached for a short TTL because live scores move slowly.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
	breaker *resilience.CircuitBreaker
	cache   *cache.Store
	logger  *logging.Logger
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	cb := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	var breaker *resilience.CircuitBreaker
	if cb.Enabled {
		breaker = resilience.NewCircuitBreaker(cb.FailureThreshold, cb.OpenTimeout, cb.HalfOpenMaxReq)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		http: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		breaker: breaker,
		cache:   cache.NewStore(cfg.CacheTTL),
		logger:  logger,
	}
}

// FetchLeague returns the live records for a league, most recently
// cached copy first. No retries: the caller already degrades to
// historical data on failure.
func (c *Client) FetchLeague(ctx context.Context, leagueID string) ([]scoring.LiveRecord, error) {
	if leagueID == "" {
		return nil, crerr.New("league id is required")
	}

	value, err := c.cache.GetOrLoad(ctx, "league:"+leagueID, func(ctx context.Context) (any, error) {
		return c.fetch(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return value.([]scoring.LiveRecord), nil
}

func (c *Client) fetch(ctx context.Context, leagueID string) ([]scoring.LiveRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return nil, crerr.Wrap(errFeedUnavailable, err.Error())
		}
	}

	body, err := c.get(c.baseURL + "/leagues/" + leagueID)
	if err != nil {
		if c.breaker != nil {
			c.breaker.RecordFailure()
		}
		c.logger.WarnContext(ctx, "live league page fetch failed", "league_id", leagueID, "error", err)
		return nil, crerr.WithSecondaryError(errFeedUnavailable, err)
	}
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}

	records, err := ParseLeaguePage(bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrap(err, "parse live league page")
	}
	c.logger.DebugContext(ctx, "live league page parsed", "league_id", leagueID, "records", len(records))
	return records, nil
}

func (c *Client) get(url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(userAgent)

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, crerr.Wrapf(err, "GET %s", url)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, crerr.Newf("GET %s: unexpected status %d", url, code)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
