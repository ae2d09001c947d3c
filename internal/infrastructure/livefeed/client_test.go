package livefeed

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/fplcups/minileague/internal/platform/logging"
	"github.com/fplcups/minileague/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler fasthttp.RequestHandler, cfg Config) *Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	go func() {
		_ = fasthttp.Serve(ln, handler)
	}()
	t.Cleanup(func() { _ = ln.Close() })

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://livefeed.test"
	}
	client := NewClient(cfg, logging.NewNop())
	client.http.Dial = func(_ string) (net.Conn, error) {
		return ln.Dial()
	}
	return client
}

func TestClient_FetchLeague(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		hits.Add(1)
		if string(ctx.Path()) != "/leagues/1798895" {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}
		ctx.SetContentType("text/html")
		ctx.SetBodyString(leaguePage)
	}, Config{CacheTTL: time.Minute})

	records, err := client.FetchLeague(context.Background(), "1798895")
	if err != nil {
		t.Fatalf("FetchLeague error: %v", err)
	}
	if len(records) != 2 || records[0].TeamName != "John's XI" {
		t.Fatalf("unexpected records: %+v", records)
	}

	// Second read is served from cache.
	if _, err := client.FetchLeague(context.Background(), "1798895"); err != nil {
		t.Fatalf("cached FetchLeague error: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected 1 upstream fetch, got %d", got)
	}
}

func TestClient_FetchLeague_UpstreamError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
	}, Config{})

	_, err := client.FetchLeague(context.Background(), "42")
	if err == nil {
		t.Fatal("expected error for bad gateway")
	}
	if !IsUnavailable(err) {
		t.Fatalf("expected unavailability error, got %v", err)
	}
}

func TestClient_FetchLeague_BreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		hits.Add(1)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}, Config{
		CacheTTL: time.Nanosecond,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Hour,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchLeague(context.Background(), "42"); err == nil {
			t.Fatal("expected upstream failure")
		}
		time.Sleep(time.Millisecond)
	}

	// Breaker is open now: no more upstream calls.
	if _, err := client.FetchLeague(context.Background(), "42"); !IsUnavailable(err) {
		t.Fatalf("expected unavailability from open breaker, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 upstream fetches, got %d", got)
	}
}

func TestClient_FetchLeague_RequiresLeagueID(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{}, logging.NewNop())
	if _, err := client.FetchLeague(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty league id")
	}
}
