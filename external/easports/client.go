package easports

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hockey-league/internal/platform/cache"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
	"github.com/riskibarqy/hockey-league/internal/platform/resilience"
	"github.com/riskibarqy/hockey-league/internal/usecase"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL        = "https://proclubs.ea.com/api/nhl"
	defaultPlatform       = "common-gen5"
	defaultUserAgent      = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/119.0"
	defaultTimeout        = 15 * time.Second
	defaultMatchCacheTTL  = 30 * time.Second
	defaultRetryBackoff   = time.Second
	defaultMaxConcurrency = 4
	probeClubID           = 3383
	matchType             = "club_private"
	defaultMaxRespBytes   = 8 << 20
)

var _ usecase.MatchProvider = (*Client)(nil)

// DefaultClubIDs are the clubs tracked when none are configured.
var DefaultClubIDs = []int64{3383, 4388, 490, 765}

var errEASportsTransient = crerr.New("ea sports transient failure")

// ErrResponseTooLarge reports a response body over the configured limit.
var ErrResponseTooLarge = crerr.New("ea sports response too large")

// ErrMatchNotFound reports a match id absent from every tracked club's history.
var ErrMatchNotFound = crerr.Wrap(usecase.ErrNotFound, "ea sports match")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Platform       string
	ClubIDs        []int64
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	UserAgent      string
	MatchCacheTTL  time.Duration
	MaxConcurrency int
	// MaxResponseBytes caps a decoded response body; zero uses 8 MiB.
	MaxResponseBytes int
	CircuitBreaker   resilience.CircuitBreakerConfig
	Logger           *logging.Logger
}

// Client reads Pro Clubs match history for a mutable set of clubs.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	platform       string
	userAgent      string
	timeout        time.Duration
	retry          resilience.RetryPolicy
	maxConcurrency int
	maxRespBytes   int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	flight         singleflight.Group
	matches        *cache.Store

	clubMu  sync.RWMutex
	clubIDs []int64
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("easports")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "hockey-league",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	platform := strings.TrimSpace(cfg.Platform)
	if platform == "" {
		platform = defaultPlatform
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	concurrency := cfg.MaxConcurrency
	if concurrency <= 0 {
		concurrency = defaultMaxConcurrency
	}

	maxRespBytes := cfg.MaxResponseBytes
	if maxRespBytes <= 0 {
		maxRespBytes = defaultMaxRespBytes
	}

	var matches *cache.Store
	switch {
	case cfg.MatchCacheTTL == 0:
		matches = cache.NewStore(defaultMatchCacheTTL)
	case cfg.MatchCacheTTL > 0:
		matches = cache.NewStore(cfg.MatchCacheTTL)
	}

	c := &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		platform:       platform,
		userAgent:      userAgent,
		timeout:        timeout,
		retry:          resilience.RetryPolicy{MaxRetries: max(cfg.MaxRetries, 0), Backoff: resilience.LinearBackoff(backoff)},
		maxConcurrency: concurrency,
		maxRespBytes:   maxRespBytes,
		logger:         logger,
		breaker:        resilience.NewCircuitBreakerFromConfig(breakerConfig(cfg.CircuitBreaker, logger)),
		matches:        matches,
	}

	clubIDs := cfg.ClubIDs
	if len(clubIDs) == 0 {
		clubIDs = DefaultClubIDs
	}
	if err := c.SetClubIDs(clubIDs); err != nil {
		c.logger.Warn("invalid club ids configured, using defaults", "error", err)
		_ = c.SetClubIDs(DefaultClubIDs)
	}

	return c
}

// FetchClubMatches returns the private match history of one club.
func (c *Client) FetchClubMatches(ctx context.Context, clubID int64) ([]Match, error) {
	if clubID <= 0 {
		return nil, fmt.Errorf("club id must be greater than zero")
	}

	raw, err := c.doGet(ctx, c.matchesURL(clubID))
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch matches club_id=%d", clubID)
	}

	var matches []Match
	if err := sonic.Unmarshal(raw, &matches); err != nil {
		return nil, crerr.Wrapf(err, "decode matches club_id=%d", clubID)
	}
	return matches, nil
}

// ValidateConnection probes the matches endpoint for the first tracked club.
// Any failure reports false.
func (c *Client) ValidateConnection(ctx context.Context) bool {
	clubID := int64(probeClubID)
	if ids := c.ClubIDs(); len(ids) > 0 {
		clubID = ids[0]
	}

	status, _, err := c.execute(ctx, c.matchesURL(clubID))
	if err != nil && !stderrors.Is(err, ErrResponseTooLarge) {
		c.logger.WarnContext(ctx, "ea sports connection check failed", "club_id", clubID, "error", err)
		return false
	}
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func (c *Client) matchesURL(clubID int64) string {
	values := url.Values{}
	values.Set("clubIds", strconv.FormatInt(clubID, 10))
	values.Set("platform", c.platform)
	values.Set("matchType", matchType)
	return c.baseURL + "/clubs/matches?" + values.Encode()
}

func (c *Client) doGet(ctx context.Context, fullURL string) ([]byte, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "ea sports circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: ea sports is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.getWithRetry(ctx, fullURL)
		if c.breaker != nil {
			if isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) getWithRetry(ctx context.Context, fullURL string) ([]byte, error) {
	var body []byte
	err := resilience.Retry(ctx, c.retry, isTransient, func(attempt int) error {
		status, raw, err := c.execute(ctx, fullURL)
		if stderrors.Is(err, ErrResponseTooLarge) {
			return err
		}
		if err != nil {
			return fmt.Errorf("%w: send request: %v", errEASportsTransient, err)
		}
		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			body = raw
			return nil
		}
		if isRetryableStatus(status) {
			c.logger.DebugContext(ctx, "ea sports request will be retried", "status_code", status, "attempt", attempt)
			return fmt.Errorf("%w: provider status=%d body=%s", errEASportsTransient, status, abbreviateBody(raw))
		}
		return fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
	})
	if err != nil {
		c.logger.WarnContext(ctx, "ea sports request failed", "url", fullURL, "error", err)
		return nil, err
	}
	return body, nil
}

// execute performs one GET and returns the status and an owned copy of the
// decoded body.
func (c *Client) execute(ctx context.Context, fullURL string) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(c.userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Connection", "keep-alive")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return 0, nil, err
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		return resp.StatusCode(), nil, fmt.Errorf("decode response body: %w", err)
	}
	if len(body) > c.maxRespBytes {
		return resp.StatusCode(), nil, crerr.Wrapf(ErrResponseTooLarge, "%d bytes exceeds limit of %d", len(body), c.maxRespBytes)
	}
	return resp.StatusCode(), append([]byte(nil), body...), nil
}

func breakerConfig(cfg resilience.CircuitBreakerConfig, logger *logging.Logger) resilience.CircuitBreakerConfig {
	if cfg.Name == "" {
		cfg.Name = "ea_sports"
	}
	return cfg.WithStateChangeHook(func(name string, from, to resilience.CircuitState) {
		logger.Warn("ea sports circuit breaker state changed", "dependency", name, "from", string(from), "to", string(to))
	})
}

func isTransient(err error) bool {
	return stderrors.Is(err, errEASportsTransient)
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return isTransient(err)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
