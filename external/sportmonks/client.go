package sportmonks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
	"github.com/riskibarqy/fixture-gateway/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 6 << 20

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)

// ErrTransport marks failures where no HTTP response was received or the
// body could not be read.
var ErrTransport = crerr.New("sportmonks transport failure")

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider status=%d body=%s", e.StatusCode, e.Body)
}

// AsStatusError unwraps err into a *StatusError when it carries one.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if crerr.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

type ClientConfig struct {
	HTTPClient     *http.Client
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Clock          clockwork.Clock
}

// Client performs single-attempt GETs against the SportMonks API. It is safe
// for concurrent use; the underlying http.Client pools connections.
type Client struct {
	httpClient *http.Client
	token      string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		token:      cfg.Token,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker, cfg.Clock),
	}
}

// Get fetches fullURL once and returns the raw body of a 2xx response.
// Non-2xx answers come back as *StatusError; everything else wraps ErrTransport.
func (c *Client) Get(ctx context.Context, fullURL string) ([]byte, error) {
	var raw []byte
	err := c.breaker.Do(func() error {
		var reqErr error
		raw, reqErr = c.execute(ctx, fullURL)
		return reqErr
	}, isBreakerFailure)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "sportmonks circuit breaker rejected request",
			"url", RedactURL(fullURL),
			"state", c.breaker.State(),
		)
		return nil, crerr.Mark(crerr.Wrap(err, "sport data provider is temporarily unavailable"), ErrTransport)
	}
	return raw, err
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the full URL, token included.
		return nil, crerr.Mark(crerr.Newf("send request: %s", sanitizeSensitiveText(err.Error(), c.token)), ErrTransport)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), ErrTransport)
	}

	c.logger.DebugContext(ctx, "sportmonks response",
		"url", RedactURL(fullURL),
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       sanitizeSensitiveText(abbreviateBody(raw), c.token),
		}
	}
	return raw, nil
}

func isBreakerFailure(err error) bool {
	if err == nil {
		return false
	}
	if crerr.Is(err, ErrTransport) {
		return true
	}
	if statusErr, ok := AsStatusError(err); ok {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

// RedactURL masks the api_token query parameter so URLs are safe to log.
func RedactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apiTokenParamRegex.ReplaceAllString(rawURL, "api_token=REDACTED")
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
