package alias

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/ratelimit"

	"github.com/cashtaborg/libcashtab-go/address"
	"github.com/cashtaborg/libcashtab-go/internal/log"
)

// MaxResponseSize bounds the indexer response read into memory.
const MaxResponseSize = 64 * 1024

// DefaultRequestsPerSecond is the default indexer request budget.
const DefaultRequestsPerSecond = 5

// Resolution is a confirmed alias registration.
type Resolution struct {
	Alias       string `json:"alias"`
	Address     string `json:"address"`
	TxID        string `json:"txid"`
	BlockHeight int64  `json:"blockheight"`
}

// Resolver resolves an alias name, without the ".xec" suffix, to its
// registration.
type Resolver interface {
	Resolve(ctx context.Context, name string) (*Resolution, error)
}

// HTTPClient defines the interface for HTTP requests.
// This allows tests to mock HTTP calls.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultHTTPClient is the production HTTP client.
var DefaultHTTPClient HTTPClient = &http.Client{Timeout: 30 * time.Second}

// indexerResponse covers both the registered and unregistered shapes.
type indexerResponse struct {
	Alias       string `json:"alias"`
	Address     string `json:"address"`
	TxID        string `json:"txid"`
	BlockHeight int64  `json:"blockheight"`

	IsRegistered         *bool           `json:"isRegistered"`
	Pending              json.RawMessage `json:"pending"`
	RegistrationFeeSats  uint64          `json:"registrationFeeSats"`
	ProcessedBlockheight int64           `json:"processedBlockheight"`

	Error string `json:"error"`
}

// HTTPResolver queries an alias indexer at <BaseURL>/alias/<name>.
// It is safe for concurrent use.
type HTTPResolver struct {
	baseURL string
	client  HTTPClient
	limiter ratelimit.Limiter
}

// HTTPOption configures an HTTPResolver.
type HTTPOption func(*HTTPResolver)

// WithHTTPClient replaces DefaultHTTPClient.
func WithHTTPClient(c HTTPClient) HTTPOption {
	return func(r *HTTPResolver) { r.client = c }
}

// WithRateLimit caps requests per second. Zero or less disables the limit.
func WithRateLimit(rps int) HTTPOption {
	return func(r *HTTPResolver) {
		if rps <= 0 {
			r.limiter = ratelimit.NewUnlimited()
			return
		}
		r.limiter = ratelimit.New(rps)
	}
}

// NewHTTPResolver returns a resolver for the indexer at baseURL.
func NewHTTPResolver(baseURL string, opts ...HTTPOption) *HTTPResolver {
	r := &HTTPResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  DefaultHTTPClient,
		limiter: ratelimit.New(DefaultRequestsPerSecond),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches the registration of name. Unregistered names fail with
// ErrNotRegistered; every other failure is ErrResolutionFailed.
func (r *HTTPResolver) Resolve(ctx context.Context, name string) (*Resolution, error) {
	name = TrimSuffix(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	r.limiter.Take()
	endpoint := r.baseURL + "/alias/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolutionFailed, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		log.Alias.Debug().Err(err).Str("alias", name).Msg("indexer request failed")
		return nil, fmt.Errorf("%w: GET %s: %w", ErrResolutionFailed, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s returned status %d", ErrResolutionFailed, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrResolutionFailed, err)
	}

	var ir indexerResponse
	if err := json.Unmarshal(body, &ir); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %w", ErrResolutionFailed, err)
	}
	if ir.Error != "" {
		return nil, fmt.Errorf("%w: indexer: %s", ErrResolutionFailed, ir.Error)
	}
	if ir.IsRegistered != nil && !*ir.IsRegistered {
		log.Alias.Debug().
			Str("alias", name).
			Uint64("feeSats", ir.RegistrationFeeSats).
			Int64("processedBlockheight", ir.ProcessedBlockheight).
			Msg("alias not registered")
		return nil, ErrNotRegistered
	}
	if ir.Alias != name || !address.IsValid(ir.Address, address.Value) {
		return nil, fmt.Errorf("%w: unexpected registration %q -> %q", ErrResolutionFailed, ir.Alias, ir.Address)
	}

	return &Resolution{
		Alias:       ir.Alias,
		Address:     ir.Address,
		TxID:        ir.TxID,
		BlockHeight: ir.BlockHeight,
	}, nil
}
