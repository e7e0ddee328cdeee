package alias

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAlias   = "twelvechar12"
	testAddress = "ecash:qpmytrdsakt0axrrlswvaj069nat3p9s7cjctmjasj"
	testTxID    = "166b21d4631e2a6ec6110061f351c9c3bfb3a8d4e6919684df7e2824b42b0ffe"
)

// indexer serves canned responses keyed by request path.
func indexer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		switch r.URL.Path {
		case "/alias/twelvechar12":
			_, _ = w.Write([]byte(`{"alias":"twelvechar12","address":"` + testAddress +
				`","txid":"` + testTxID + `","blockheight":792419}`))
		case "/alias/notregistered":
			_, _ = w.Write([]byte(`{"alias":"notregistered","isRegistered":false,"pending":[],` +
				`"registrationFeeSats":551,"processedBlockheight":827598}`))
		case "/alias/servererror":
			_, _ = w.Write([]byte(`{not json`))
		case "/alias/indexererror":
			_, _ = w.Write([]byte(`{"error":"database unavailable"}`))
		case "/alias/mismatch":
			_, _ = w.Write([]byte(`{"alias":"other","address":"` + testAddress + `"}`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPResolver_Registered(t *testing.T) {
	srv := indexer(t, nil)
	r := NewHTTPResolver(srv.URL+"/", WithRateLimit(0))

	res, err := r.Resolve(context.Background(), "twelvechar12.xec")
	require.NoError(t, err)
	assert.Equal(t, &Resolution{
		Alias:       testAlias,
		Address:     testAddress,
		TxID:        testTxID,
		BlockHeight: 792419,
	}, res)
}

func TestHTTPResolver_NotRegistered(t *testing.T) {
	srv := indexer(t, nil)
	r := NewHTTPResolver(srv.URL, WithRateLimit(0))

	_, err := r.Resolve(context.Background(), "notregistered")
	require.ErrorIs(t, err, ErrNotRegistered)
	assert.Equal(t, "eCash Alias does not exist or yet to receive 1 confirmation", err.Error())
}

func TestHTTPResolver_Failures(t *testing.T) {
	srv := indexer(t, nil)
	r := NewHTTPResolver(srv.URL, WithRateLimit(0))

	for _, name := range []string{"servererror", "indexererror", "mismatch", "status500"} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), name)
			assert.ErrorIs(t, err, ErrResolutionFailed)
		})
	}
	assert.Equal(t, "Error resolving alias at indexer, contact admin.", ErrResolutionFailed.Error())
}

func TestHTTPResolver_InvalidName(t *testing.T) {
	var hits atomic.Int32
	srv := indexer(t, &hits)
	r := NewHTTPResolver(srv.URL, WithRateLimit(0))

	_, err := r.Resolve(context.Background(), "Not-Valid.xec")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Zero(t, hits.Load(), "invalid names never reach the indexer")
}

type failingClient struct{}

func (failingClient) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestHTTPResolver_TransportError(t *testing.T) {
	r := NewHTTPResolver("http://indexer.invalid", WithHTTPClient(failingClient{}), WithRateLimit(0))
	_, err := r.Resolve(context.Background(), testAlias)
	assert.ErrorIs(t, err, ErrResolutionFailed)
}

func TestHTTPResolver_ContextCanceled(t *testing.T) {
	srv := indexer(t, nil)
	r := NewHTTPResolver(srv.URL, WithRateLimit(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx, testAlias)
	assert.ErrorIs(t, err, ErrResolutionFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPResolver_RateLimited(t *testing.T) {
	var hits atomic.Int32
	srv := indexer(t, &hits)
	r := NewHTTPResolver(srv.URL, WithRateLimit(1000))

	for i := 0; i < 3; i++ {
		_, err := r.Resolve(context.Background(), testAlias)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), hits.Load())
}
