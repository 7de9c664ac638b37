package network

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rileyhilliard/nerdminer/internal/config"
	"github.com/rileyhilliard/nerdminer/internal/errors"
)

// ErrFetch is the cause of every network fetch failure.
var ErrFetch = stderrors.New("network fetch failed")

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 64 << 10

// Source fetches live chain data. Each call fails independently.
type Source interface {
	FetchSpotPriceUSD(ctx context.Context) (float64, error)
	FetchDifficultyAndHeight(ctx context.Context) (height uint64, difficulty float64, err error)
}

// HTTPSource reads price and chain data from public REST endpoints.
type HTTPSource struct {
	client        *http.Client
	priceURL      string
	heightURL     string
	difficultyURL string
}

// NewHTTPSource creates a source for the configured endpoints. Each request
// is bounded by cfg.Timeout.
func NewHTTPSource(cfg config.NetworkConfig) *HTTPSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		client:        &http.Client{Timeout: timeout},
		priceURL:      cfg.PriceURL,
		heightURL:     cfg.HeightURL,
		difficultyURL: cfg.DifficultyURL,
	}
}

// FetchSpotPriceUSD returns the bitcoin price from a CoinGecko-style
// {"bitcoin":{"usd":N}} body.
func (s *HTTPSource) FetchSpotPriceUSD(ctx context.Context) (float64, error) {
	body, err := s.get(ctx, s.priceURL)
	if err != nil {
		return 0, err
	}

	var data map[string]map[string]float64
	if err := sonic.Unmarshal(body, &data); err != nil {
		return 0, fetchFailure("Cannot decode price response", err)
	}

	price, ok := data["bitcoin"]["usd"]
	if !ok {
		return 0, fetchFailure("Price not found in response", fmt.Errorf("missing bitcoin.usd in %q", truncate(body)))
	}
	return price, nil
}

// FetchDifficultyAndHeight returns the block height and difficulty from two
// plain-text endpoints. Either failing fails the call.
func (s *HTTPSource) FetchDifficultyAndHeight(ctx context.Context) (uint64, float64, error) {
	body, err := s.get(ctx, s.heightURL)
	if err != nil {
		return 0, 0, err
	}
	height, err := strconv.ParseUint(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, 0, fetchFailure("Cannot parse block height", err)
	}

	body, err = s.get(ctx, s.difficultyURL)
	if err != nil {
		return 0, 0, err
	}
	diff, err := strconv.ParseFloat(strings.TrimSpace(string(body)), 64)
	if err != nil {
		return 0, 0, fetchFailure("Cannot parse difficulty", err)
	}

	return height, diff, nil
}

// get performs a GET and returns the body of a 200 response.
func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetchFailure("Invalid endpoint "+url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fetchFailure("Request to "+url+" failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fetchFailure(url+" returned status "+strconv.Itoa(resp.StatusCode), fmt.Errorf("HTTP %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fetchFailure("Cannot read response from "+url, err)
	}
	return body, nil
}

// fetchFailure builds a NETWORK error that matches ErrFetch.
func fetchFailure(message string, cause error) *errors.Error {
	return errors.WrapWithCode(fmt.Errorf("%w: %w", ErrFetch, cause), errors.ErrNetwork, message, "")
}

func truncate(b []byte) string {
	const limit = 80
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
