package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/diillson/anthropic-cost-report-go/internal/domain/entity"
	"github.com/diillson/anthropic-cost-report-go/internal/domain/repository"
	"github.com/diillson/anthropic-cost-report-go/internal/shared/types"
)

const (
	// DefaultBaseURL is the production endpoint of the Anthropic API.
	DefaultBaseURL = "https://api.anthropic.com"

	apiVersion     = "2023-06-01"
	costReportPath = "/v1/organizations/cost_report"

	// The cost report endpoint rejects windows shorter than two days, so
	// single-day requests are padded and the response filtered back down.
	minSpanDays = 2

	defaultTimeout = 30 * time.Second
)

// CostRepositoryImpl implementa o CostRepository contra a API da Anthropic.
type CostRepositoryImpl struct {
	baseURL string
	client  *http.Client
}

// NewCostRepository cria uma nova implementação do CostRepository.
func NewCostRepository() repository.CostRepository {
	return NewCostRepositoryWithOptions(DefaultBaseURL, defaultTimeout)
}

// NewCostRepositoryWithOptions creates a CostRepository against a custom
// base URL and timeout. Used by the config layer and by tests.
func NewCostRepositoryWithOptions(baseURL string, timeout time.Duration) repository.CostRepository {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CostRepositoryImpl{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Wire shapes of the cost report payload. Unknown fields are ignored.
type costReportResponse struct {
	Data    []costBucketPayload `json:"data"`
	HasMore bool                `json:"has_more"`
}

type costBucketPayload struct {
	StartingAt string       `json:"starting_at"`
	Results    []costResult `json:"results"`
}

type costResult struct {
	Amount json.Number `json:"amount"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GetCostReport fetches per-day cost buckets for an inclusive UTC date
// range. The request uses UTC day boundaries with an exclusive end; the
// response buckets are filtered back to the requested inclusive range.
func (r *CostRepositoryImpl) GetCostReport(ctx context.Context, rng entity.DateRange, apiKey string) (entity.Report, error) {
	start := rng.Start
	endExclusive := rng.End.AddDate(0, 0, 1)
	if endExclusive.Sub(start) < minSpanDays*24*time.Hour {
		endExclusive = start.AddDate(0, 0, minSpanDays)
	}

	query := url.Values{}
	query.Set("starting_at", start.Format("2006-01-02T15:04:05Z"))
	query.Set("ending_at", endExclusive.Format("2006-01-02T15:04:05Z"))
	endpoint := r.baseURL + costReportPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entity.Report{}, fmt.Errorf("building cost report request: %w", err)
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := r.client.Do(req)
	if err != nil {
		return entity.Report{}, fmt.Errorf("%w: %v", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.Report{}, fmt.Errorf("%w: reading response: %v", types.ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return entity.Report{}, fmt.Errorf("%w: %s", types.ErrInvalidCredential, apiErrorMessage(body))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return entity.Report{}, &types.APIError{Status: resp.StatusCode, Message: apiErrorMessage(body)}
	}

	var payload costReportResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return entity.Report{}, fmt.Errorf("decoding cost report response: %w", err)
	}

	buckets, err := collectBuckets(payload, rng)
	if err != nil {
		return entity.Report{}, err
	}

	report := entity.Report{
		Range:   rng,
		Buckets: buckets,
		Raw:     json.RawMessage(body),
	}
	report.TotalCents = report.Total()
	return report, nil
}

// collectBuckets converts wire buckets into domain buckets, keeping only
// those inside the requested range (the request may have been padded).
func collectBuckets(payload costReportResponse, rng entity.DateRange) ([]entity.CostBucket, error) {
	buckets := make([]entity.CostBucket, 0, len(payload.Data))
	for _, b := range payload.Data {
		day, err := parseBucketDate(b.StartingAt)
		if err != nil {
			return nil, fmt.Errorf("decoding cost report response: %w", err)
		}
		if !rng.Contains(day) {
			continue
		}
		var cents int64
		for _, res := range b.Results {
			c, err := parseCents(res.Amount)
			if err != nil {
				return nil, fmt.Errorf("decoding cost report response: %w", err)
			}
			cents += c
		}
		buckets = append(buckets, entity.CostBucket{Date: day, AmountCents: cents})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date.Before(buckets[j].Date) })
	return buckets, nil
}

// parseBucketDate extracts the UTC calendar date from a bucket timestamp.
func parseBucketDate(startingAt string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, startingAt); err == nil {
		return entity.Midnight(t), nil
	}
	if len(startingAt) >= 10 {
		if t, err := time.Parse("2006-01-02", startingAt[:10]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bucket has malformed starting_at %q", startingAt)
}

// parseCents reads an amount of minor currency units. The service reports
// integer cents but the value arrives as a JSON number, so fractional
// representations of whole amounts are tolerated.
func parseCents(n json.Number) (int64, error) {
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("bucket has malformed amount %q", n.String())
	}
	return int64(math.Round(f)), nil
}

// apiErrorMessage pulls the error message out of an error payload, falling
// back to the raw body when it isn't the documented shape.
func apiErrorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "no error detail provided"
	}
	return msg
}
