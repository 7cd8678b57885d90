package anthropic

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diillson/anthropic-cost-report-go/internal/domain/entity"
	"github.com/diillson/anthropic-cost-report-go/internal/shared/types"
)

func testRange(t *testing.T, start, end string) entity.DateRange {
	t.Helper()
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatal(err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		t.Fatal(err)
	}
	return entity.DateRange{Start: s, End: e}
}

func TestGetCostReport_Success(t *testing.T) {
	payload := `{
		"data": [
			{"starting_at": "2026-01-30T00:00:00Z", "results": [{"amount": 280}]},
			{"starting_at": "2026-01-29T00:00:00Z", "results": [{"amount": 400}, {"amount": 67}]},
			{"starting_at": "2026-01-31T00:00:00Z", "results": [{"amount": 9999}]}
		],
		"has_more": false
	}`

	var gotPath, gotKey, gotVersion string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	repo := NewCostRepositoryWithOptions(server.URL, 5*time.Second)
	rng := testRange(t, "2026-01-29", "2026-01-30")

	report, err := repo.GetCostReport(context.Background(), rng, "sk-ant-admin-test")
	if err != nil {
		t.Fatalf("GetCostReport() error = %v, want nil", err)
	}

	if gotPath != "/v1/organizations/cost_report" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "sk-ant-admin-test" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("anthropic-version = %q", gotVersion)
	}
	if got := gotQuery["starting_at"]; len(got) != 1 || got[0] != "2026-01-29T00:00:00Z" {
		t.Errorf("starting_at = %v", got)
	}
	// Exclusive end: one day past the inclusive end of the range.
	if got := gotQuery["ending_at"]; len(got) != 1 || got[0] != "2026-01-31T00:00:00Z" {
		t.Errorf("ending_at = %v", got)
	}

	// The Jan 31 bucket is outside the requested range and must be dropped;
	// the rest come back date-ordered with results summed per bucket.
	if len(report.Buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(report.Buckets))
	}
	if !report.Buckets[0].Date.Equal(rng.Start) || report.Buckets[0].AmountCents != 467 {
		t.Errorf("bucket[0] = %s %d, want 2026-01-29 467",
			report.Buckets[0].Date.Format("2006-01-02"), report.Buckets[0].AmountCents)
	}
	if report.Buckets[1].AmountCents != 280 {
		t.Errorf("bucket[1].AmountCents = %d, want 280", report.Buckets[1].AmountCents)
	}
	if report.TotalCents != 747 {
		t.Errorf("TotalCents = %d, want 747", report.TotalCents)
	}

	// Raw payload must be the response body byte for byte.
	if !bytes.Equal(report.Raw, []byte(payload)) {
		t.Error("Raw payload is not byte-identical to the response body")
	}
}

func TestGetCostReport_PadsSingleDayRequests(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	repo := NewCostRepositoryWithOptions(server.URL, 5*time.Second)
	rng := testRange(t, "2026-01-29", "2026-01-29")

	if _, err := repo.GetCostReport(context.Background(), rng, "key"); err != nil {
		t.Fatalf("GetCostReport() error = %v", err)
	}
	// A one-day window must be padded to the two-day minimum span.
	if got := gotQuery["ending_at"]; len(got) != 1 || got[0] != "2026-01-31T00:00:00Z" {
		t.Errorf("ending_at = %v, want 2026-01-31T00:00:00Z", got)
	}
}

func TestGetCostReport_InvalidCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid x-api-key"}}`))
	}))
	defer server.Close()

	repo := NewCostRepositoryWithOptions(server.URL, 5*time.Second)
	_, err := repo.GetCostReport(context.Background(), testRange(t, "2026-01-01", "2026-01-31"), "bad-key")
	if !errors.Is(err, types.ErrInvalidCredential) {
		t.Fatalf("error = %v, want ErrInvalidCredential", err)
	}
}

func TestGetCostReport_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	repo := NewCostRepositoryWithOptions(server.URL, 5*time.Second)
	_, err := repo.GetCostReport(context.Background(), testRange(t, "2026-01-01", "2026-01-31"), "key")

	var apiErr *types.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *types.APIError", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want %d", apiErr.Status, http.StatusTooManyRequests)
	}
	if apiErr.Message != "rate limited" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "rate limited")
	}
}

func TestGetCostReport_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	repo := NewCostRepositoryWithOptions(server.URL, time.Second)
	_, err := repo.GetCostReport(context.Background(), testRange(t, "2026-01-01", "2026-01-31"), "key")
	if !errors.Is(err, types.ErrNetwork) {
		t.Fatalf("error = %v, want ErrNetwork", err)
	}
}

func TestGetCostReport_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [`))
	}))
	defer server.Close()

	repo := NewCostRepositoryWithOptions(server.URL, 5*time.Second)
	if _, err := repo.GetCostReport(context.Background(), testRange(t, "2026-01-01", "2026-01-31"), "key"); err == nil {
		t.Fatal("expected a decode error, got nil")
	}
}
