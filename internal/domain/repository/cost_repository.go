package repository

import (
	"context"

	"github.com/diillson/anthropic-cost-report-go/internal/domain/entity"
)

// CostRepository defines the interface for the cost report service.
type CostRepository interface {
	// GetCostReport fetches per-day cost buckets for an inclusive UTC date
	// range. A single attempt is made; failures surface to the caller.
	GetCostReport(ctx context.Context, rng entity.DateRange, apiKey string) (entity.Report, error)
}
