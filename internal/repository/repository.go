package repository

import (
	"context"

	"zai-proxy/internal/model"
)

// UsageRepository persists and aggregates the usage ledger.
type UsageRepository interface {
	InsertRecord(ctx context.Context, rec *model.UsageRecord) error
	GetRecord(ctx context.Context, id string) (*model.UsageRecord, error)
	Summaries(ctx context.Context) ([]model.UsageSummary, error)
}
