package service

import (
	"context"
	"errors"
	"fmt"

	app_errors "zai-proxy/internal/errors"
	"zai-proxy/internal/model"
	"zai-proxy/internal/repository"
)

// UsageService reads the usage ledger.
type UsageService struct {
	repo repository.UsageRepository
}

func NewUsageService(repo repository.UsageRepository) *UsageService {
	return &UsageService{repo: repo}
}

func (s *UsageService) Summaries(ctx context.Context) (*model.UsageList, error) {
	summaries, err := s.repo.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not load usage summaries: %v", app_errors.ErrInternal, err)
	}
	return &model.UsageList{Object: "list", Data: summaries}, nil
}

func (s *UsageService) Record(ctx context.Context, id string) (*model.UsageRecord, error) {
	rec, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: usage record %s", app_errors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: could not load usage record: %v", app_errors.ErrInternal, err)
	}
	return rec, nil
}
