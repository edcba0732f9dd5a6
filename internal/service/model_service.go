package service

import (
	"zai-proxy/internal/config"
	"zai-proxy/internal/model"
)

// ModelService exposes the static model catalog.
type ModelService struct {
	catalog *config.Catalog
}

func NewModelService(catalog *config.Catalog) *ModelService {
	return &ModelService{catalog: catalog}
}

// List returns every allowed model in catalog order.
func (s *ModelService) List() *model.ModelList {
	specs := s.catalog.All()
	entries := make([]model.ModelEntry, 0, len(specs))
	for _, spec := range specs {
		entries = append(entries, model.ModelEntry{ID: spec.ID, Name: spec.Name})
	}
	return &model.ModelList{Object: "list", Data: entries, Success: true}
}
