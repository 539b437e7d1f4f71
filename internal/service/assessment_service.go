package service

import (
	"mindhaven/internal/catalog"
	"mindhaven/internal/model"
)

// AssessmentService exposes catalog read operations to transport
type AssessmentService struct {
	catalog *catalog.Catalog
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(cat *catalog.Catalog) *AssessmentService {
	return &AssessmentService{
		catalog: cat,
	}
}

// Get returns the published definition with the given id
func (s *AssessmentService) Get(id string) (*model.AssessmentDefinition, bool) {
	return s.catalog.Get(id)
}

// List returns every published definition
func (s *AssessmentService) List() []*model.AssessmentDefinition {
	return s.catalog.List()
}

// ListByCategory returns published definitions in one category
func (s *AssessmentService) ListByCategory(cat model.Category) []*model.AssessmentDefinition {
	return s.catalog.ListByCategory(cat)
}
