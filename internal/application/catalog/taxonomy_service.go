package catalog

import (
	"context"
	"errors"

	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// Lookup failures of the public taxonomy routes
var (
	ErrCategoryNotFound    = shared.NotFound("Category not found")
	ErrProductTypeNotFound = shared.NotFound("Product type not found")
)

// TaxonomyService serves the category, product type and brand lists
type TaxonomyService struct {
	taxonomy catalog.TaxonomyRepository
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(taxonomy catalog.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{taxonomy: taxonomy}
}

// ListCategories returns every category in the short form
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]NamedItem, error) {
	categories, err := s.taxonomy.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]NamedItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, NamedItem{ID: c.ID, Name: c.Name})
	}
	return items, nil
}

// ListCategoryDetails returns every category with its description
func (s *TaxonomyService) ListCategoryDetails(ctx context.Context) ([]TaxonomyResponse, error) {
	categories, err := s.taxonomy.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]TaxonomyResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, toTaxonomyResponse(c.ID, c.Name, c.Description))
	}
	return items, nil
}

// ListProductTypes returns every product type in the short form
func (s *TaxonomyService) ListProductTypes(ctx context.Context) ([]NamedItem, error) {
	types, err := s.taxonomy.ListProductTypes(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]NamedItem, 0, len(types))
	for _, pt := range types {
		items = append(items, NamedItem{ID: pt.ID, Name: pt.Name})
	}
	return items, nil
}

// ListProductTypesByCategory returns the product types of the named category
func (s *TaxonomyService) ListProductTypesByCategory(ctx context.Context, categoryName string) ([]TaxonomyResponse, error) {
	category, err := s.taxonomy.FindCategoryByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	types, err := s.taxonomy.ListProductTypesByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	items := make([]TaxonomyResponse, 0, len(types))
	for _, pt := range types {
		items = append(items, toTaxonomyResponse(pt.ID, pt.Name, pt.Description))
	}
	return items, nil
}

// ListBrandsByProductType returns the brands linked to the named product type
func (s *TaxonomyService) ListBrandsByProductType(ctx context.Context, productTypeName string) ([]TaxonomyResponse, error) {
	pt, err := s.taxonomy.FindProductTypeByName(ctx, productTypeName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductTypeNotFound
		}
		return nil, err
	}
	brands, err := s.taxonomy.ListBrandsByProductType(ctx, pt.ID)
	if err != nil {
		return nil, err
	}
	items := make([]TaxonomyResponse, 0, len(brands))
	for _, b := range brands {
		items = append(items, toTaxonomyResponse(b.ID, b.Name, b.Description))
	}
	return items, nil
}
