package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// defaultCategories is the starting taxonomy of a fresh marketplace. The
// first entry collects the default product types.
var defaultCategories = []string{
	"My Categories",
	"Home Decor",
	"Industrial",
	"Health & Personal Care",
	"Fashion & Beauty",
	"Sports & Entertainment",
	"Tools & Home Improvement",
	"Raw Materials",
	"Maintenance, Repair & Operations",
	"Service",
}

var defaultProductTypes = []string{
	"Rice & Grains",
	"Tea & Beverages",
	"Spices & Condiments",
	"Apparel & Textiles",
	"Building Materials",
	"Electrical Supplies",
	"Office Supplies",
	"Cleaning Products",
	"Machinery & Equipment",
	"Agricultural Supplies",
}

// SeedResult counts the rows created by a seed run
type SeedResult struct {
	CategoriesCreated   int
	CategoriesExisting  int
	ProductTypesEnsured int
}

// seedTaxonomy creates the missing default categories and product types.
// Running it again leaves existing rows untouched.
func seedTaxonomy(ctx context.Context, repo catalog.TaxonomyRepository, log *zap.Logger) (*SeedResult, error) {
	result := &SeedResult{}
	var first *catalog.Category

	for _, name := range defaultCategories {
		category, err := repo.FindCategoryByName(ctx, name)
		switch {
		case err == nil:
			result.CategoriesExisting++
		case errors.Is(err, shared.ErrNotFound):
			if category, err = catalog.NewCategory(name, ""); err != nil {
				return nil, err
			}
			if err := repo.SaveCategory(ctx, category); err != nil {
				return nil, fmt.Errorf("save category %q: %w", name, err)
			}
			result.CategoriesCreated++
			log.Debug("Category created", zap.String("name", name))
		default:
			return nil, fmt.Errorf("find category %q: %w", name, err)
		}
		if first == nil {
			first = category
		}
	}

	for _, name := range defaultProductTypes {
		if _, err := repo.GetOrCreateProductType(ctx, name, first.ID); err != nil {
			return nil, fmt.Errorf("ensure product type %q: %w", name, err)
		}
		result.ProductTypesEnsured++
	}
	return result, nil
}
