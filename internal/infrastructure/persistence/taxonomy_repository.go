package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaxonomyRepository implements TaxonomyRepository using GORM
type GormTaxonomyRepository struct {
	db *gorm.DB
}

// NewGormTaxonomyRepository creates a new GormTaxonomyRepository
func NewGormTaxonomyRepository(db *gorm.DB) *GormTaxonomyRepository {
	return &GormTaxonomyRepository{db: db}
}

// ListCategories returns all categories ordered by name
func (r *GormTaxonomyRepository) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.Category, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FindCategoryByName finds a category by exact name
func (r *GormTaxonomyRepository) FindCategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindCategoryByID finds a category by ID
func (r *GormTaxonomyRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// SaveCategory inserts or updates a category
func (r *GormTaxonomyRepository) SaveCategory(ctx context.Context, c *catalog.Category) error {
	var model models.CategoryModel
	model.FromDomain(c)
	return r.db.WithContext(ctx).Save(&model).Error
}

// ListProductTypes returns all product types ordered by name
func (r *GormTaxonomyRepository) ListProductTypes(ctx context.Context) ([]*catalog.ProductType, error) {
	return r.findProductTypes(r.db.WithContext(ctx))
}

// ListProductTypesByCategory returns the product types of one category
func (r *GormTaxonomyRepository) ListProductTypesByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.ProductType, error) {
	return r.findProductTypes(r.db.WithContext(ctx).Where("category_id = ?", categoryID))
}

// FindProductTypeByName finds a product type by exact name
func (r *GormTaxonomyRepository) FindProductTypeByName(ctx context.Context, name string) (*catalog.ProductType, error) {
	var model models.ProductTypeModel
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindProductTypesByNames returns the product types whose name is listed; unknown names are skipped
func (r *GormTaxonomyRepository) FindProductTypesByNames(ctx context.Context, names []string) ([]*catalog.ProductType, error) {
	if len(names) == 0 {
		return []*catalog.ProductType{}, nil
	}
	return r.findProductTypes(r.db.WithContext(ctx).Where("name IN ?", names))
}

// FindProductTypesByIDs returns the product types with the given IDs
func (r *GormTaxonomyRepository) FindProductTypesByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.ProductType, error) {
	if len(ids) == 0 {
		return []*catalog.ProductType{}, nil
	}
	return r.findProductTypes(r.db.WithContext(ctx).Where("id IN ?", ids))
}

func (r *GormTaxonomyRepository) findProductTypes(query *gorm.DB) ([]*catalog.ProductType, error) {
	var rows []models.ProductTypeModel
	if err := query.Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.ProductType, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// GetOrCreateProductType returns the named type, creating it inside the category when absent.
// Product type names are unique, so an existing type of another category is returned as is.
func (r *GormTaxonomyRepository) GetOrCreateProductType(ctx context.Context, name string, categoryID uuid.UUID) (*catalog.ProductType, error) {
	existing, err := r.FindProductTypeByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	pt, err := catalog.NewProductType(name, categoryID, "")
	if err != nil {
		return nil, err
	}
	var model models.ProductTypeModel
	model.FromDomain(pt)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&model).Error; err != nil {
		return nil, err
	}
	// A concurrent insert may have won the race; read back the stored row
	return r.FindProductTypeByName(ctx, pt.Name)
}

// SaveProductType inserts or updates a product type
func (r *GormTaxonomyRepository) SaveProductType(ctx context.Context, pt *catalog.ProductType) error {
	var model models.ProductTypeModel
	model.FromDomain(pt)
	return r.db.WithContext(ctx).Save(&model).Error
}

// ListBrandsByProductType returns the brands linked to a product type
func (r *GormTaxonomyRepository) ListBrandsByProductType(ctx context.Context, productTypeID uuid.UUID) ([]*catalog.Brand, error) {
	var rows []models.BrandModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN brand_product_types ON brand_product_types.brand_id = brands.id").
		Where("brand_product_types.product_type_id = ?", productTypeID).
		Order("brands.name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.Brand, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// GetOrCreateBrand returns the named brand, creating it when absent
func (r *GormTaxonomyRepository) GetOrCreateBrand(ctx context.Context, name string) (*catalog.Brand, error) {
	brand, err := catalog.NewBrand(name)
	if err != nil {
		return nil, err
	}
	var model models.BrandModel
	model.FromDomain(brand)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&model).Error; err != nil {
		return nil, err
	}

	var stored models.BrandModel
	if err := r.db.WithContext(ctx).Where("name = ?", brand.Name).First(&stored).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return stored.ToDomain(), nil
}

// LinkBrandToProductType records that a brand is sold under a product type; existing links are kept
func (r *GormTaxonomyRepository) LinkBrandToProductType(ctx context.Context, brandID, productTypeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BrandProductTypeModel{BrandID: brandID, ProductTypeID: productTypeID}).Error
}

// translateNotFound maps gorm.ErrRecordNotFound to shared.ErrNotFound
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// Ensure GormTaxonomyRepository implements TaxonomyRepository
var _ catalog.TaxonomyRepository = (*GormTaxonomyRepository)(nil)
