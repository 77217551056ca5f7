package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create stores a product with its images, tags and attributes
func (r *GormProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	model := models.ProductModelFromDomain(p)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return writeProductChildren(tx, p)
	})
}

// counterColumns are written only by their own atomic statements
var counterColumns = []string{"view_count", "inquiry_count", "order_count", "rating", "review_count", "created_at"}

// Update saves editable fields and replaces images, tags and attributes.
// Counters and rating keep their stored values.
func (r *GormProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	model := models.ProductModelFromDomain(p)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(model).Select("*").Omit(counterColumns...).Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		for _, child := range []any{&models.ProductImageModel{}, &models.ProductTagModel{}, &models.ProductAttributeModel{}} {
			if err := tx.Where("product_id = ?", p.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return writeProductChildren(tx, p)
	})
}

func writeProductChildren(tx *gorm.DB, p *catalog.Product) error {
	if len(p.Images) > 0 {
		images := make([]*models.ProductImageModel, 0, len(p.Images))
		for _, img := range p.Images {
			images = append(images, models.ProductImageModelFromDomain(p.ID, img))
		}
		if err := tx.Create(&images).Error; err != nil {
			return err
		}
	}

	if len(p.Attributes) > 0 {
		attrs := make([]models.ProductAttributeModel, 0, len(p.Attributes))
		for _, a := range p.Attributes {
			attrs = append(attrs, models.ProductAttributeModel{ID: uuid.New(), ProductID: p.ID, Key: a.Key, Value: a.Value})
		}
		if err := tx.Create(&attrs).Error; err != nil {
			return err
		}
	}

	tags := catalog.NormalizeTags(p.Tags)
	if len(tags) == 0 {
		return nil
	}
	now := time.Now()
	newTags := make([]models.TagModel, 0, len(tags))
	for _, name := range tags {
		newTags = append(newTags, models.TagModel{
			BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Name:      name,
		})
	}
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&newTags).Error; err != nil {
		return err
	}
	var tagIDs []uuid.UUID
	if err := tx.Model(&models.TagModel{}).Where("name IN ?", tags).Pluck("id", &tagIDs).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]models.ProductTagModel, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, models.ProductTagModel{ProductID: p.ID, TagID: id})
	}
	return tx.Create(&links).Error
}

// FindByID finds a product by ID, active or not
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return r.findOne(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

// FindBySellerAndID returns the product only when owned by the seller.
// The row is locked for update until the surrounding transaction ends.
func (r *GormProductRepository) FindBySellerAndID(ctx context.Context, sellerID, id uuid.UUID) (*catalog.Product, error) {
	return r.findOne(ctx, r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND seller_id = ?", id, sellerID))
}

func (r *GormProductRepository) findOne(ctx context.Context, query *gorm.DB) (*catalog.Product, error) {
	var model models.ProductModel
	if err := query.First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	products, err := r.hydrate(ctx, []models.ProductModel{model})
	if err != nil {
		return nil, err
	}
	return products[0], nil
}

// FindByIDsForSeller returns the seller's products among ids; foreign or unknown ids are skipped
func (r *GormProductRepository) FindByIDsForSeller(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND id IN ?", sellerID, uniqueIDs(ids)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, rows)
}

// FindListing returns one product with its reference names and seller summary
func (r *GormProductRepository) FindListing(ctx context.Context, id uuid.UUID) (*catalog.ProductListing, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	listings, err := r.listings(ctx, []models.ProductModel{model})
	if err != nil {
		return nil, err
	}
	return listings[0], nil
}

// FindListingsByIDs returns listings of the given products in unspecified order
func (r *GormProductRepository) FindListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.ProductListing, error) {
	if len(ids) == 0 {
		return []*catalog.ProductListing{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", uniqueIDs(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.listings(ctx, rows)
}

// List returns a filtered page of product listings and the total match count
func (r *GormProductRepository) List(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.ProductListing, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if filter.SellerID != nil {
		query = query.Where("products.seller_id = ?", *filter.SellerID)
	}
	if filter.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}
	if filter.MaxStock > 0 {
		query = query.Where("products.stock < ?", filter.MaxStock)
	}
	if filter.CategoryName != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", filter.CategoryName)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	q := query.Select("products.*").Order(ProductOrderClause(filter.OrderBy))
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	listings, err := r.listings(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// Related returns other active products of the same category
func (r *GormProductRepository) Related(ctx context.Context, p *catalog.Product, limit int) ([]*catalog.ProductListing, error) {
	if p.CategoryID == nil || limit <= 0 {
		return []*catalog.ProductListing{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ? AND is_active = ?", *p.CategoryID, p.ID, true).
		Order(ProductOrderClause("popular")).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.listings(ctx, rows)
}

// TopEngaged returns the seller's active products ranked by views + inquiries + orders
func (r *GormProductRepository) TopEngaged(ctx context.Context, sellerID uuid.UUID, limit int) ([]*catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND is_active = ?", sellerID, true).
		Order(ProductOrderClause("popular")).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, rows)
}

// IncrementViewCount adds one view
func (r *GormProductRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "view_count", 1)
}

// IncrementInquiryCount adds one inquiry
func (r *GormProductRepository) IncrementInquiryCount(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "inquiry_count", 1)
}

// IncrementOrderCount adds n orders
func (r *GormProductRepository) IncrementOrderCount(ctx context.Context, id uuid.UUID, n int) error {
	return r.increment(ctx, id, "order_count", n)
}

func (r *GormProductRepository) increment(ctx context.Context, id uuid.UUID, column string, n int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", n))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeductStock removes qty units only when at least qty are available
func (r *GormProductRepository) DeductStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumns(map[string]any{
			"stock":      gorm.Expr("stock - ?", qty),
			"in_stock":   gorm.Expr("stock - ? > 0", qty),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// RestoreStock adds qty units back
func (r *GormProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"stock":      gorm.Expr("stock + ?", qty),
			"in_stock":   gorm.Expr("stock + ? > 0", qty),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveStock writes an absolute stock level and the derived in_stock flag
func (r *GormProductRepository) SaveStock(ctx context.Context, p *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", p.ID).
		UpdateColumns(map[string]any{
			"stock":      p.Stock,
			"in_stock":   p.Stock > 0,
			"updated_at": p.UpdatedAt,
			"version":    p.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// hydrate converts rows to products and loads images, tags and attributes in bulk
func (r *GormProductRepository) hydrate(ctx context.Context, rows []models.ProductModel) ([]*catalog.Product, error) {
	products := make([]*catalog.Product, 0, len(rows))
	if len(rows) == 0 {
		return products, nil
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		p := rows[i].ToDomain()
		products = append(products, p)
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	db := r.db.WithContext(ctx)

	var images []models.ProductImageModel
	if err := db.Where("product_id IN ?", ids).Order("position, created_at").Find(&images).Error; err != nil {
		return nil, err
	}
	for i := range images {
		if p, ok := byID[images[i].ProductID]; ok {
			p.Images = append(p.Images, images[i].ToDomain())
		}
	}

	var attrs []models.ProductAttributeModel
	if err := db.Where("product_id IN ?", ids).Order("attr_key").Find(&attrs).Error; err != nil {
		return nil, err
	}
	for _, a := range attrs {
		if p, ok := byID[a.ProductID]; ok {
			p.Attributes = append(p.Attributes, catalog.ProductAttribute{Key: a.Key, Value: a.Value})
		}
	}

	var tags []struct {
		ProductID uuid.UUID
		Name      string
	}
	if err := db.Table("product_tags").
		Select("product_tags.product_id, tags.name").
		Joins("JOIN tags ON tags.id = product_tags.tag_id").
		Where("product_tags.product_id IN ?", ids).
		Order("tags.name").
		Scan(&tags).Error; err != nil {
		return nil, err
	}
	for _, t := range tags {
		if p, ok := byID[t.ProductID]; ok {
			p.Tags = append(p.Tags, t.Name)
		}
	}

	return products, nil
}

// listings hydrates rows and attaches reference names and seller summaries
func (r *GormProductRepository) listings(ctx context.Context, rows []models.ProductModel) ([]*catalog.ProductListing, error) {
	products, err := r.hydrate(ctx, rows)
	if err != nil {
		return nil, err
	}
	out := make([]*catalog.ProductListing, 0, len(products))
	if len(products) == 0 {
		return out, nil
	}

	var refIDs, sellerIDs []uuid.UUID
	for _, p := range products {
		for _, ref := range []*uuid.UUID{p.CategoryID, p.ProductTypeID, p.BrandID} {
			if ref != nil {
				refIDs = append(refIDs, *ref)
			}
		}
		sellerIDs = append(sellerIDs, p.SellerID)
	}
	refIDs = uniqueIDs(refIDs)
	sellerIDs = uniqueIDs(sellerIDs)
	db := r.db.WithContext(ctx)

	names := make(map[uuid.UUID]string, len(refIDs))
	if len(refIDs) > 0 {
		for _, table := range []string{"categories", "product_types", "brands"} {
			var rows []struct {
				ID   uuid.UUID
				Name string
			}
			if err := db.Table(table).Select("id, name").Where("id IN ?", refIDs).Scan(&rows).Error; err != nil {
				return nil, err
			}
			for _, row := range rows {
				names[row.ID] = row.Name
			}
		}
	}

	sellers, err := sellerSummaries(db, sellerIDs)
	if err != nil {
		return nil, err
	}

	nameOf := func(id *uuid.UUID) string {
		if id == nil {
			return ""
		}
		return names[*id]
	}
	for _, p := range products {
		out = append(out, &catalog.ProductListing{
			Product:         p,
			CategoryName:    nameOf(p.CategoryID),
			ProductTypeName: nameOf(p.ProductTypeID),
			BrandName:       nameOf(p.BrandID),
			Seller:          sellers[p.SellerID],
		})
	}
	return out, nil
}

func sellerSummaries(db *gorm.DB, sellerIDs []uuid.UUID) (map[uuid.UUID]*catalog.SellerSummary, error) {
	out := make(map[uuid.UUID]*catalog.SellerSummary, len(sellerIDs))
	if len(sellerIDs) == 0 {
		return out, nil
	}
	var profiles []models.SellerProfileModel
	if err := db.Select("id, store_name, store_address, is_verified").
		Where("id IN ?", sellerIDs).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, sp := range profiles {
		out[sp.ID] = &catalog.SellerSummary{
			ID:         sp.ID,
			StoreName:  sp.StoreName,
			Location:   sp.StoreAddress,
			IsVerified: sp.IsVerified,
		}
	}

	var ratings []sellerRating
	if err := db.Model(&models.SupplierReviewModel{}).
		Select("seller_id, AVG(rating) AS avg, COUNT(*) AS n").
		Where("seller_id IN ?", sellerIDs).
		Group("seller_id").
		Scan(&ratings).Error; err != nil {
		return nil, err
	}
	for _, row := range ratings {
		if s, ok := out[row.SellerID]; ok {
			s.Rating = roundTo(row.Avg, 1)
		}
	}
	return out, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
