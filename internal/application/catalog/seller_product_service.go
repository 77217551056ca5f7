package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/inventory"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultInventoryPageSize is the page size of the seller inventory listing
const DefaultInventoryPageSize = 20

// Upload errors
var (
	ErrNoImageFile      = shared.InvalidInput("No image file part")
	ErrImageTypeInvalid = shared.InvalidInput("File type not allowed")
)

// allowedImageExtensions lists the image types accepted for upload
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ImageStore persists uploaded product images under flat file names
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Delete(ctx context.Context, name string) error
}

// SellerResolver resolves the seller profile a user acts as
type SellerResolver interface {
	VerifiedSeller(ctx context.Context, userID uuid.UUID) (*partner.SellerProfile, error)
	OwnedSeller(ctx context.Context, userID, sellerID uuid.UUID) (*partner.SellerProfile, error)
}

// SellerProductConfig holds image settings
type SellerProductConfig struct {
	// ImageBaseURL prefixes stored image names in public URLs, e.g. "/images"
	ImageBaseURL string
}

// SellerProductService manages the products of the authenticated seller
type SellerProductService struct {
	sellers  SellerResolver
	products catalog.ProductRepository
	txScope  txn.TransactionScope
	images   ImageStore
	events   shared.EventPublisher
	config   SellerProductConfig
	logger   *zap.Logger
}

// NewSellerProductService creates a new SellerProductService
func NewSellerProductService(
	sellers SellerResolver,
	products catalog.ProductRepository,
	txScope txn.TransactionScope,
	images ImageStore,
	events shared.EventPublisher,
	config SellerProductConfig,
	logger *zap.Logger,
) *SellerProductService {
	if config.ImageBaseURL == "" {
		config.ImageBaseURL = "/images"
	}
	return &SellerProductService{
		sellers:  sellers,
		products: products,
		txScope:  txScope,
		images:   images,
		events:   events,
		config:   config,
		logger:   logger,
	}
}

// Inventory returns a page of the seller's active products with stock fields
func (s *SellerProductService) Inventory(ctx context.Context, userID uuid.UUID, page, limit int) (*InventoryListResponse, error) {
	seller, err := s.sellers.VerifiedSeller(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := shared.NewPagination(page, limit, DefaultInventoryPageSize)
	listings, total, err := s.products.List(ctx, catalog.ProductFilter{
		Pagination: p,
		SellerID:   &seller.ID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	items := make([]InventoryProductResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, ToInventoryProductResponse(l))
	}
	return &InventoryListResponse{
		Products:   items,
		Total:      total,
		TotalPages: shared.TotalPages(total, p.Limit),
		Page:       p.Page,
		Limit:      p.Limit,
	}, nil
}

// UploadImage stores an image under a random name and returns its public URL
func (s *SellerProductService) UploadImage(ctx context.Context, userID uuid.UUID, filename string, data []byte, contentType string) (*UploadImageResult, error) {
	if _, err := s.sellers.VerifiedSeller(ctx, userID); err != nil {
		return nil, err
	}
	if len(data) == 0 || strings.TrimSpace(filename) == "" {
		return nil, ErrNoImageFile
	}
	ext := strings.ToLower(path.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, ErrImageTypeInvalid
	}

	name := uuid.New().String() + ext
	if err := s.images.Save(ctx, name, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Info("Product image uploaded",
		zap.String("user_id", userID.String()),
		zap.String("name", name),
		zap.Int("size", len(data)))

	return &UploadImageResult{URL: s.imageURL(name)}, nil
}

// Create lists a new product for the seller
func (s *SellerProductService) Create(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*InventoryProductResponse, error) {
	seller, err := s.sellers.VerifiedSeller(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	var (
		product *catalog.Product
		listing *catalog.ProductListing
	)
	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		refs, err := resolveTaxonomy(ctx, repos.Taxonomy(), taxonomyNames{
			Category:    req.Category,
			ProductType: req.ProductType,
			Brand:       req.Brand,
		}, nil, nil)
		if err != nil {
			return err
		}

		product, err = catalog.NewProduct(catalog.NewProductInput{
			SellerID:       seller.ID,
			CategoryID:     refs.CategoryID,
			ProductTypeID:  refs.ProductTypeID,
			BrandID:        refs.BrandID,
			Name:           *req.Name,
			Description:    *req.Description,
			Price:          *req.Price,
			OriginalPrice:  req.OriginalPrice,
			Stock:          *req.Stock,
			MinOrderQty:    req.MinOrderQty,
			SKU:            req.SKU,
			IsNew:          req.IsNew,
			IsTrending:     req.IsTrending,
			Specifications: req.Specifications,
			Images:         req.Images,
			Tags:           req.Tags,
		})
		if err != nil {
			return err
		}
		if err := repos.Products().Create(ctx, product); err != nil {
			return err
		}
		listing, err = repos.Products().FindListing(ctx, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, product)
	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", seller.ID.String()))

	resp := ToInventoryProductResponse(listing)
	return &resp, nil
}

// Update applies a partial update to one of the seller's products
func (s *SellerProductService) Update(ctx context.Context, userID, productID uuid.UUID, req UpdateProductRequest) (*InventoryProductResponse, error) {
	seller, err := s.sellers.VerifiedSeller(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		product *catalog.Product
		listing *catalog.ProductListing
		changes catalog.ProductChanges
	)
	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		var err error
		product, err = repos.Products().FindBySellerAndID(ctx, seller.ID, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		refs, err := resolveTaxonomy(ctx, repos.Taxonomy(), taxonomyNames{
			Category:    deref(req.Category),
			ProductType: deref(req.ProductType),
			Brand:       deref(req.Brand),
		}, product.CategoryID, product.ProductTypeID)
		if err != nil {
			return err
		}

		update := catalog.ProductUpdate{
			Name:           req.Name,
			Description:    req.Description,
			Price:          req.Price,
			OriginalPrice:  req.OriginalPrice,
			Stock:          req.Stock,
			MinOrderQty:    req.MinOrderQty,
			IsNew:          req.IsNew,
			IsTrending:     req.IsTrending,
			Specifications: req.Specifications,
			CategoryID:     refs.CategoryID,
			ProductTypeID:  refs.ProductTypeID,
			BrandID:        refs.BrandID,
		}
		if req.Images != nil {
			update.Images = *req.Images
			update.ReplaceImages = true
		}
		if req.Tags != nil {
			update.Tags = *req.Tags
			update.ReplaceTags = true
		}

		changes, err = product.ApplyUpdate(update)
		if err != nil {
			return err
		}
		if err := repos.Products().Update(ctx, product); err != nil {
			return err
		}
		if changes.StockChange != 0 {
			log, err := inventory.NewLog(product.ID, changes.StockChange, inventory.ReasonProductUpdate)
			if err != nil {
				return err
			}
			if err := repos.InventoryLogs().Append(ctx, log); err != nil {
				return err
			}
		}
		listing, err = repos.Products().FindListing(ctx, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deleteImages(ctx, changes.RemovedImages)
	s.publish(ctx, product)

	s.logger.Info("Product updated",
		zap.String("product_id", product.ID.String()),
		zap.Int("stock_change", changes.StockChange),
		zap.Int("images_removed", len(changes.RemovedImages)))

	resp := ToInventoryProductResponse(listing)
	return &resp, nil
}

// Delete soft-deletes a product of the seller profile owned by userID
func (s *SellerProductService) Delete(ctx context.Context, userID, sellerID, productID uuid.UUID) error {
	seller, err := s.sellers.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return err
	}

	var product *catalog.Product
	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		var err error
		product, err = repos.Products().FindBySellerAndID(ctx, seller.ID, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		product.Deactivate()
		return repos.Products().Update(ctx, product)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, product)
	s.logger.Info("Product deactivated", zap.String("product_id", productID.String()))
	return nil
}

// deleteImages removes images that belonged to this store from it.
// Failures are logged; the product row no longer references the file.
func (s *SellerProductService) deleteImages(ctx context.Context, urls []string) {
	prefix := strings.TrimRight(s.config.ImageBaseURL, "/") + "/"
	for _, url := range urls {
		if !strings.HasPrefix(url, prefix) {
			continue
		}
		name := path.Base(url)
		if err := s.images.Delete(ctx, name); err != nil {
			s.logger.Warn("Failed to delete product image",
				zap.String("name", name),
				zap.Error(err))
		}
	}
}

func (s *SellerProductService) imageURL(name string) string {
	return strings.TrimRight(s.config.ImageBaseURL, "/") + "/" + name
}

func (s *SellerProductService) publish(ctx context.Context, p *catalog.Product) {
	events := p.GetDomainEvents()
	p.ClearDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish product events", zap.Error(err))
	}
}

func validateCreate(req CreateProductRequest) error {
	switch {
	case req.Name == nil || strings.TrimSpace(*req.Name) == "":
		return requiredField("name")
	case req.Description == nil:
		return requiredField("description")
	case req.Price == nil:
		return requiredField("price")
	case req.Stock == nil:
		return requiredField("stock")
	}
	if len(req.Images) > catalog.MaxProductImages {
		return catalog.ErrTooManyImages
	}
	return nil
}

func requiredField(name string) error {
	return shared.InvalidInput(fmt.Sprintf("Field '%s' is required", name))
}

// taxonomyNames are the reference names supplied with a product. Blank names are not resolved.
type taxonomyNames struct {
	Category    string
	ProductType string
	Brand       string
}

type taxonomyRefs struct {
	CategoryID    *uuid.UUID
	ProductTypeID *uuid.UUID
	BrandID       *uuid.UUID
}

// resolveTaxonomy looks up the category and creates missing product types and brands.
// currentCategory and currentType are the product's existing references, used when
// only a lower level is supplied.
func resolveTaxonomy(ctx context.Context, repo catalog.TaxonomyRepository, names taxonomyNames, currentCategory, currentType *uuid.UUID) (taxonomyRefs, error) {
	var refs taxonomyRefs

	if name := strings.TrimSpace(names.Category); name != "" {
		category, err := repo.FindCategoryByName(ctx, name)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return refs, ErrCategoryNotFound
			}
			return refs, err
		}
		refs.CategoryID = &category.ID
	}

	if name := strings.TrimSpace(names.ProductType); name != "" {
		categoryID := refs.CategoryID
		if categoryID == nil {
			categoryID = currentCategory
		}
		if categoryID == nil {
			return refs, requiredField("category")
		}
		pt, err := repo.GetOrCreateProductType(ctx, name, *categoryID)
		if err != nil {
			return refs, err
		}
		refs.ProductTypeID = &pt.ID
	}

	if name := strings.TrimSpace(names.Brand); name != "" {
		brand, err := repo.GetOrCreateBrand(ctx, name)
		if err != nil {
			return refs, err
		}
		refs.BrandID = &brand.ID

		typeID := refs.ProductTypeID
		if typeID == nil {
			typeID = currentType
		}
		if typeID != nil {
			if err := repo.LinkBrandToProductType(ctx, brand.ID, *typeID); err != nil {
				return refs, err
			}
		}
	}
	return refs, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
