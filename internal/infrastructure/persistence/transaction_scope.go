package persistence

import (
	"context"

	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/inventory"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction; an error rolls it back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories builds repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormTransactionalRepositories) BuyerProfiles() partner.BuyerProfileRepository {
	return NewGormBuyerProfileRepository(r.tx)
}

func (r *gormTransactionalRepositories) SellerProfiles() partner.SellerProfileRepository {
	return NewGormSellerProfileRepository(r.tx)
}

func (r *gormTransactionalRepositories) Taxonomy() catalog.TaxonomyRepository {
	return NewGormTaxonomyRepository(r.tx)
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Reviews() catalog.ReviewRepository {
	return NewGormReviewRepository(r.tx)
}

func (r *gormTransactionalRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) InventoryLogs() inventory.LogRepository {
	return NewGormInventoryLogRepository(r.tx)
}

func (r *gormTransactionalRepositories) Inquiries() engagement.InquiryRepository {
	return NewGormInquiryRepository(r.tx)
}

func (r *gormTransactionalRepositories) SupplierReviews() engagement.SupplierReviewRepository {
	return NewGormSupplierReviewRepository(r.tx)
}

func (r *gormTransactionalRepositories) Chats() engagement.ChatRepository {
	return NewGormChatRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductViews() engagement.ProductViewRepository {
	return NewGormProductViewRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ txn.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements Repositories
var _ txn.Repositories = (*gormTransactionalRepositories)(nil)
