// Package txn gives application services transactional access to repositories.
package txn

import (
	"context"

	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/inventory"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/trade"
)

// TransactionScope runs a unit of work atomically.
// When a function is executed within a transaction scope, all repository operations
// are part of the same database transaction and are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to the repositories that take part in write paths.
// All repositories returned share the same underlying database transaction.
type Repositories interface {
	Users() identity.UserRepository
	BuyerProfiles() partner.BuyerProfileRepository
	SellerProfiles() partner.SellerProfileRepository
	Taxonomy() catalog.TaxonomyRepository
	Products() catalog.ProductRepository
	Reviews() catalog.ReviewRepository
	Orders() trade.OrderRepository
	InventoryLogs() inventory.LogRepository
	Inquiries() engagement.InquiryRepository
	SupplierReviews() engagement.SupplierReviewRepository
	Chats() engagement.ChatRepository
	ProductViews() engagement.ProductViewRepository
}

// StaticRepositories is a Repositories value backed by fixed repository instances
type StaticRepositories struct {
	UserRepo           identity.UserRepository
	BuyerProfileRepo   partner.BuyerProfileRepository
	SellerProfileRepo  partner.SellerProfileRepository
	TaxonomyRepo       catalog.TaxonomyRepository
	ProductRepo        catalog.ProductRepository
	ReviewRepo         catalog.ReviewRepository
	OrderRepo          trade.OrderRepository
	InventoryLogRepo   inventory.LogRepository
	InquiryRepo        engagement.InquiryRepository
	SupplierReviewRepo engagement.SupplierReviewRepository
	ChatRepo           engagement.ChatRepository
	ProductViewRepo    engagement.ProductViewRepository
}

func (r *StaticRepositories) Users() identity.UserRepository                { return r.UserRepo }
func (r *StaticRepositories) BuyerProfiles() partner.BuyerProfileRepository { return r.BuyerProfileRepo }
func (r *StaticRepositories) SellerProfiles() partner.SellerProfileRepository {
	return r.SellerProfileRepo
}
func (r *StaticRepositories) Taxonomy() catalog.TaxonomyRepository  { return r.TaxonomyRepo }
func (r *StaticRepositories) Products() catalog.ProductRepository   { return r.ProductRepo }
func (r *StaticRepositories) Reviews() catalog.ReviewRepository     { return r.ReviewRepo }
func (r *StaticRepositories) Orders() trade.OrderRepository         { return r.OrderRepo }
func (r *StaticRepositories) InventoryLogs() inventory.LogRepository { return r.InventoryLogRepo }
func (r *StaticRepositories) Inquiries() engagement.InquiryRepository {
	return r.InquiryRepo
}
func (r *StaticRepositories) SupplierReviews() engagement.SupplierReviewRepository {
	return r.SupplierReviewRepo
}
func (r *StaticRepositories) Chats() engagement.ChatRepository { return r.ChatRepo }
func (r *StaticRepositories) ProductViews() engagement.ProductViewRepository {
	return r.ProductViewRepo
}

// NoOpTransactionScope runs the function directly against fixed repositories
// without a transaction. Used in tests.
type NoOpTransactionScope struct {
	Repos *StaticRepositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(repos *StaticRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{Repos: repos}
}

// Execute calls fn with the fixed repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s.Repos)
}

var (
	_ Repositories     = (*StaticRepositories)(nil)
	_ TransactionScope = (*NoOpTransactionScope)(nil)
)
