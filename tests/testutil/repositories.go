package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/inventory"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/report"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
)

// getOr returns the typed first return value or the zero value when nil was configured
func getOr[T any](args mock.Arguments, i int) T {
	var zero T
	v := args.Get(i)
	if v == nil {
		return zero
	}
	return v.(T)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	return getOr[*identity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	return getOr[*identity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string) (*identity.User, error) {
	args := m.Called(ctx, token)
	return getOr[*identity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) ExistsVerifiedByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsVerifiedByContact(ctx context.Context, contact string) (bool, error) {
	args := m.Called(ctx, contact)
	return args.Bool(0), args.Error(1)
}

// MockTaxonomyRepository is a mock implementation of catalog.TaxonomyRepository
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	args := m.Called(ctx)
	return getOr[[]*catalog.Category](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) FindCategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	return getOr[*catalog.Category](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	return getOr[*catalog.Category](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) SaveCategory(ctx context.Context, c *catalog.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockTaxonomyRepository) ListProductTypes(ctx context.Context) ([]*catalog.ProductType, error) {
	args := m.Called(ctx)
	return getOr[[]*catalog.ProductType](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) ListProductTypesByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.ProductType, error) {
	args := m.Called(ctx, categoryID)
	return getOr[[]*catalog.ProductType](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) FindProductTypeByName(ctx context.Context, name string) (*catalog.ProductType, error) {
	args := m.Called(ctx, name)
	return getOr[*catalog.ProductType](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) FindProductTypesByNames(ctx context.Context, names []string) ([]*catalog.ProductType, error) {
	args := m.Called(ctx, names)
	return getOr[[]*catalog.ProductType](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) FindProductTypesByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.ProductType, error) {
	args := m.Called(ctx, ids)
	return getOr[[]*catalog.ProductType](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) GetOrCreateProductType(ctx context.Context, name string, categoryID uuid.UUID) (*catalog.ProductType, error) {
	args := m.Called(ctx, name, categoryID)
	return getOr[*catalog.ProductType](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) SaveProductType(ctx context.Context, pt *catalog.ProductType) error {
	return m.Called(ctx, pt).Error(0)
}

func (m *MockTaxonomyRepository) ListBrandsByProductType(ctx context.Context, productTypeID uuid.UUID) ([]*catalog.Brand, error) {
	args := m.Called(ctx, productTypeID)
	return getOr[[]*catalog.Brand](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) GetOrCreateBrand(ctx context.Context, name string) (*catalog.Brand, error) {
	args := m.Called(ctx, name)
	return getOr[*catalog.Brand](args, 0), args.Error(1)
}

func (m *MockTaxonomyRepository) LinkBrandToProductType(ctx context.Context, brandID, productTypeID uuid.UUID) error {
	return m.Called(ctx, brandID, productTypeID).Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	return getOr[*catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductRepository) FindBySellerAndID(ctx context.Context, sellerID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, sellerID, id)
	return getOr[*catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductRepository) FindByIDsForSeller(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, sellerID, ids)
	return getOr[[]*catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductRepository) FindListing(ctx context.Context, id uuid.UUID) (*catalog.ProductListing, error) {
	args := m.Called(ctx, id)
	return getOr[*catalog.ProductListing](args, 0), args.Error(1)
}

func (m *MockProductRepository) FindListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.ProductListing, error) {
	args := m.Called(ctx, ids)
	return getOr[[]*catalog.ProductListing](args, 0), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.ProductListing, int64, error) {
	args := m.Called(ctx, filter)
	return getOr[[]*catalog.ProductListing](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Related(ctx context.Context, p *catalog.Product, limit int) ([]*catalog.ProductListing, error) {
	args := m.Called(ctx, p, limit)
	return getOr[[]*catalog.ProductListing](args, 0), args.Error(1)
}

func (m *MockProductRepository) TopEngaged(ctx context.Context, sellerID uuid.UUID, limit int) ([]*catalog.Product, error) {
	args := m.Called(ctx, sellerID, limit)
	return getOr[[]*catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) IncrementInquiryCount(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) IncrementOrderCount(ctx context.Context, id uuid.UUID, n int) error {
	return m.Called(ctx, id, n).Error(0)
}

func (m *MockProductRepository) DeductStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *MockProductRepository) SaveStock(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

// MockReviewRepository is a mock implementation of catalog.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateReview(ctx context.Context, r *catalog.ProductReview) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) RefreshRating(ctx context.Context, productID uuid.UUID) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *MockReviewRepository) AddFavorite(ctx context.Context, f *catalog.Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockReviewRepository) RemoveFavorite(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockReviewRepository) ListFavoriteProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return getOr[[]uuid.UUID](args, 0), args.Error(1)
}

// MockBuyerProfileRepository is a mock implementation of partner.BuyerProfileRepository
type MockBuyerProfileRepository struct {
	mock.Mock
}

func (m *MockBuyerProfileRepository) Create(ctx context.Context, profile *partner.BuyerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockBuyerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*partner.BuyerProfile, error) {
	args := m.Called(ctx, userID)
	return getOr[*partner.BuyerProfile](args, 0), args.Error(1)
}

func (m *MockBuyerProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockBuyerProfileRepository) ExistsByCompanyReg(ctx context.Context, companyReg string, verifiedOnly bool) (bool, error) {
	args := m.Called(ctx, companyReg, verifiedOnly)
	return args.Bool(0), args.Error(1)
}

// MockSellerProfileRepository is a mock implementation of partner.SellerProfileRepository
type MockSellerProfileRepository struct {
	mock.Mock
}

func (m *MockSellerProfileRepository) Create(ctx context.Context, profile *partner.SellerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockSellerProfileRepository) Update(ctx context.Context, profile *partner.SellerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockSellerProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.SellerProfile, error) {
	args := m.Called(ctx, id)
	return getOr[*partner.SellerProfile](args, 0), args.Error(1)
}

func (m *MockSellerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*partner.SellerProfile, error) {
	args := m.Called(ctx, userID)
	return getOr[*partner.SellerProfile](args, 0), args.Error(1)
}

func (m *MockSellerProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockSellerProfileRepository) ExistsByStoreReg(ctx context.Context, storeReg string, verifiedOnly bool) (bool, error) {
	args := m.Called(ctx, storeReg, verifiedOnly)
	return args.Bool(0), args.Error(1)
}

func (m *MockSellerProfileRepository) List(ctx context.Context, page shared.Pagination) ([]*partner.SellerProfile, int64, error) {
	args := m.Called(ctx, page)
	return getOr[[]*partner.SellerProfile](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockSellerProfileRepository) Stats(ctx context.Context, sellerID uuid.UUID) (partner.SellerStats, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(partner.SellerStats), args.Error(1)
}

func (m *MockSellerProfileRepository) StatsFor(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]partner.SellerStats, error) {
	args := m.Called(ctx, sellerIDs)
	return getOr[map[uuid.UUID]partner.SellerStats](args, 0), args.Error(1)
}

// MockProductViewRepository is a mock implementation of engagement.ProductViewRepository
type MockProductViewRepository struct {
	mock.Mock
}

func (m *MockProductViewRepository) Create(ctx context.Context, v *engagement.ProductView) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockProductViewRepository) CountBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, sellerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockInquiryRepository is a mock implementation of engagement.InquiryRepository
type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) Create(ctx context.Context, i *engagement.Inquiry) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInquiryRepository) Update(ctx context.Context, i *engagement.Inquiry) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInquiryRepository) FindBySellerAndID(ctx context.Context, sellerID, id uuid.UUID) (*engagement.Inquiry, error) {
	args := m.Called(ctx, sellerID, id)
	return getOr[*engagement.Inquiry](args, 0), args.Error(1)
}

func (m *MockInquiryRepository) List(ctx context.Context, filter engagement.InquiryFilter) ([]engagement.InquiryListing, error) {
	args := m.Called(ctx, filter)
	return getOr[[]engagement.InquiryListing](args, 0), args.Error(1)
}

func (m *MockInquiryRepository) CountBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, sellerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockSupplierReviewRepository is a mock implementation of engagement.SupplierReviewRepository
type MockSupplierReviewRepository struct {
	mock.Mock
}

func (m *MockSupplierReviewRepository) Create(ctx context.Context, r *engagement.SupplierReview) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockSupplierReviewRepository) RecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*engagement.SupplierReview, error) {
	args := m.Called(ctx, sellerID, limit)
	return getOr[[]*engagement.SupplierReview](args, 0), args.Error(1)
}

// MockChatRepository is a mock implementation of engagement.ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) FindRoom(ctx context.Context, buyerID, sellerID uuid.UUID, productID *uuid.UUID) (*engagement.ChatRoom, error) {
	args := m.Called(ctx, buyerID, sellerID, productID)
	return getOr[*engagement.ChatRoom](args, 0), args.Error(1)
}

func (m *MockChatRepository) CreateRoom(ctx context.Context, room *engagement.ChatRoom) error {
	return m.Called(ctx, room).Error(0)
}

func (m *MockChatRepository) FindRoomByID(ctx context.Context, id uuid.UUID) (*engagement.ChatRoom, error) {
	args := m.Called(ctx, id)
	return getOr[*engagement.ChatRoom](args, 0), args.Error(1)
}

func (m *MockChatRepository) ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]engagement.ChatRoomListing, error) {
	args := m.Called(ctx, userID)
	return getOr[[]engagement.ChatRoomListing](args, 0), args.Error(1)
}

func (m *MockChatRepository) AddMessage(ctx context.Context, room *engagement.ChatRoom, msg *engagement.ChatMessage) error {
	return m.Called(ctx, room, msg).Error(0)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]*engagement.ChatMessage, error) {
	args := m.Called(ctx, roomID, limit)
	return getOr[[]*engagement.ChatMessage](args, 0), args.Error(1)
}

func (m *MockChatRepository) MarkRead(ctx context.Context, roomID, readerID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, roomID, readerID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatRepository) CountReceivedBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, sellerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockInventoryLogRepository is a mock implementation of inventory.LogRepository
type MockInventoryLogRepository struct {
	mock.Mock
}

func (m *MockInventoryLogRepository) Append(ctx context.Context, logs ...*inventory.Log) error {
	return m.Called(ctx, logs).Error(0)
}

func (m *MockInventoryLogRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, productID *uuid.UUID, limit int) ([]inventory.LogEntry, error) {
	args := m.Called(ctx, sellerID, productID, limit)
	return getOr[[]inventory.LogEntry](args, 0), args.Error(1)
}

func (m *MockInventoryLogRepository) NetChangeBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, sellerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryLogRepository) Summary(ctx context.Context, sellerID uuid.UUID) (inventory.Summary, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(inventory.Summary), args.Error(1)
}

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *trade.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *trade.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	return getOr[*trade.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, page shared.Pagination) ([]*trade.Order, int64, error) {
	args := m.Called(ctx, buyerID, page)
	return getOr[[]*trade.Order](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) RecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*trade.Order, error) {
	args := m.Called(ctx, sellerID, limit)
	return getOr[[]*trade.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) CountBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, sellerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) HasCompletedOrder(ctx context.Context, buyerID, sellerID uuid.UUID, orderID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, buyerID, sellerID, orderID)
	return args.Bool(0), args.Error(1)
}

// MockActivityRepository is a mock implementation of report.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, a *report.Activity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockActivityRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*report.Activity, error) {
	args := m.Called(ctx, sellerID, limit)
	return getOr[[]*report.Activity](args, 0), args.Error(1)
}

// MockSalesDataRepository is a mock implementation of report.SalesDataRepository
type MockSalesDataRepository struct {
	mock.Mock
}

func (m *MockSalesDataRepository) AddSale(ctx context.Context, sellerID uuid.UUID, day time.Time, revenue decimal.Decimal, orders int) error {
	return m.Called(ctx, sellerID, day, revenue, orders).Error(0)
}

func (m *MockSalesDataRepository) ListBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) ([]report.SalesData, error) {
	args := m.Called(ctx, sellerID, from, to)
	return getOr[[]report.SalesData](args, 0), args.Error(1)
}

func (m *MockSalesDataRepository) RevenueBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, sellerID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

var (
	_ identity.UserRepository            = (*MockUserRepository)(nil)
	_ catalog.TaxonomyRepository          = (*MockTaxonomyRepository)(nil)
	_ catalog.ProductRepository           = (*MockProductRepository)(nil)
	_ catalog.ReviewRepository            = (*MockReviewRepository)(nil)
	_ partner.BuyerProfileRepository      = (*MockBuyerProfileRepository)(nil)
	_ partner.SellerProfileRepository     = (*MockSellerProfileRepository)(nil)
	_ engagement.ProductViewRepository    = (*MockProductViewRepository)(nil)
	_ engagement.InquiryRepository        = (*MockInquiryRepository)(nil)
	_ engagement.SupplierReviewRepository = (*MockSupplierReviewRepository)(nil)
	_ engagement.ChatRepository           = (*MockChatRepository)(nil)
	_ inventory.LogRepository             = (*MockInventoryLogRepository)(nil)
	_ trade.OrderRepository               = (*MockOrderRepository)(nil)
	_ report.ActivityRepository           = (*MockActivityRepository)(nil)
	_ report.SalesDataRepository          = (*MockSalesDataRepository)(nil)
	_ shared.EventPublisher               = (*MockEventPublisher)(nil)
)
