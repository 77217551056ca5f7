package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, email string, role identity.Role, verified bool) *identity.User {
	t.Helper()
	user, err := identity.NewUser(identity.Registration{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Contact:   "+6590000" + email[:3],
		Role:      role,
		Password:  "Secret123!",
	})
	require.NoError(t, err)
	user.IsVerified = verified
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "ada@example.com", identity.RoleBuyer, false)

	found, err := repo.FindByEmail(ctx, "Ada@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "Ada", found.FirstName)
	assert.True(t, found.VerifyPassword("Secret123!"))

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "grace@example.com", identity.RoleSeller, false)
	token := "reset-token"
	user.ResetToken = &token
	user.IsVerified = true
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByResetToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.IsVerified)
}

func TestGormUserRepository_ExistsVerified(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	pending := createTestUser(t, db, "pen@example.com", identity.RoleBuyer, false)
	verified := createTestUser(t, db, "ver@example.com", identity.RoleBuyer, true)

	exists, err := repo.ExistsVerifiedByEmail(ctx, pending.Email)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsVerifiedByEmail(ctx, verified.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsVerifiedByContact(ctx, verified.Contact)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsVerifiedByContact(ctx, pending.Contact)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormBuyerProfileRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormBuyerProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "buy@example.com", identity.RoleBuyer, false)
	profile, err := partner.NewBuyerProfile(user.ID, partner.BuyerTypeWholesale, "Acme", "REG-1", "1 Road")
	require.NoError(t, err)
	catID := uuid.New()
	profile.SetPreferredCategories([]uuid.UUID{catID, catID})
	require.NoError(t, repo.Create(ctx, profile))

	found, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", found.CompanyName)
	assert.Equal(t, []uuid.UUID{catID}, found.PreferredCategoryIDs)

	t.Run("registration counts only verified owners when asked", func(t *testing.T) {
		exists, err := repo.ExistsByCompanyReg(ctx, "REG-1", true)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByCompanyReg(ctx, "REG-1", false)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete by user", func(t *testing.T) {
		require.NoError(t, repo.DeleteByUserID(ctx, user.ID))
		_, err := repo.FindByUserID(ctx, user.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSellerProfileRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSellerProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "sel@example.com", identity.RoleSeller, true)
	profile, err := partner.NewSellerProfile(user.ID, "Best Store", "STORE-1", "Harbour Front")
	require.NoError(t, err)
	typeID := uuid.New()
	profile.SetProductTypes([]uuid.UUID{typeID})
	require.NoError(t, repo.Create(ctx, profile))

	found, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, found.ID)
	assert.Equal(t, []uuid.UUID{typeID}, found.ProductTypeIDs)

	exists, err := repo.ExistsByStoreReg(ctx, "STORE-1", true)
	require.NoError(t, err)
	assert.True(t, exists)

	name := "Renamed Store"
	found.ApplyUpdate(partner.ProfileUpdate{StoreName: &name})
	found.SetProductTypes(nil)
	require.NoError(t, repo.Update(ctx, found))

	byID, err := repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Store", byID.StoreName)
	assert.Empty(t, byID.ProductTypeIDs)

	list, total, err := repo.List(ctx, shared.NewPagination(1, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	stats, err := repo.Stats(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, partner.SellerStats{}, stats)
}
