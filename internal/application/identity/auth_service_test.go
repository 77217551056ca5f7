package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/infrastructure/auth"
	"github.com/swiftsupply/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string) (*identity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsVerifiedByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsVerifiedByContact(ctx context.Context, contact string) (bool, error) {
	args := m.Called(ctx, contact)
	return args.Bool(0), args.Error(1)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.BuyerProfile), args.Error(1)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.SellerProfile), args.Error(1)
}

func (m *MockSellerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*partner.SellerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.SellerProfile), args.Error(1)
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
	return args.Get(0).([]*partner.SellerProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockSellerProfileRepository) Stats(ctx context.Context, sellerID uuid.UUID) (partner.SellerStats, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(partner.SellerStats), args.Error(1)
}

func (m *MockSellerProfileRepository) StatsFor(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]partner.SellerStats, error) {
	args := m.Called(ctx, sellerIDs)
	return args.Get(0).(map[uuid.UUID]partner.SellerStats), args.Error(1)
}

// recordingNotifier captures the mails that would be sent
type recordingNotifier struct {
	codes map[string]string
	links map[string]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{codes: map[string]string{}, links: map[string]string{}}
}

func (n *recordingNotifier) SendVerificationCode(_ context.Context, to, _, code string, _ time.Duration) error {
	n.codes[to] = code
	return nil
}

func (n *recordingNotifier) SendPasswordReset(_ context.Context, to, _, link string, _ time.Duration) error {
	n.links[to] = link
	return nil
}

type fakeGoogle struct {
	identity *GoogleIdentity
	err      error
}

func (g *fakeGoogle) Verify(context.Context, string) (*GoogleIdentity, error) {
	return g.identity, g.err
}

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

type testFixture struct {
	svc       *AuthService
	users     *MockUserRepository
	buyers    *MockBuyerProfileRepository
	sellers   *MockSellerProfileRepository
	notifier  *recordingNotifier
	blacklist *auth.InMemoryTokenBlacklist
	jwt       *auth.JWTService
	google    *fakeGoogle
	now       time.Time
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{
		users:     new(MockUserRepository),
		buyers:    new(MockBuyerProfileRepository),
		sellers:   new(MockSellerProfileRepository),
		notifier:  newRecordingNotifier(),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		google:    &fakeGoogle{},
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-that-is-long-enough",
			AccessTokenExpiration:  time.Hour,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "swiftsupply-test",
		}),
		now: time.Now(),
	}
	scope := txn.NewNoOpTransactionScope(&txn.StaticRepositories{
		UserRepo:          f.users,
		BuyerProfileRepo:  f.buyers,
		SellerProfileRepo: f.sellers,
	})
	f.svc = NewAuthService(AuthServiceDeps{
		Users:      f.users,
		Buyers:     f.buyers,
		Sellers:    f.sellers,
		TxScope:    scope,
		JWTService: f.jwt,
		Blacklist:  f.blacklist,
		Notifier:   f.notifier,
		Google:     f.google,
	}, AuthServiceConfig{PublicURL: "https://app.swiftsupply.test/"}, zap.NewNop())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func newUser(t *testing.T, email string, role identity.Role, verified bool) *identity.User {
	t.Helper()
	u, err := identity.NewUser(identity.Registration{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Contact:   "+6590001111",
		Role:      role,
		Password:  "secret123",
	})
	require.NoError(t, err)
	u.IsVerified = verified
	u.ClearDomainEvents()
	return u
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("new buyer", func(t *testing.T) {
		f := newTestFixture(t)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(nil, shared.ErrNotFound)
		f.users.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		f.buyers.On("ExistsByCompanyReg", ctx, "REG-1", false).Return(false, nil)
		f.buyers.On("Create", ctx, mock.MatchedBy(func(p *partner.BuyerProfile) bool {
			return p.CompanyReg == "REG-1" && p.BuyerType == partner.BuyerTypeWholesale
		})).Return(nil)

		res, err := f.svc.Signup(ctx, SignupInput{
			FirstName: "Ada", Email: "  ADA@example.com ", Password: "secret123",
			Role: "Buyer", UserType: "wholesale", CompanyReg: "REG-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", res.Email)
		assert.False(t, res.Overwritten)
		assert.Len(t, f.notifier.codes["ada@example.com"], identity.OTPLength)
		f.users.AssertExpectations(t)
		f.buyers.AssertExpectations(t)
	})

	t.Run("overwrites unverified registration", func(t *testing.T) {
		f := newTestFixture(t)
		existing := newUser(t, "ada@example.com", identity.RoleBuyer, false)
		oldHash := existing.PasswordHash

		f.users.On("FindByEmail", ctx, "ada@example.com").Return(existing, nil)
		f.buyers.On("DeleteByUserID", ctx, existing.ID).Return(nil)
		f.sellers.On("DeleteByUserID", ctx, existing.ID).Return(nil)
		f.users.On("Update", ctx, existing).Return(nil)
		f.sellers.On("ExistsByStoreReg", ctx, "STORE-9", false).Return(false, nil)
		f.sellers.On("Create", ctx, mock.AnythingOfType("*partner.SellerProfile")).Return(nil)

		res, err := f.svc.Signup(ctx, SignupInput{
			FirstName: "Grace", Email: "ada@example.com", Password: "another-pass",
			Role: "seller", StoreReg: "STORE-9", StoreName: "Hopper Supplies",
		})
		require.NoError(t, err)
		assert.True(t, res.Overwritten)
		assert.Equal(t, existing.ID, res.UserID)
		assert.Equal(t, "Grace", existing.FirstName)
		assert.Equal(t, identity.RoleSeller, existing.Role)
		assert.NotEqual(t, oldHash, existing.PasswordHash)
		assert.NotNil(t, existing.OTPCode)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.sellers.AssertExpectations(t)
		f.buyers.AssertExpectations(t)
	})

	t.Run("rejects verified email", func(t *testing.T) {
		f := newTestFixture(t)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(newUser(t, "ada@example.com", identity.RoleBuyer, true), nil)

		_, err := f.svc.Signup(ctx, SignupInput{
			Email: "ada@example.com", Password: "secret123", Role: "buyer", UserType: "RETAILER", CompanyReg: "R",
		})
		assert.EqualError(t, err, "Email already registered and verified.")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects duplicate company registration", func(t *testing.T) {
		f := newTestFixture(t)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(nil, shared.ErrNotFound)
		f.users.On("Create", ctx, mock.Anything).Return(nil)
		f.buyers.On("ExistsByCompanyReg", ctx, "REG-1", false).Return(true, nil)

		_, err := f.svc.Signup(ctx, SignupInput{
			Email: "ada@example.com", Password: "secret123", Role: "buyer", UserType: "RETAILER", CompanyReg: "REG-1",
		})
		assert.EqualError(t, err, "Company registration already exists")
		assert.Empty(t, f.notifier.codes)
	})

	t.Run("validates input before touching storage", func(t *testing.T) {
		f := newTestFixture(t)
		cases := map[string]SignupInput{
			"Email is required":                 {Role: "buyer"},
			"Invalid user role":                 {Email: "a@b.co", Role: "admin"},
			"companyReg is required for buyers": {Email: "a@b.co", Role: "buyer", UserType: "RETAILER"},
			"storeReg is required for sellers":  {Email: "a@b.co", Role: "seller"},
		}
		for msg, input := range cases {
			_, err := f.svc.Signup(ctx, input)
			assert.EqualError(t, err, msg)
		}
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthService_VerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("expired code with the right digits is rejected", func(t *testing.T) {
		f := newTestFixture(t)
		u := newUser(t, "ada@example.com", identity.RoleBuyer, false)
		code, err := u.IssueOTP(f.now, 10*time.Minute)
		require.NoError(t, err)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(u, nil)

		f.now = f.now.Add(11 * time.Minute)
		err = f.svc.VerifyOTP(ctx, "ada@example.com", code)
		assert.ErrorIs(t, err, identity.ErrInvalidOTP)
		assert.False(t, u.IsVerified)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newTestFixture(t)
		f.users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)
		assert.EqualError(t, f.svc.VerifyOTP(ctx, "nobody@example.com", "123456"), "Invalid or expired OTP")
	})

	t.Run("success", func(t *testing.T) {
		f := newTestFixture(t)
		u := newUser(t, "ada@example.com", identity.RoleBuyer, false)
		code, err := u.IssueOTP(f.now, 10*time.Minute)
		require.NoError(t, err)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(u, nil)
		f.users.On("Update", ctx, u).Return(nil)

		require.NoError(t, f.svc.VerifyOTP(ctx, "ADA@example.com", code))
		assert.True(t, u.IsVerified)
		assert.Nil(t, u.OTPCode)
	})
}

func TestAuthService_ResendOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("already verified", func(t *testing.T) {
		f := newTestFixture(t)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(newUser(t, "ada@example.com", identity.RoleBuyer, true), nil)
		assert.EqualError(t, f.svc.ResendOTP(ctx, "ada@example.com"), "Account already verified")
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newTestFixture(t)
		f.users.On("FindByEmail", ctx, "x@example.com").Return(nil, shared.ErrNotFound)
		assert.ErrorIs(t, f.svc.ResendOTP(ctx, "x@example.com"), shared.ErrNotFound)
	})

	t.Run("throttled", func(t *testing.T) {
		f := newTestFixture(t)
		f.svc.mailLimit = denyAll{}
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(newUser(t, "ada@example.com", identity.RoleBuyer, false), nil)
		assert.ErrorIs(t, f.svc.ResendOTP(ctx, "ada@example.com"), shared.ErrRateLimited)
		assert.Empty(t, f.notifier.codes)
	})

	t.Run("sends a new code", func(t *testing.T) {
		f := newTestFixture(t)
		u := newUser(t, "ada@example.com", identity.RoleBuyer, false)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(u, nil)
		f.users.On("Update", ctx, u).Return(nil)

		require.NoError(t, f.svc.ResendOTP(ctx, "ada@example.com"))
		require.NotNil(t, u.OTPCode)
		assert.Equal(t, *u.OTPCode, f.notifier.codes["ada@example.com"])
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		f := newTestFixture(t)
		f.users.On("FindByEmail", ctx, "x@example.com").Return(nil, shared.ErrNotFound)
		_, err := f.svc.Login(ctx, LoginInput{Email: "x@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, identity.ErrInvalidCredential)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newTestFixture(t)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(newUser(t, "ada@example.com", identity.RoleBuyer, true), nil)
		_, err := f.svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "nope-nope"})
		assert.EqualError(t, err, "Invalid credentials")
	})

	t.Run("unverified", func(t *testing.T) {
		f := newTestFixture(t)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(newUser(t, "ada@example.com", identity.RoleBuyer, false), nil)
		_, err := f.svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, identity.ErrNotVerified)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("success", func(t *testing.T) {
		f := newTestFixture(t)
		u := newUser(t, "ada@example.com", identity.RoleSeller, true)
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(u, nil)

		res, err := f.svc.Login(ctx, LoginInput{Email: "Ada@Example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "seller", res.User.Role)

		claims, err := f.jwt.ValidateAccessToken(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID.String(), claims.UserID)
		assert.Equal(t, "SELLER", claims.Role)
	})
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	u := newUser(t, "ada@example.com", identity.RoleBuyer, true)
	f.users.On("FindByEmail", ctx, "ada@example.com").Return(u, nil)
	f.users.On("FindByID", ctx, u.ID).Return(u, nil)

	login, err := f.svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	rotated, err := f.svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	_, err = f.svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.EqualError(t, err, "Refresh token has been revoked")

	_, err = f.svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: rotated.AccessToken})
	assert.ErrorIs(t, err, shared.ErrUnauthorized, "access tokens cannot refresh")

	f.svc.Logout(ctx, LogoutInput{AccessToken: rotated.AccessToken, RefreshToken: rotated.RefreshToken})
	claims, err := f.jwt.ValidateAccessToken(rotated.AccessToken)
	require.NoError(t, err)
	revoked, err := f.blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = f.svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: rotated.RefreshToken})
	assert.Error(t, err)
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	u := newUser(t, "ada@example.com", identity.RoleBuyer, true)
	f.users.On("FindByEmail", ctx, "ada@example.com").Return(u, nil)
	f.users.On("Update", ctx, u).Return(nil)

	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))
	require.NotNil(t, u.ResetToken)
	link := f.notifier.links["ada@example.com"]
	assert.Equal(t, "https://app.swiftsupply.test/reset-password?token="+*u.ResetToken, link)

	token := *u.ResetToken
	f.users.On("FindByResetToken", ctx, token).Return(u, nil)

	t.Run("expired token", func(t *testing.T) {
		f.now = f.now.Add(31 * time.Minute)
		err := f.svc.ResetPassword(ctx, ResetPasswordInput{Token: token, NewPassword: "brand-new"})
		assert.ErrorIs(t, err, identity.ErrInvalidResetToken)
		f.now = f.now.Add(-31 * time.Minute)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, f.svc.ResetPassword(ctx, ResetPasswordInput{Token: token, NewPassword: "brand-new"}))
		assert.True(t, u.VerifyPassword("brand-new"))
		assert.Nil(t, u.ResetToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		f.users.On("FindByResetToken", ctx, "nope").Return(nil, shared.ErrNotFound)
		assert.EqualError(t, f.svc.ResetPassword(ctx, ResetPasswordInput{Token: "nope", NewPassword: "x123456"}), "Invalid or expired token")
	})

	t.Run("unknown email", func(t *testing.T) {
		f.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)
		assert.ErrorIs(t, f.svc.ForgotPassword(ctx, "ghost@example.com"), shared.ErrNotFound)
	})
}

func TestAuthService_GoogleSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("verification failure", func(t *testing.T) {
		f := newTestFixture(t)
		f.google.err = errors.New("bad audience")
		_, err := f.svc.GoogleSignIn(ctx, "token")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("no account", func(t *testing.T) {
		f := newTestFixture(t)
		f.google.identity = &GoogleIdentity{Email: "new@example.com", EmailVerified: true}
		f.users.On("FindByEmail", ctx, "new@example.com").Return(nil, shared.ErrNotFound)
		_, err := f.svc.GoogleSignIn(ctx, "token")
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("unverified account", func(t *testing.T) {
		f := newTestFixture(t)
		f.google.identity = &GoogleIdentity{Email: "ada@example.com", EmailVerified: true}
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(newUser(t, "ada@example.com", identity.RoleBuyer, false), nil)
		_, err := f.svc.GoogleSignIn(ctx, "token")
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("success", func(t *testing.T) {
		f := newTestFixture(t)
		f.google.identity = &GoogleIdentity{Email: "Ada@example.com", EmailVerified: true}
		f.users.On("FindByEmail", ctx, "ada@example.com").Return(newUser(t, "ada@example.com", identity.RoleBuyer, true), nil)
		res, err := f.svc.GoogleSignIn(ctx, "token")
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
	})
}

func TestAuthService_CheckUnique(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	f.users.On("ExistsVerifiedByEmail", ctx, "ada@example.com").Return(true, nil)
	f.sellers.On("ExistsByStoreReg", ctx, "S-1", true).Return(false, nil)

	res, err := f.svc.CheckUnique(ctx, CheckUniqueInput{Email: " ADA@example.com", StoreReg: "S-1 "})
	require.NoError(t, err)
	require.NotNil(t, res.EmailExists)
	assert.True(t, *res.EmailExists)
	require.NotNil(t, res.StoreRegExists)
	assert.False(t, *res.StoreRegExists)
	assert.Nil(t, res.ContactExists)
	assert.Nil(t, res.CompanyRegExists)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	u := newUser(t, "ada@example.com", identity.RoleBuyer, true)
	profile, err := partner.NewBuyerProfile(u.ID, partner.BuyerTypeRetailer, "Acme", "REG-1", "Colombo")
	require.NoError(t, err)
	f.users.On("FindByID", ctx, u.ID).Return(u, nil)
	f.buyers.On("FindByUserID", ctx, u.ID).Return(profile, nil)

	res, err := f.svc.GetCurrentUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "buyer", res.Role)
	assert.Equal(t, "RETAILER", res.Profile["buyer_type"])
	assert.Equal(t, "REG-1", res.Profile["company_reg"])

	missing := uuid.New()
	f.users.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
	_, err = f.svc.GetCurrentUser(ctx, missing)
	assert.True(t, strings.Contains(err.Error(), "Unauthorized"))
}
