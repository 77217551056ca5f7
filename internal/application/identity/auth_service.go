package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Notifier delivers the account emails
type Notifier interface {
	SendVerificationCode(ctx context.Context, to, name, code string, ttl time.Duration) error
	SendPasswordReset(ctx context.Context, to, name, link string, ttl time.Duration) error
}

// GoogleIdentity is the verified content of a Google ID token
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// GoogleVerifier verifies a Google ID token for the configured client
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// Limiter throttles an action per key
type Limiter interface {
	Allow(key string) bool
}

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	OTPTTL        time.Duration
	ResetTokenTTL time.Duration
	// PublicURL is the web client base used in reset links
	PublicURL string
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		OTPTTL:        identity.DefaultOTPTTL,
		ResetTokenTTL: identity.DefaultResetTokenTTL,
		PublicURL:     "http://localhost:3000",
	}
}

// AuthService handles registration, verification and authentication
type AuthService struct {
	users      identity.UserRepository
	buyers     partner.BuyerProfileRepository
	sellers    partner.SellerProfileRepository
	txScope    txn.TransactionScope
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	notifier   Notifier
	google     GoogleVerifier
	mailLimit  Limiter
	events     shared.EventPublisher
	config     AuthServiceConfig
	logger     *zap.Logger
	now        func() time.Time
}

// AuthServiceDeps groups the collaborators of AuthService
type AuthServiceDeps struct {
	Users      identity.UserRepository
	Buyers     partner.BuyerProfileRepository
	Sellers    partner.SellerProfileRepository
	TxScope    txn.TransactionScope
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	Notifier   Notifier
	Google     GoogleVerifier
	MailLimit  Limiter
	Events     shared.EventPublisher
}

// NewAuthService creates a new authentication service
func NewAuthService(deps AuthServiceDeps, config AuthServiceConfig, logger *zap.Logger) *AuthService {
	if config.OTPTTL <= 0 {
		config.OTPTTL = identity.DefaultOTPTTL
	}
	if config.ResetTokenTTL <= 0 {
		config.ResetTokenTTL = identity.DefaultResetTokenTTL
	}
	return &AuthService{
		users:      deps.Users,
		buyers:     deps.Buyers,
		sellers:    deps.Sellers,
		txScope:    deps.TxScope,
		jwtService: deps.JWTService,
		blacklist:  deps.Blacklist,
		notifier:   deps.Notifier,
		google:     deps.Google,
		mailLimit:  deps.MailLimit,
		events:     deps.Events,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// Signup registers a buyer or seller. An unverified registration for the same
// email is overwritten (its profile replaced and a new code issued); a verified
// one is rejected.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	email, err := identity.NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	var buyerType partner.BuyerType
	switch role {
	case identity.RoleBuyer:
		if strings.TrimSpace(input.CompanyReg) == "" {
			return nil, shared.InvalidInput("companyReg is required for buyers")
		}
		if buyerType, err = partner.ParseBuyerType(input.UserType); err != nil {
			return nil, err
		}
	case identity.RoleSeller:
		if strings.TrimSpace(input.StoreReg) == "" {
			return nil, shared.InvalidInput("storeReg is required for sellers")
		}
	}

	reg := identity.Registration{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Contact:   input.Contact,
		Role:      role,
		Password:  input.Password,
	}

	var (
		user        *identity.User
		code        string
		overwritten bool
	)
	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		existing, err := repos.Users().FindByEmail(ctx, email)
		switch {
		case err == nil:
			if err := existing.Reregister(reg); err != nil {
				return err
			}
			if err := repos.BuyerProfiles().DeleteByUserID(ctx, existing.ID); err != nil {
				return fmt.Errorf("failed to delete previous buyer profile: %w", err)
			}
			if err := repos.SellerProfiles().DeleteByUserID(ctx, existing.ID); err != nil {
				return fmt.Errorf("failed to delete previous seller profile: %w", err)
			}
			user = existing
			overwritten = true
		case errors.Is(err, shared.ErrNotFound):
			if user, err = identity.NewUser(reg); err != nil {
				return err
			}
		default:
			return fmt.Errorf("failed to look up user: %w", err)
		}

		if code, err = user.IssueOTP(s.now(), s.config.OTPTTL); err != nil {
			return err
		}
		if overwritten {
			err = repos.Users().Update(ctx, user)
		} else {
			err = repos.Users().Create(ctx, user)
		}
		if err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		if role == identity.RoleBuyer {
			return s.createBuyerProfile(ctx, repos, user, buyerType, input)
		}
		return s.createSellerProfile(ctx, repos, user, input)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, user)
	s.sendVerificationCode(ctx, user, code)

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
		zap.Bool("overwritten", overwritten))

	return &SignupResult{UserID: user.ID, Email: user.Email, Overwritten: overwritten}, nil
}

func (s *AuthService) createBuyerProfile(ctx context.Context, repos txn.Repositories, user *identity.User, buyerType partner.BuyerType, input SignupInput) error {
	profile, err := partner.NewBuyerProfile(user.ID, buyerType, input.CompanyName, input.CompanyReg, input.CompanyAddress)
	if err != nil {
		return err
	}
	exists, err := repos.BuyerProfiles().ExistsByCompanyReg(ctx, profile.CompanyReg, false)
	if err != nil {
		return fmt.Errorf("failed to check company registration: %w", err)
	}
	if exists {
		return shared.InvalidInput("Company registration already exists")
	}
	if err := repos.BuyerProfiles().Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to create buyer profile: %w", err)
	}
	return nil
}

func (s *AuthService) createSellerProfile(ctx context.Context, repos txn.Repositories, user *identity.User, input SignupInput) error {
	profile, err := partner.NewSellerProfile(user.ID, input.StoreName, input.StoreReg, input.StoreAddress)
	if err != nil {
		return err
	}
	exists, err := repos.SellerProfiles().ExistsByStoreReg(ctx, profile.StoreReg, false)
	if err != nil {
		return fmt.Errorf("failed to check store registration: %w", err)
	}
	if exists {
		return shared.InvalidInput("Store registration already exists")
	}
	if err := repos.SellerProfiles().Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to create seller profile: %w", err)
	}
	return nil
}

// CheckUnique reports which of the supplied values belong to verified accounts
func (s *AuthService) CheckUnique(ctx context.Context, input CheckUniqueInput) (*CheckUniqueResult, error) {
	result := &CheckUniqueResult{}

	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" {
		exists, err := s.users.ExistsVerifiedByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		result.EmailExists = &exists
	}
	if contact := strings.TrimSpace(input.Contact); contact != "" {
		exists, err := s.users.ExistsVerifiedByContact(ctx, contact)
		if err != nil {
			return nil, err
		}
		result.ContactExists = &exists
	}
	if reg := strings.TrimSpace(input.CompanyReg); reg != "" {
		exists, err := s.buyers.ExistsByCompanyReg(ctx, reg, true)
		if err != nil {
			return nil, err
		}
		result.CompanyRegExists = &exists
	}
	if reg := strings.TrimSpace(input.StoreReg); reg != "" {
		exists, err := s.sellers.ExistsByStoreReg(ctx, reg, true)
		if err != nil {
			return nil, err
		}
		result.StoreRegExists = &exists
	}
	return result, nil
}

// VerifyOTP activates an account. Unknown users, missing, wrong and expired
// codes all produce the same error.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return identity.ErrInvalidOTP
		}
		return err
	}
	if err := user.VerifyOTP(code, s.now()); err != nil {
		s.logger.Warn("OTP verification failed", zap.String("user_id", user.ID.String()))
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to save verified user: %w", err)
	}
	s.publish(ctx, user)

	s.logger.Info("User verified", zap.String("user_id", user.ID.String()))
	return nil
}

// ResendOTP issues and mails a new verification code
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("User not found")
		}
		return err
	}
	if user.IsVerified {
		return shared.InvalidInput("Account already verified")
	}
	if !s.allowMail(email) {
		return shared.ErrRateLimited
	}

	code, err := user.IssueOTP(s.now(), s.config.OTPTTL)
	if err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to save verification code: %w", err)
	}
	s.sendVerificationCode(ctx, user, code)
	return nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during login", zap.String("ip", input.IP))
			return nil, identity.ErrInvalidCredential
		}
		return nil, err
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()), zap.String("ip", input.IP))
		return nil, identity.ErrInvalidCredential
	}
	if !user.IsVerified {
		return nil, identity.ErrNotVerified
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in successfully", zap.String("user_id", user.ID.String()))
	return result, nil
}

// RefreshToken rotates the token pair. The presented refresh token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.Unauthorized("Refresh token has expired")
		}
		return nil, shared.Unauthorized("Invalid refresh token")
	}
	if s.isRevoked(ctx, claims) {
		return nil, shared.Unauthorized("Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.Unauthorized("Invalid refresh token")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.Unauthorized("Unauthorized user")
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, identity.ErrNotVerified
	}

	s.revoke(ctx, claims)
	return s.issueTokens(user)
}

// Logout revokes the presented tokens until they expire. Invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) {
	if input.AccessToken != "" {
		if claims, err := s.jwtService.ValidateAccessToken(input.AccessToken); err == nil {
			s.revoke(ctx, claims)
		}
	}
	if input.RefreshToken != "" {
		if claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken); err == nil {
			s.revoke(ctx, claims)
		}
	}
}

// ForgotPassword issues a reset token and mails the reset link
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("User not found")
		}
		return err
	}
	if !s.allowMail(email) {
		return shared.ErrRateLimited
	}

	token := user.IssueResetToken(s.now(), s.config.ResetTokenTTL)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	link := strings.TrimRight(s.config.PublicURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
	if s.notifier != nil {
		if err := s.notifier.SendPasswordReset(ctx, user.Email, user.FullName(), link, s.config.ResetTokenTTL); err != nil {
			s.logger.Error("Failed to send password reset email", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}
	return nil
}

// ResetPassword sets a new password using a reset token
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if strings.TrimSpace(input.Token) == "" {
		return identity.ErrInvalidResetToken
	}
	user, err := s.users.FindByResetToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return identity.ErrInvalidResetToken
		}
		return err
	}
	if err := user.ResetPassword(input.Token, input.NewPassword, s.now()); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to save new password: %w", err)
	}
	s.publish(ctx, user)

	s.logger.Info("User password reset", zap.String("user_id", user.ID.String()))
	return nil
}

// GoogleSignIn logs in an existing verified account with a Google ID token
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.google == nil {
		return nil, shared.InvalidInput("Google sign-in failed")
	}
	info, err := s.google.Verify(ctx, idToken)
	if err != nil {
		s.logger.Warn("Google token verification failed", zap.Error(err))
		return nil, shared.InvalidInput("Google sign-in failed")
	}
	if !info.EmailVerified {
		return nil, shared.InvalidInput("Google sign-in failed")
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(info.Email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.Forbidden("No SwiftSupply account found for this Google email. Please register first.")
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, shared.Forbidden("Account not verified. Please complete email verification.")
	}
	return s.issueTokens(user)
}

// GetCurrentUser returns the user with a role-specific profile projection
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*CurrentUserResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.Unauthorized("Unauthorized user")
		}
		return nil, err
	}

	result := &CurrentUserResult{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role.Lower(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Contact:   user.Contact,
	}

	switch user.Role {
	case identity.RoleBuyer:
		p, err := s.buyers.FindByUserID(ctx, user.ID)
		if err == nil {
			result.Profile = map[string]any{
				"buyer_type":      string(p.BuyerType),
				"company_name":    p.CompanyName,
				"company_reg":     p.CompanyReg,
				"company_address": p.CompanyAddress,
			}
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	case identity.RoleSeller:
		p, err := s.sellers.FindByUserID(ctx, user.ID)
		if err == nil {
			result.Profile = map[string]any{
				"id":            p.ID.String(),
				"store_name":    p.StoreName,
				"store_reg":     p.StoreReg,
				"store_address": p.StoreAddress,
			}
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	return result, nil
}

func (s *AuthService) issueTokens(user *identity.User) (*LoginResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}
	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User: UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role.Lower(),
		},
	}, nil
}

func (s *AuthService) isRevoked(ctx context.Context, claims *auth.Claims) bool {
	if s.blacklist == nil || claims.ID == "" {
		return false
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Fail closed
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return true
	}
	return revoked
}

func (s *AuthService) revoke(ctx context.Context, claims *auth.Claims) {
	if s.blacklist == nil || claims.ID == "" {
		return
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke token", zap.String("jti", claims.ID), zap.Error(err))
	}
}

func (s *AuthService) allowMail(email string) bool {
	if s.mailLimit == nil {
		return true
	}
	if !s.mailLimit.Allow(email) {
		s.logger.Warn("Mail throttled", zap.String("email", email))
		return false
	}
	return true
}

func (s *AuthService) sendVerificationCode(ctx context.Context, user *identity.User, code string) {
	if s.notifier == nil {
		return
	}
	// The code stays valid and can be re-sent, so a delivery failure does not fail the request
	if err := s.notifier.SendVerificationCode(ctx, user.Email, user.FullName(), code, s.config.OTPTTL); err != nil {
		s.logger.Error("Failed to send verification email", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}

func (s *AuthService) publish(ctx context.Context, user *identity.User) {
	events := user.GetDomainEvents()
	user.ClearDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish user events", zap.Error(err))
	}
}
