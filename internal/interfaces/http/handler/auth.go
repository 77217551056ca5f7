package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/swiftsupply/backend/internal/application/identity"
	"github.com/swiftsupply/backend/internal/infrastructure/config"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
	"github.com/swiftsupply/backend/internal/interfaces/http/middleware"
)

// AuthService is the identity use-case surface the auth routes need
type AuthService interface {
	Signup(ctx context.Context, input appidentity.SignupInput) (*appidentity.SignupResult, error)
	CheckUnique(ctx context.Context, input appidentity.CheckUniqueInput) (*appidentity.CheckUniqueResult, error)
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, input appidentity.LoginInput) (*appidentity.LoginResult, error)
	RefreshToken(ctx context.Context, input appidentity.RefreshTokenInput) (*appidentity.LoginResult, error)
	Logout(ctx context.Context, input appidentity.LogoutInput)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input appidentity.ResetPasswordInput) error
	GoogleSignIn(ctx context.Context, idToken string) (*appidentity.LoginResult, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*appidentity.CurrentUserResult, error)
}

// AuthHandler handles registration, login and session HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
	cookies     config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, cookies config.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Signup godoc
// @Summary      Register a buyer or seller
// @Description  Creates an unverified account and mails a one-time code. Re-registering an unverified email overwrites it.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Registration form"
// @Success      201 {object} APIResponse[SignupResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), appidentity.SignupInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Contact:        req.Contact,
		Password:       req.Password,
		Role:           req.Role,
		UserType:       req.UserType,
		CompanyName:    req.CompanyName,
		CompanyReg:     req.CompanyReg,
		CompanyAddress: req.CompanyAddress,
		StoreName:      req.StoreName,
		StoreReg:       req.StoreReg,
		StoreAddress:   req.StoreAddress,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, SignupResponse{
		UserID:      result.UserID,
		Email:       result.Email,
		Overwritten: result.Overwritten,
		Message:     "User created/updated. OTP sent to email.",
	})
}

// CheckUnique godoc
// @Summary      Check registration values
// @Description  Reports which supplied values already belong to verified accounts
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body CheckUniqueRequest true "Values to check"
// @Success      200 {object} APIResponse[appidentity.CheckUniqueResult]
// @Failure      400 {object} ErrorResponse
// @Router       /auth/check-unique [post]
func (h *AuthHandler) CheckUnique(c *gin.Context) {
	var req CheckUniqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.CheckUnique(c.Request.Context(), appidentity.CheckUniqueInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// VerifyOTP godoc
// @Summary      Verify the signup code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body VerifyOTPRequest true "Email and code"
// @Success      200 {object} APIResponse[MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.authService.VerifyOTP(c.Request.Context(), req.Email, req.OTPCode); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "User verified successfully"})
}

// ResendOTP godoc
// @Summary      Resend the signup code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body EmailRequest true "Email"
// @Success      200 {object} APIResponse[MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/resend-otp [post]
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ResendOTP(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "OTP resent to your email"})
}

// Login godoc
// @Summary      User login
// @Description  Authenticates a verified account and sets the access and refresh cookies
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), appidentity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondWithTokens(c, result)
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Description  Rotates the token pair using the refresh cookie, or the body when the cookie is absent
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest false "Refresh token"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token := h.refreshTokenFrom(c)
	if token == "" {
		h.Unauthorized(c, "Refresh token is required")
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), appidentity.RefreshTokenInput{RefreshToken: token})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondWithTokens(c, result)
}

// Logout godoc
// @Summary      User logout
// @Description  Clears the session cookies and revokes the presented tokens
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[MessageResponse]
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout(c.Request.Context(), appidentity.LogoutInput{
		AccessToken:  middleware.ExtractToken(c, h.cookies.AccessName),
		RefreshToken: h.refreshTokenFrom(c),
	})
	h.clearCookies(c)
	h.Success(c, dto.MessageResponse{Message: "Logout successful"})
}

// ForgotPassword godoc
// @Summary      Request a password reset
// @Description  Mails a reset link valid for 30 minutes
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body EmailRequest true "Email"
// @Success      200 {object} APIResponse[MessageResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Reset link sent"})
}

// ResetPassword godoc
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Reset token and new password"
// @Success      200 {object} APIResponse[MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), appidentity.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Password reset successful"})
}

// GoogleSignIn godoc
// @Summary      Sign in with Google
// @Description  Logs in an existing verified account with a Google ID token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body GoogleSignInRequest true "Google ID token"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /auth/google-signin [post]
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.GoogleSignIn(c.Request.Context(), req.Token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondWithTokens(c, result)
}

// GetCurrentUser godoc
// @Summary      Get current user
// @Description  Returns the authenticated user with the buyer or seller profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[appidentity.CurrentUserResult]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	result, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *AuthHandler) respondWithTokens(c *gin.Context, result *appidentity.LoginResult) {
	h.setCookie(c, h.cookies.AccessName, result.AccessToken, result.AccessTokenExpiresAt)
	h.setCookie(c, h.cookies.RefreshName, result.RefreshToken, result.RefreshTokenExpiresAt)

	h.Success(c, LoginResponse{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
		TokenType:             result.TokenType,
		User: AuthUserResponse{
			ID:        result.User.ID,
			Email:     result.User.Email,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
			Role:      result.User.Role,
		},
	})
}

// refreshTokenFrom prefers the refresh cookie over a JSON body
func (h *AuthHandler) refreshTokenFrom(c *gin.Context) string {
	if token, err := c.Cookie(h.cookies.RefreshName); err == nil && token != "" {
		return token
	}
	var req RefreshTokenRequest
	if c.Request.ContentLength != 0 && c.ShouldBindJSON(&req) == nil {
		return strings.TrimSpace(req.RefreshToken)
	}
	return ""
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(sameSiteMode(h.cookies.SameSite))
	c.SetCookie(name, value, maxAge, h.cookies.Path, h.cookies.Domain, h.cookies.Secure, true)
}

func (h *AuthHandler) clearCookies(c *gin.Context) {
	c.SetSameSite(sameSiteMode(h.cookies.SameSite))
	for _, name := range []string{h.cookies.AccessName, h.cookies.RefreshName} {
		c.SetCookie(name, "", -1, h.cookies.Path, h.cookies.Domain, h.cookies.Secure, true)
	}
}

func sameSiteMode(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
