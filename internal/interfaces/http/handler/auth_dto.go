package handler

import (
	"time"

	"github.com/google/uuid"
)

// SignupRequest is the registration form of a buyer or seller
type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Email     string `json:"email" binding:"required,max=120"`
	Contact   string `json:"contact" binding:"max=20"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	Role      string `json:"role" binding:"required,user_role"`

	UserType       string `json:"userType"`
	CompanyName    string `json:"companyName" binding:"max=200"`
	CompanyReg     string `json:"companyReg" binding:"max=100"`
	CompanyAddress string `json:"companyAddress"`

	StoreName    string `json:"storeName" binding:"max=200"`
	StoreReg     string `json:"storeReg" binding:"max=100"`
	StoreAddress string `json:"storeAddress"`
}

// SignupResponse reports the pending registration
type SignupResponse struct {
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	Overwritten bool      `json:"overwritten"`
	Message     string    `json:"message"`
}

// CheckUniqueRequest lists the values to check. All are optional.
type CheckUniqueRequest struct {
	Email      string `json:"email"`
	Contact    string `json:"contact"`
	CompanyReg string `json:"companyReg"`
	StoreReg   string `json:"storeReg"`
}

// VerifyOTPRequest carries the code mailed at signup
type VerifyOTPRequest struct {
	Email   string `json:"email" binding:"required"`
	OTPCode string `json:"otp_code" binding:"required"`
}

// EmailRequest carries a single email address
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest may carry the refresh token when the cookie is not sent
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ResetPasswordRequest sets a new password with a mailed reset token
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// GoogleSignInRequest carries a Google ID token
type GoogleSignInRequest struct {
	Token string `json:"token" binding:"required"`
}

// AuthUserResponse represents user data in auth responses
type AuthUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
}

// LoginResponse represents the response body for a successful login or refresh
type LoginResponse struct {
	AccessToken           string           `json:"access_token"`
	RefreshToken          string           `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time        `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time        `json:"refresh_token_expires_at"`
	TokenType             string           `json:"token_type"`
	User                  AuthUserResponse `json:"user"`
}
