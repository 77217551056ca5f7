package identity

import (
	"time"

	"github.com/google/uuid"
)

// SignupInput contains the fields of a buyer or seller registration
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Contact   string
	Password  string
	Role      string

	// Buyer
	UserType       string
	CompanyName    string
	CompanyReg     string
	CompanyAddress string

	// Seller
	StoreName    string
	StoreReg     string
	StoreAddress string
}

// SignupResult reports the registered (or overwritten) user
type SignupResult struct {
	UserID      uuid.UUID
	Email       string
	Overwritten bool
}

// CheckUniqueInput holds the optional values to check
type CheckUniqueInput struct {
	Email      string
	Contact    string
	CompanyReg string
	StoreReg   string
}

// CheckUniqueResult reports which supplied values are already held by verified accounts.
// A nil field means the value was not supplied.
type CheckUniqueResult struct {
	EmailExists      *bool `json:"emailExists,omitempty"`
	ContactExists    *bool `json:"contactExists,omitempty"`
	CompanyRegExists *bool `json:"companyRegExists,omitempty"`
	StoreRegExists   *bool `json:"storeRegExists,omitempty"`
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput contains the tokens presented at logout. Either may be empty.
type LogoutInput struct {
	AccessToken  string
	RefreshToken string
}

// ResetPasswordInput contains the input for a password reset
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// CurrentUserResult is the /me projection
type CurrentUserResult struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Contact   string         `json:"contact"`
	Profile   map[string]any `json:"profile"`
}
