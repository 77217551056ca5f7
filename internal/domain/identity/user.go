package identity

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the marketplace side a user acts on
type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
)

// ParseRole parses a case-insensitive role name ("buyer" / "seller")
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleBuyer:
		return RoleBuyer, nil
	case RoleSeller:
		return RoleSeller, nil
	}
	return "", shared.InvalidInput("Invalid user role")
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// Lower returns the lower-case wire form of the role
func (r Role) Lower() string {
	return strings.ToLower(string(r))
}

const (
	// Password cost for bcrypt
	bcryptCost = 12

	// OTPLength is the number of digits of a verification code
	OTPLength = 6
	// DefaultOTPTTL is how long a verification code stays valid
	DefaultOTPTTL = 10 * time.Minute
	// DefaultResetTokenTTL is how long a password reset token stays valid
	DefaultResetTokenTTL = 30 * time.Minute
)

// User is the aggregate root for identity, credentials and verification state
type User struct {
	shared.BaseAggregateRoot
	FirstName        string
	LastName         string
	Email            string
	Contact          string
	Role             Role
	PasswordHash     string
	IsVerified       bool
	OTPCode          *string
	OTPExpiry        *time.Time
	ResetToken       *string
	ResetTokenExpiry *time.Time
}

// Registration carries the identity fields supplied at signup
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Contact   string
	Role      Role
	Password  string
}

// NewUser creates an unverified user from a registration
func NewUser(reg Registration) (*User, error) {
	email, err := NormalizeEmail(reg.Email)
	if err != nil {
		return nil, err
	}
	if !reg.Role.IsValid() {
		return nil, shared.InvalidInput("Invalid user role")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
	}
	if err := user.apply(reg); err != nil {
		return nil, err
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// Reregister overwrites a pending registration. A verified account cannot be
// overwritten.
func (u *User) Reregister(reg Registration) error {
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	if !reg.Role.IsValid() {
		return shared.InvalidInput("Invalid user role")
	}
	if err := u.apply(reg); err != nil {
		return err
	}
	u.Touch()

	u.AddDomainEvent(NewUserRegisteredEvent(u))

	return nil
}

func (u *User) apply(reg Registration) error {
	if err := validatePassword(reg.Password); err != nil {
		return err
	}
	hash, err := hashPassword(reg.Password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.FirstName = strings.TrimSpace(reg.FirstName)
	u.LastName = strings.TrimSpace(reg.LastName)
	u.Contact = strings.TrimSpace(reg.Contact)
	u.Role = reg.Role
	u.PasswordHash = hash
	return nil
}

// ContactUpdate carries optional contact detail changes. Nil fields are left untouched.
type ContactUpdate struct {
	// ContactPerson is split on the first space into first and last name
	ContactPerson *string
	Email         *string
	Phone         *string
}

// UpdateContactDetails applies a contact detail change
func (u *User) UpdateContactDetails(c ContactUpdate) error {
	if c.Email != nil {
		email, err := NormalizeEmail(*c.Email)
		if err != nil {
			return err
		}
		u.Email = email
	}
	if c.ContactPerson != nil {
		first, last, _ := strings.Cut(strings.TrimSpace(*c.ContactPerson), " ")
		u.FirstName = first
		u.LastName = strings.TrimSpace(last)
	}
	if c.Phone != nil {
		u.Contact = strings.TrimSpace(*c.Phone)
	}
	u.Touch()
	return nil
}

// FullName returns "first last" with empty parts dropped
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IssueOTP generates a fresh verification code valid for ttl and returns it
func (u *User) IssueOTP(now time.Time, ttl time.Duration) (string, error) {
	if u.IsVerified {
		return "", shared.InvalidInput("Account already verified")
	}
	code, err := GenerateOTP(OTPLength)
	if err != nil {
		return "", err
	}
	expiry := now.Add(ttl)
	u.OTPCode = &code
	u.OTPExpiry = &expiry
	u.Touch()
	return code, nil
}

// VerifyOTP activates the account when code matches and has not expired.
// An expired code is rejected even when it matches.
func (u *User) VerifyOTP(code string, now time.Time) error {
	if u.OTPCode == nil || u.OTPExpiry == nil || *u.OTPCode == "" {
		return ErrInvalidOTP
	}
	if strings.TrimSpace(code) != *u.OTPCode {
		return ErrInvalidOTP
	}
	if now.After(*u.OTPExpiry) {
		return ErrInvalidOTP
	}

	u.IsVerified = true
	u.OTPCode = nil
	u.OTPExpiry = nil
	u.Touch()

	u.AddDomainEvent(NewUserVerifiedEvent(u))

	return nil
}

// IssueResetToken generates a password reset token valid for ttl
func (u *User) IssueResetToken(now time.Time, ttl time.Duration) string {
	token := uuid.NewString()
	expiry := now.Add(ttl)
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	u.Touch()
	return token
}

// ResetPassword sets a new password using an unexpired reset token
func (u *User) ResetPassword(token, newPassword string, now time.Time) error {
	if u.ResetToken == nil || u.ResetTokenExpiry == nil || *u.ResetToken != token {
		return ErrInvalidResetToken
	}
	if now.After(*u.ResetTokenExpiry) {
		return ErrInvalidResetToken
	}
	if err := u.SetPassword(newPassword); err != nil {
		return err
	}
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

// SetPassword sets a new password
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()

	u.AddDomainEvent(NewUserPasswordChangedEvent(u))

	return nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}


// Identity errors with fixed client-facing messages
var (
	ErrInvalidOTP        = shared.InvalidInput("Invalid or expired OTP")
	ErrInvalidResetToken = shared.InvalidInput("Invalid or expired token")
	ErrInvalidCredential = shared.Unauthorized("Invalid credentials")
	ErrNotVerified       = shared.Unauthorized("Account not verified. Please verify via OTP.")
	ErrAlreadyVerified   = shared.InvalidInput("Email already registered and verified.")
)

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.InvalidInput("Email is required")
	}
	if err := validateEmail(email); err != nil {
		return "", err
	}
	return email, nil
}

// GenerateOTP returns a random numeric code of n digits
func GenerateOTP(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}

// Validation functions

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 120 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 120 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
