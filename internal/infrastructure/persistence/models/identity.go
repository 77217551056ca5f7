package models

import (
	"time"

	"github.com/swiftsupply/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	FirstName        string        `gorm:"type:varchar(50)"`
	LastName         string        `gorm:"type:varchar(50)"`
	Email            string        `gorm:"type:varchar(120);not null;uniqueIndex"`
	Contact          string        `gorm:"type:varchar(20);index"`
	Role             identity.Role `gorm:"type:varchar(10);not null"`
	PasswordHash     string        `gorm:"type:varchar(512)"`
	IsVerified       bool          `gorm:"not null;default:false"`
	OTPCode          *string       `gorm:"column:otp_code;type:varchar(6)"`
	OTPExpiry        *time.Time    `gorm:"column:otp_expiry"`
	ResetToken       *string       `gorm:"type:varchar(256);index"`
	ResetTokenExpiry *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Contact:           m.Contact,
		Role:              m.Role,
		PasswordHash:      m.PasswordHash,
		IsVerified:        m.IsVerified,
		OTPCode:           m.OTPCode,
		OTPExpiry:         m.OTPExpiry,
		ResetToken:        m.ResetToken,
		ResetTokenExpiry:  m.ResetTokenExpiry,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Email = u.Email
	m.Contact = u.Contact
	m.Role = u.Role
	m.PasswordHash = u.PasswordHash
	m.IsVerified = u.IsVerified
	m.OTPCode = u.OTPCode
	m.OTPExpiry = u.OTPExpiry
	m.ResetToken = u.ResetToken
	m.ResetTokenExpiry = u.ResetTokenExpiry
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
