package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a dealership account. Every invoice is owned by exactly
// one user; the legacy API derives ownership from the verified token and
// never from request payloads.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName    string         `gorm:"size:255;not null" json:"first_name"`
	LastName     string         `gorm:"size:255;not null" json:"last_name"`
	Email        string         `gorm:"size:255;unique;not null" json:"email"`
	Password     string         `gorm:"size:255" json:"-"`
	Provider     string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID   *string        `gorm:"size:255" json:"-"`
	Photo        *string        `gorm:"size:255" json:"photo,omitempty"`
	StoreName    *string        `gorm:"size:255" json:"store_name,omitempty"`
	StoreAddress *string        `gorm:"type:text" json:"store_address,omitempty"`
	StorePhone   *string        `gorm:"size:50" json:"store_phone,omitempty"`
	StoreEmail   *string        `gorm:"size:255" json:"store_email,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
