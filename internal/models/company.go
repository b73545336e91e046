package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status de conta da empresa (tenant)
const (
	CompanyActive    = "ACTIVE"
	CompanyInactive  = "INACTIVE"
	CompanySuspended = "SUSPENDED"
	CompanyPending   = "PENDING"
)

type Company struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Category string `gorm:"size:50" json:"category"`

	Plan   string `gorm:"size:50" json:"plan"`
	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	OwnerEmail      string `gorm:"size:100;not null" json:"owner_email"`
	ResponsibleName string `gorm:"size:100" json:"responsible_name"`
	Phone           string `gorm:"size:20" json:"phone"`
	Address         string `gorm:"size:255" json:"address"`

	AccessPasswordHash string `gorm:"size:255" json:"-"`

	WhatsappURL  string `gorm:"size:255" json:"whatsapp_url"`
	InstagramURL string `gorm:"size:255" json:"instagram_url"`

	Timezone string `gorm:"size:50" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
