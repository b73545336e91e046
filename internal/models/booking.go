package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID string `gorm:"type:uuid;index;not null" json:"company_id"`

	ClientID    *string `gorm:"type:uuid" json:"client_id"`
	ClientName  string  `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string  `gorm:"size:20" json:"client_phone"`

	// Ausência de profissional significa "qualquer disponível".
	ProfessionalID *string       `gorm:"type:uuid" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional,omitempty"`

	ServiceID *string  `gorm:"type:uuid" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'CONFIRMED'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
