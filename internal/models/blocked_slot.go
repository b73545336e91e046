package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockedSlot fecha um horário fixo em uma data para a empresa inteira,
// independente de profissional.
type BlockedSlot struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID string `gorm:"type:uuid;index:idx_blocked_company_date;not null" json:"company_id"`

	SlotDate string `gorm:"size:10;index:idx_blocked_company_date;not null" json:"slot_date"` // YYYY-MM-DD
	SlotTime string `gorm:"size:5;not null" json:"slot_time"`                                 // HH:MM

	CreatedAt time.Time `json:"created_at"`
}

func (b *BlockedSlot) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
