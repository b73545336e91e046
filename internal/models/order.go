package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderOpen   = "OPEN"
	OrderClosed = "CLOSED"
)

// Order é uma venda avulsa (produtos); apenas pedidos CLOSED
// contam como receita no dashboard.
type Order struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID string `gorm:"type:uuid;index;not null" json:"company_id"`

	TotalAmount float64 `json:"total_amount"`
	Status      string  `gorm:"size:20;default:'OPEN'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
