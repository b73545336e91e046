package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Papéis do console master
const (
	RoleMaster       = "MASTER"
	RoleAdmin        = "ADMIN"
	RoleProfessional = "PROFESSIONAL"
	RoleClient       = "CLIENT"
)

// Profile é um usuário do console master (não confundir com o
// acesso por senha da empresa, que vive em Company).
type Profile struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	FullName     string     `gorm:"size:100;not null" json:"full_name"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:20;default:'ADMIN'" json:"role"`
	LastLogin    *time.Time `json:"last_login"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
