package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Username       string         `json:"username" gorm:"unique;not null"`
	Name           string         `json:"name"`
	Email          string         `json:"email" gorm:"unique;not null"`
	PasswordHash   string         `json:"-"`
	Department     string         `json:"department"`
	Role           string         `json:"role" gorm:"default:'doer'"` // admin, manager, doer, client
	WhatsAppNumber string         `json:"whatsapp_number" gorm:"column:whats_app_number"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// DisplayName falls back to the username when no full name is stored.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleDoer    UserRole = "doer"
	RoleClient  UserRole = "client"
)
