package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Username       string    `gorm:"uniqueIndex;not null"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Role           string    `gorm:"not null;default:'user';check:role IN ('admin', 'user')"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// Роли пользователей
const (
	RoleAdmin = "admin" // создает объекты и задачи, получает уведомления о статусах
	RoleUser  = "user"  // работает только со своими задачами
)
