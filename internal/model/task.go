package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title          string    `gorm:"not null"`
	Description    string
	JobSiteID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status         string    `gorm:"not null;default:'pending';check:status IN ('pending', 'in_progress', 'needs_supplies', 'complete')"`
	Priority       string    `gorm:"not null;default:'medium';check:priority IN ('low', 'medium', 'high')"`
	DueDate        *time.Time
	EstimatedHours *int
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	JobSite  JobSite `gorm:"foreignKey:JobSiteID;constraint:OnDelete:CASCADE"`
	Assignee User    `gorm:"foreignKey:AssignedUserID;constraint:OnDelete:CASCADE"`
}

// Статусы задачи
const (
	StatusPending       = "pending"
	StatusInProgress    = "in_progress"
	StatusNeedsSupplies = "needs_supplies"
	StatusComplete      = "complete"
)

// Приоритеты задачи
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)
