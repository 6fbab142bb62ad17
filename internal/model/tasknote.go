package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskNote — заметка к задаче. Заметки только добавляются, редактирования нет.
type TaskNote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	NoteText  string    `gorm:"not null"`
	NoteType  string    `gorm:"not null;default:'status_update';check:note_type IN ('status_update', 'supply_request', 'time_request')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Task Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Типы заметок
const (
	NoteStatusUpdate  = "status_update"
	NoteSupplyRequest = "supply_request"
	NoteTimeRequest   = "time_request"
)
