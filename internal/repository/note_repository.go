package repository

import (
	"context"

	"jobsite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

// NoteRow is a note joined with the author's username
type NoteRow struct {
	model.TaskNote
	Username string `gorm:"column:username"`
}

type NoteRepositoryInterface interface {
	Create(ctx context.Context, note *model.TaskNote) error
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]NoteRow, error)
}

var _ NoteRepositoryInterface = (*NoteRepository)(nil)

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create adds a new note to a task
func (r *NoteRepository) Create(ctx context.Context, note *model.TaskNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// GetByTaskID retrieves all notes on a task with author usernames, newest first
func (r *NoteRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]NoteRow, error) {
	var rows []NoteRow
	result := r.db.WithContext(ctx).Model(&model.TaskNote{}).
		Select("task_notes.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = task_notes.user_id").
		Where("task_notes.task_id = ?", taskID).
		Order("task_notes.created_at DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}
