package repository

import (
	"context"
	"errors"
	"time"

	"jobsite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

// TaskFilter narrows List results. Nil/empty fields are ignored.
type TaskFilter struct {
	AssignedUserID *uuid.UUID
	JobSiteID      *uuid.UUID
	Status         string
}

// TaskRow is a task joined with its job site name and assignee username,
// the shape the list/detail endpoints respond with.
type TaskRow struct {
	model.Task
	JobSiteName      string `gorm:"column:job_site_name"`
	AssignedUsername string `gorm:"column:assigned_username"`
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetRowByID(ctx context.Context, id uuid.UUID) (*TaskRow, error)
	List(ctx context.Context, filter TaskFilter) ([]TaskRow, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetRowByID retrieves a task by its ID joined with job site and assignee names
func (r *TaskRepository) GetRowByID(ctx context.Context, id uuid.UUID) (*TaskRow, error) {
	var row TaskRow
	result := r.joined(ctx).Where("tasks.id = ?", id).Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &row, nil
}

// List retrieves tasks matching the filter, newest first
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]TaskRow, error) {
	q := r.joined(ctx)
	if filter.AssignedUserID != nil {
		q = q.Where("tasks.assigned_user_id = ?", *filter.AssignedUserID)
	}
	if filter.JobSiteID != nil {
		q = q.Where("tasks.job_site_id = ?", *filter.JobSiteID)
	}
	if filter.Status != "" {
		q = q.Where("tasks.status = ?", filter.Status)
	}

	var rows []TaskRow
	result := q.Order("tasks.created_at DESC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

// UpdateFields applies a partial update to a task. Fields absent from the map
// keep their previous values; updated_at is always refreshed.
func (r *TaskRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID; its notes go with it via ON DELETE CASCADE
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Select("tasks.*, job_sites.name AS job_site_name, users.username AS assigned_username").
		Joins("LEFT JOIN job_sites ON job_sites.id = tasks.job_site_id").
		Joins("LEFT JOIN users ON users.id = tasks.assigned_user_id")
}
