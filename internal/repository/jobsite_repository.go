package repository

import (
	"context"
	"errors"

	"jobsite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobSiteRepository struct {
	db *gorm.DB
}

type JobSiteRepositoryInterface interface {
	Create(ctx context.Context, site *model.JobSite) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.JobSite, error)
	GetAll(ctx context.Context) ([]model.JobSite, error)
	Update(ctx context.Context, site *model.JobSite) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ JobSiteRepositoryInterface = (*JobSiteRepository)(nil)

func NewJobSiteRepository(db *gorm.DB) *JobSiteRepository {
	return &JobSiteRepository{db: db}
}

// Create adds a new job site to the database
func (r *JobSiteRepository) Create(ctx context.Context, site *model.JobSite) error {
	return r.db.WithContext(ctx).Create(site).Error
}

// GetByID retrieves a job site by its ID
func (r *JobSiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.JobSite, error) {
	var site model.JobSite
	result := r.db.WithContext(ctx).First(&site, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrJobSiteNotFound
		}
		return nil, result.Error
	}
	return &site, nil
}

// GetAll retrieves all job sites, newest first
func (r *JobSiteRepository) GetAll(ctx context.Context) ([]model.JobSite, error) {
	var sites []model.JobSite
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&sites)
	if result.Error != nil {
		return nil, result.Error
	}
	return sites, nil
}

// Update saves an existing job site
func (r *JobSiteRepository) Update(ctx context.Context, site *model.JobSite) error {
	result := r.db.WithContext(ctx).Save(site)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobSiteNotFound
	}
	return nil
}

// Delete removes a job site; its tasks (and their notes) and user assignments
// go with it via ON DELETE CASCADE
func (r *JobSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.JobSite{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobSiteNotFound
	}
	return nil
}
