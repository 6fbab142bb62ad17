package repository

import (
	"context"

	"jobsite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentRepository manages the user <-> job site join table
type AssignmentRepository struct {
	db *gorm.DB
}

type AssignmentRepositoryInterface interface {
	Assign(ctx context.Context, userID, jobSiteID uuid.UUID) error
	Unassign(ctx context.Context, userID, jobSiteID uuid.UUID) error
	GetSitesByUser(ctx context.Context, userID uuid.UUID) ([]model.JobSite, error)
}

var _ AssignmentRepositoryInterface = (*AssignmentRepository)(nil)

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Assign links a user to a job site; repeating an existing assignment is a no-op
func (r *AssignmentRepository) Assign(ctx context.Context, userID, jobSiteID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO user_job_sites (user_id, job_site_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		userID, jobSiteID,
	).Error
}

// Unassign removes the link between a user and a job site
func (r *AssignmentRepository) Unassign(ctx context.Context, userID, jobSiteID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND job_site_id = ?", userID, jobSiteID).
		Delete(&model.UserJobSite{}).Error
}

// GetSitesByUser returns the job sites a user is assigned to
func (r *AssignmentRepository) GetSitesByUser(ctx context.Context, userID uuid.UUID) ([]model.JobSite, error) {
	var sites []model.JobSite

	err := r.db.WithContext(ctx).Model(&model.JobSite{}).
		Joins("JOIN user_job_sites ON user_job_sites.job_site_id = job_sites.id").
		Where("user_job_sites.user_id = ?", userID).
		Find(&sites).Error

	return sites, err
}
