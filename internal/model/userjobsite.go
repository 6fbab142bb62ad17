package model

import (
	"time"

	"github.com/google/uuid"
)

// UserJobSite представляет связь между пользователем и объектом
type UserJobSite struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_job_site"`
	JobSiteID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_job_site"`
	AssignedAt time.Time `gorm:"autoCreateTime"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	JobSite JobSite `gorm:"foreignKey:JobSiteID;constraint:OnDelete:CASCADE"`
}
