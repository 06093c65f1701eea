package models

import (
	"time"

	"gorm.io/datatypes"
)

// SiteUpdate is a dated progress note for a project, optionally carrying a
// list of photo URLs.
type SiteUpdate struct {
	ID          int            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectId   int            `gorm:"column:project_id;not null;index:idx_site_update_project" json:"project_id"`
	Title       string         `gorm:"column:title;size:255;not null" json:"title"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Photos      datatypes.JSON `gorm:"column:photos" json:"photos"`
	UpdateDate  time.Time      `gorm:"column:update_date" json:"update_date"`
	IsDeleted   bool           `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SiteUpdate) TableName() string {
	return "site_updates"
}
