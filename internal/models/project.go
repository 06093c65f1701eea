package models

import (
	"time"
)

const (
	ProgressStatusPending    = "pending"
	ProgressStatusInProgress = "in_progress"
	ProgressStatusCompleted  = "completed"
	ProgressStatusDelayed    = "delayed"
	ProgressStatusCancelled  = "cancelled"
)

type Project struct {
	ID                     int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                   string     `gorm:"column:name;size:255;not null" json:"name"`
	ClientName             string     `gorm:"column:client_name;size:255" json:"client_name"`
	ClientEmail            string     `gorm:"column:client_email;size:255" json:"client_email"`
	Location               string     `gorm:"column:location;size:255" json:"location"`
	Status                 string     `gorm:"column:status;size:20;default:pending" json:"status"`
	PercentageOfCompletion float64    `gorm:"column:percentage_of_completion;type:decimal(5,2);default:0.00" json:"percentage_of_completion"`
	StartDate              *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate                *time.Time `gorm:"column:end_date" json:"end_date"`
	IsDeleted              bool       `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	CreatedAt              time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
