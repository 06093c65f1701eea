package models

import (
	"time"
)

// ProjectStage, ProjectStageTask and ProjectSubTask form the three-level
// execution hierarchy under a project. Status and percentage on a parent are
// folds over its children and are never set independently once children exist.

type ProjectStage struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectId  int       `gorm:"column:project_id;not null;index:idx_project_stage_project" json:"project_id"`
	Name       string    `gorm:"column:name;size:255;not null" json:"name"`
	Status     string    `gorm:"column:status;size:20;default:pending" json:"status"`
	Percentage float64   `gorm:"column:percentage;type:decimal(5,2);default:0.00" json:"percentage"`
	StageOrder int       `gorm:"column:stage_order;default:0" json:"stage_order"`
	IsDeleted  bool      `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProjectStage) TableName() string {
	return "project_stages"
}

type ProjectStageTask struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StageId   int       `gorm:"column:stage_id;not null;index:idx_stage_task_stage" json:"stage_id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Status    string    `gorm:"column:status;size:20;default:pending" json:"status"`
	TaskOrder int       `gorm:"column:task_order;default:0" json:"task_order"`
	IsDeleted bool      `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProjectStageTask) TableName() string {
	return "project_stage_tasks"
}

type ProjectSubTask struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskId    int       `gorm:"column:task_id;not null;index:idx_sub_task_task" json:"task_id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Status    string    `gorm:"column:status;size:20;default:pending" json:"status"`
	IsDeleted bool      `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProjectSubTask) TableName() string {
	return "project_sub_tasks"
}
