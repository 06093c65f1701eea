package models

import (
	"time"
)

type MaterialCategory struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	IsDeleted bool      `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MaterialCategory) TableName() string {
	return "material_categories"
}

type Material struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryId int       `gorm:"column:category_id;not null;index:idx_material_category" json:"category_id"`
	Name       string    `gorm:"column:name;size:255;not null" json:"name"`
	Brand      string    `gorm:"column:brand;size:255" json:"brand"`
	Unit       string    `gorm:"column:unit;size:50" json:"unit"`
	UnitPrice  float64   `gorm:"column:unit_price;type:decimal(20,2);default:0.00" json:"unit_price"`
	IsDeleted  bool      `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Material) TableName() string {
	return "materials"
}
