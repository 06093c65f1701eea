package models

import (
	"time"
)

const (
	StageStatusUpcoming   = "upcoming"
	StageStatusPending    = "pending"
	StageStatusInProgress = "in_progress"
	StageStatusCompleted  = "completed"

	PaymentStatusUnpaid        = "unpaid"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusPaid          = "paid"
	PaymentStatusOverdue       = "overdue"
)

// PaymentStage is a billable milestone against a project wallet. PaidAmount
// is always the sum of the stage's non-deleted part payments; Status and
// PaymentStatus are derived from (paid, total, due date).
type PaymentStage struct {
	ID            int        `gorm:"primaryKey;autoIncrement" json:"id"`
	WalletId      int        `gorm:"column:wallet_id;not null;index:idx_stage_wallet" json:"wallet_id"`
	Name          string     `gorm:"column:name;size:255;not null" json:"name"`
	Description   string     `gorm:"column:description;type:text" json:"description"`
	TotalAmount   float64    `gorm:"column:total_amount;type:decimal(20,2);not null" json:"total_amount"`
	PaidAmount    float64    `gorm:"column:paid_amount;type:decimal(20,2);default:0.00" json:"paid_amount"`
	DueDate       *time.Time `gorm:"column:due_date" json:"due_date"`
	Status        string     `gorm:"column:status;size:20;default:upcoming" json:"status"`
	PaymentStatus string     `gorm:"column:payment_status;size:20;default:unpaid" json:"payment_status"`
	Approved      bool       `gorm:"column:approved;default:false" json:"approved"`
	StageOrder    int        `gorm:"column:stage_order;default:0" json:"stage_order"`
	FullPayment   bool       `gorm:"column:full_payment;default:false" json:"full_payment"`
	IsDeleted     bool       `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentStage) TableName() string {
	return "payment_stages"
}
