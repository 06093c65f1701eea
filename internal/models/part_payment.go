package models

import (
	"time"
)

// PartPayment is one partial payment recorded against a payment stage.
// Deletes are soft; a deleted part payment has already had its ledger effect
// reversed by a debit transaction.
type PartPayment struct {
	ID                  int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StageId             int       `gorm:"column:stage_id;not null;index:idx_part_payment_stage" json:"stage_id"`
	Amount              float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Method              string    `gorm:"column:method;size:50" json:"method"`
	ReferenceId         string    `gorm:"column:reference_id;size:255" json:"reference_id"`
	InvoiceNo           string    `gorm:"column:invoice_no;size:100" json:"invoice_no"`
	Note                string    `gorm:"column:note;type:text" json:"note"`
	AcknowledgementSent bool      `gorm:"column:acknowledgement_sent;default:false" json:"acknowledgement_sent"`
	IsDeleted           bool      `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PartPayment) TableName() string {
	return "part_payments"
}
