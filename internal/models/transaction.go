package models

import (
	"time"
)

const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"

	OrderTypePartPayment       = "part_payment"
	OrderTypePaymentAdjustment = "payment_adjustment"
	OrderTypePaymentReversal   = "payment_reversal"
)

// Transaction is one immutable credit/debit applied to a wallet. Rows are
// created pending and finalized to completed or failed; corrections are new
// transactions, never edits. Amount is a positive magnitude, direction is
// carried by TransactionType.
type Transaction struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	WalletId        int       `gorm:"column:wallet_id;not null;index:idx_trx_wallet" json:"wallet_id"`
	TransactionNo   string    `gorm:"column:transaction_no;size:255;not null;index" json:"transaction_no"`
	Amount          float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	TransactionType string    `gorm:"column:transaction_type;size:50;not null" json:"transaction_type"`
	OrderType       string    `gorm:"column:order_type;size:50" json:"order_type"`
	ReferenceId     string    `gorm:"column:reference_id;size:255" json:"reference_id"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	Balance         float64   `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	Status          string    `gorm:"column:status;size:20;default:pending" json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
