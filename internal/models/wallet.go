package models

import (
	"time"
)

// Wallet is the per-project ledger account. Balance is only ever mutated
// through a Transaction; nothing writes the column directly.
type Wallet struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectId   int       `gorm:"column:project_id;not null;uniqueIndex:idx_wallet_project" json:"project_id"`
	Balance     float64   `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	HoldBalance float64   `gorm:"column:hold_balance;type:decimal(20,2);default:0.00" json:"hold_balance"`
	Currency    string    `gorm:"column:currency;size:10;not null;default:INR" json:"currency"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}
