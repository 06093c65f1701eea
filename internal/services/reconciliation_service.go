package services

import (
	"log"

	"sitesketch-service/internal/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconciliationService rebuilds the incrementally-tracked aggregates from
// their source records. Paid amounts and wallet balances are maintained
// inline on every mutation; this is the recovery path for drift left by a
// crash between writes.
type ReconciliationService struct {
	DB     *gorm.DB
	Stages *PaymentStageService
}

func NewReconciliationService(db *gorm.DB, stages *PaymentStageService) *ReconciliationService {
	return &ReconciliationService{DB: db, Stages: stages}
}

// RebuildStagePaidAmounts recomputes each stage's paid_amount as the sum of
// its non-deleted part payments and repairs any row that disagrees.
func (s *ReconciliationService) RebuildStagePaidAmounts() (int, error) {
	var stages []models.PaymentStage
	if err := s.DB.Where("is_deleted = ?", false).Find(&stages).Error; err != nil {
		return 0, err
	}

	repaired := 0
	for _, stage := range stages {
		var sum float64
		if err := s.DB.Model(&models.PartPayment{}).
			Where("stage_id = ? AND is_deleted = ?", stage.ID, false).
			Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error; err != nil {
			return repaired, err
		}

		if sum == stage.PaidAmount {
			continue
		}

		log.Printf("Stage %d paid_amount drift: recorded %.2f, part payments sum %.2f", stage.ID, stage.PaidAmount, sum)
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.PaymentStage{}).
				Where("id = ?", stage.ID).
				UpdateColumn("paid_amount", sum).Error; err != nil {
				return err
			}
			stage.PaidAmount = sum
			return s.Stages.recomputeStageStatusTx(tx, &stage)
		})
		if err != nil {
			return repaired, err
		}
		repaired++
	}
	return repaired, nil
}

// RebuildWalletBalances recomputes each wallet balance as completed credits
// minus completed debits and repairs drift.
func (s *ReconciliationService) RebuildWalletBalances() (int, error) {
	var wallets []models.Wallet
	if err := s.DB.Find(&wallets).Error; err != nil {
		return 0, err
	}

	repaired := 0
	for _, wallet := range wallets {
		var balance float64
		if err := s.DB.Model(&models.Transaction{}).
			Where("wallet_id = ? AND status = ?", wallet.ID, models.TransactionStatusCompleted).
			Select("COALESCE(SUM(CASE WHEN transaction_type = 'credit' THEN amount ELSE -amount END), 0)").
			Scan(&balance).Error; err != nil {
			return repaired, err
		}

		if balance == wallet.Balance {
			continue
		}

		log.Printf("Wallet %d balance drift: recorded %.2f, ledger sum %.2f", wallet.ID, wallet.Balance, balance)
		if err := s.DB.Model(&models.Wallet{}).
			Where("id = ?", wallet.ID).
			UpdateColumn("balance", balance).Error; err != nil {
			return repaired, err
		}
		repaired++
	}
	return repaired, nil
}

func (s *ReconciliationService) RunAudit() {
	stages, err := s.RebuildStagePaidAmounts()
	if err != nil {
		log.Printf("Error rebuilding stage paid amounts: %v", err)
	}
	wallets, err := s.RebuildWalletBalances()
	if err != nil {
		log.Printf("Error rebuilding wallet balances: %v", err)
	}
	log.Printf("Reconciliation audit done: %d stages repaired, %d wallets repaired", stages, wallets)
}

// StartScheduler runs the audit nightly at midnight.
func (s *ReconciliationService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Println("Running scheduled reconciliation audit...")
		s.RunAudit()
	})
	if err != nil {
		log.Printf("Error scheduling reconciliation audit: %v", err)
		return
	}
	c.Start()
	log.Println("Reconciliation scheduler started (daily at 00:00)")
}
