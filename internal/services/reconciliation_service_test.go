package services

import (
	"testing"

	"sitesketch-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRebuildStagePaidAmountsRepairsDrift(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stageSvc := NewPaymentStageService(testDB)
	svc := NewReconciliationService(testDB, stageSvc)

	wallet := createTestWallet(t, 401)
	stage := models.PaymentStage{
		WalletId:      wallet.ID,
		Name:          "Foundation",
		TotalAmount:   100000,
		PaidAmount:    99999, // drifted
		Status:        models.StageStatusPending,
		PaymentStatus: models.PaymentStatusPartiallyPaid,
	}
	testDB.Create(&stage)

	payments := []models.PartPayment{
		{StageId: stage.ID, Amount: 60000},
		{StageId: stage.ID, Amount: 40000},
		{StageId: stage.ID, Amount: 5000, IsDeleted: true},
	}
	for i := range payments {
		testDB.Create(&payments[i])
	}

	repaired, err := svc.RebuildStagePaidAmounts()
	assert.Nil(t, err)
	assert.Equal(t, 1, repaired)

	var got models.PaymentStage
	testDB.First(&got, stage.ID)
	assert.Equal(t, 100000.00, got.PaidAmount)
	// The repaired amount covers the total, so the status moves too.
	assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)
	assert.Equal(t, models.StageStatusCompleted, got.Status)

	// A second pass finds nothing to fix.
	repaired, err = svc.RebuildStagePaidAmounts()
	assert.Nil(t, err)
	assert.Equal(t, 0, repaired)
}

func TestRebuildWalletBalancesRepairsDrift(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReconciliationService(testDB, NewPaymentStageService(testDB))
	walletSvc := NewWalletService(testDB)

	wallet := createTestWallet(t, 402)
	walletSvc.ApplyTransaction(wallet.ID, 500.00, models.TransactionTypeCredit, models.OrderTypePartPayment, "", "")
	walletSvc.ApplyTransaction(wallet.ID, 200.00, models.TransactionTypeDebit, models.OrderTypePaymentReversal, "", "")

	// Force drift directly.
	testDB.Model(&models.Wallet{}).Where("id = ?", wallet.ID).UpdateColumn("balance", 999.00)

	repaired, err := svc.RebuildWalletBalances()
	assert.Nil(t, err)
	assert.Equal(t, 1, repaired)

	var got models.Wallet
	testDB.First(&got, wallet.ID)
	assert.Equal(t, 300.00, got.Balance)
}

func TestRebuildWalletBalancesIgnoresFailedTransactions(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReconciliationService(testDB, NewPaymentStageService(testDB))
	walletSvc := NewWalletService(testDB)

	wallet := createTestWallet(t, 403)
	walletSvc.ApplyTransaction(wallet.ID, 100.00, models.TransactionTypeCredit, models.OrderTypePartPayment, "", "")

	failed := models.Transaction{
		WalletId:        wallet.ID,
		TransactionNo:   "FAILED1",
		Amount:          900.00,
		TransactionType: models.TransactionTypeCredit,
		OrderType:       models.OrderTypePartPayment,
		Status:          models.TransactionStatusFailed,
	}
	testDB.Create(&failed)

	repaired, err := svc.RebuildWalletBalances()
	assert.Nil(t, err)
	assert.Equal(t, 0, repaired)

	var got models.Wallet
	testDB.First(&got, wallet.ID)
	assert.Equal(t, 100.00, got.Balance)
}
