package services

import (
	"testing"
	"time"

	"sitesketch-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func newPartPaymentFixture(t *testing.T, projectId int, totalAmount float64, dueDate *time.Time) (*PartPaymentService, *PaymentStageService, models.Wallet, models.PaymentStage) {
	t.Helper()

	wallet := createTestWallet(t, projectId)
	stage := models.PaymentStage{
		WalletId:      wallet.ID,
		Name:          "Foundation",
		TotalAmount:   totalAmount,
		DueDate:       dueDate,
		Status:        models.StageStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	if err := testDB.Create(&stage).Error; err != nil {
		t.Fatalf("failed to create stage: %v", err)
	}

	walletSvc := NewWalletService(testDB)
	stageSvc := NewPaymentStageService(testDB)
	svc := NewPartPaymentService(testDB, walletSvc, stageSvc, nil)
	return svc, stageSvc, wallet, stage
}

func TestCreatePartPaymentFullAmount(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _, wallet, stage := newPartPaymentFixture(t, 301, 100000, nil)

	res, err := svc.CreatePartPayment(CreatePartPaymentDTO{
		StageId: stage.ID,
		Amount:  100000,
		Method:  "bank_transfer",
	})
	if err != nil {
		t.Fatalf("CreatePartPayment failed: %v", err)
	}
	assert.True(t, res.Success)

	var gotStage models.PaymentStage
	testDB.First(&gotStage, stage.ID)
	assert.Equal(t, 100000.00, gotStage.PaidAmount)
	assert.Equal(t, models.PaymentStatusPaid, gotStage.PaymentStatus)
	assert.Equal(t, models.StageStatusCompleted, gotStage.Status)

	var gotWallet models.Wallet
	testDB.First(&gotWallet, wallet.ID)
	assert.Equal(t, 100000.00, gotWallet.Balance)

	var trx models.Transaction
	testDB.Where("wallet_id = ?", wallet.ID).First(&trx)
	assert.Equal(t, models.TransactionTypeCredit, trx.TransactionType)
	assert.Equal(t, models.TransactionStatusCompleted, trx.Status)
}

func TestCreatePartPaymentOverdueWinsOverPartial(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	svc, stageSvc, _, stage := newPartPaymentFixture(t, 302, 100000, &yesterday)
	stageSvc.Now = func() time.Time { return now }

	_, err := svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 30000})
	if err != nil {
		t.Fatalf("CreatePartPayment failed: %v", err)
	}

	var gotStage models.PaymentStage
	testDB.First(&gotStage, stage.ID)
	assert.Equal(t, 30000.00, gotStage.PaidAmount)
	assert.Equal(t, models.PaymentStatusOverdue, gotStage.PaymentStatus)
}

func TestUpdatePartPaymentAmountDelta(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _, wallet, stage := newPartPaymentFixture(t, 303, 100000, nil)

	res, err := svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 40000})
	if err != nil {
		t.Fatalf("CreatePartPayment failed: %v", err)
	}
	paymentId := res.Data.(map[string]interface{})["id"].(int)

	newAmount := 25000.00
	_, err = svc.UpdatePartPayment(UpdatePartPaymentDTO{PaymentId: paymentId, Amount: &newAmount})
	if err != nil {
		t.Fatalf("UpdatePartPayment failed: %v", err)
	}

	var gotStage models.PaymentStage
	testDB.First(&gotStage, stage.ID)
	assert.Equal(t, 25000.00, gotStage.PaidAmount)
	assert.Equal(t, models.PaymentStatusPartiallyPaid, gotStage.PaymentStatus)

	// The shrink is a debit of the delta.
	var debit models.Transaction
	testDB.Where("wallet_id = ? AND transaction_type = ?", wallet.ID, models.TransactionTypeDebit).First(&debit)
	assert.Equal(t, 15000.00, debit.Amount)
	assert.Equal(t, models.TransactionStatusCompleted, debit.Status)

	var gotWallet models.Wallet
	testDB.First(&gotWallet, wallet.ID)
	assert.Equal(t, 25000.00, gotWallet.Balance)
}

func TestDeletePartPaymentReversesLedger(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _, wallet, stage := newPartPaymentFixture(t, 304, 100000, nil)

	svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 30000})
	res, err := svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 20000})
	if err != nil {
		t.Fatalf("CreatePartPayment failed: %v", err)
	}
	paymentId := res.Data.(map[string]interface{})["id"].(int)

	_, err = svc.DeletePartPayment(paymentId)
	if err != nil {
		t.Fatalf("DeletePartPayment failed: %v", err)
	}

	var gotStage models.PaymentStage
	testDB.First(&gotStage, stage.ID)
	assert.Equal(t, 30000.00, gotStage.PaidAmount)

	var payment models.PartPayment
	testDB.First(&payment, paymentId)
	assert.True(t, payment.IsDeleted)

	var debit models.Transaction
	testDB.Where("wallet_id = ? AND transaction_type = ? AND order_type = ?",
		wallet.ID, models.TransactionTypeDebit, models.OrderTypePaymentReversal).First(&debit)
	assert.Equal(t, 20000.00, debit.Amount)

	var gotWallet models.Wallet
	testDB.First(&gotWallet, wallet.ID)
	assert.Equal(t, 30000.00, gotWallet.Balance)
}

func TestCreatePartPaymentRejectedOnCompletedStage(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _, wallet, stage := newPartPaymentFixture(t, 305, 100000, nil)

	_, err := svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 100000})
	if err != nil {
		t.Fatalf("CreatePartPayment failed: %v", err)
	}

	_, err = svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 5000})
	assert.Error(t, err)

	// No ledger or aggregate change from the rejected attempt.
	var gotStage models.PaymentStage
	testDB.First(&gotStage, stage.ID)
	assert.Equal(t, 100000.00, gotStage.PaidAmount)

	var count int64
	testDB.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreatePartPaymentRejectsNonPositiveAmount(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _, _, stage := newPartPaymentFixture(t, 306, 100000, nil)

	_, err := svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 0})
	assert.Error(t, err)

	_, err = svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: -100})
	assert.Error(t, err)
}

func TestPaidAmountMatchesPartPaymentSum(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _, _, stage := newPartPaymentFixture(t, 307, 200000, nil)

	svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 50000})
	res, _ := svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 30000})
	svc.CreatePartPayment(CreatePartPaymentDTO{StageId: stage.ID, Amount: 20000})

	paymentId := res.Data.(map[string]interface{})["id"].(int)
	newAmount := 45000.00
	svc.UpdatePartPayment(UpdatePartPaymentDTO{PaymentId: paymentId, Amount: &newAmount})
	svc.DeletePartPayment(paymentId)

	var sum float64
	testDB.Model(&models.PartPayment{}).
		Where("stage_id = ? AND is_deleted = ?", stage.ID, false).
		Select("COALESCE(SUM(amount), 0)").Scan(&sum)

	var gotStage models.PaymentStage
	testDB.First(&gotStage, stage.ID)
	assert.Equal(t, sum, gotStage.PaidAmount)
	assert.Equal(t, 70000.00, gotStage.PaidAmount)
}
