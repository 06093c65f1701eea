package services

import (
	"log"
	"os"
	"testing"

	"sitesketch-service/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB-backed tests run against the MySQL pointed at by DATABASE_URL and skip
// otherwise.

var testDB *gorm.DB

func setup() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("Skipping DB tests: DATABASE_URL not set")
		return
	}

	var err error
	testDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return
	}

	testDB.AutoMigrate(
		&models.Project{},
		&models.Wallet{},
		&models.Transaction{},
		&models.PaymentStage{},
		&models.PartPayment{},
		&models.ProjectStage{},
		&models.ProjectStageTask{},
		&models.ProjectSubTask{},
	)
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM part_payments")
		testDB.Exec("DELETE FROM payment_stages")
		testDB.Exec("DELETE FROM transactions")
		testDB.Exec("DELETE FROM wallets")
		testDB.Exec("DELETE FROM project_sub_tasks")
		testDB.Exec("DELETE FROM project_stage_tasks")
		testDB.Exec("DELETE FROM project_stages")
		testDB.Exec("DELETE FROM projects")
	}
}

func createTestWallet(t *testing.T, projectId int) models.Wallet {
	t.Helper()
	wallet := models.Wallet{ProjectId: projectId, Currency: "INR"}
	if err := testDB.Create(&wallet).Error; err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	return wallet
}

func TestApplyTransactionCredit(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewWalletService(testDB)
	wallet := createTestWallet(t, 101)

	trx, err := svc.ApplyTransaction(wallet.ID, 1000.00, models.TransactionTypeCredit, models.OrderTypePartPayment, "REF1", "Test credit")
	if err != nil {
		t.Fatalf("ApplyTransaction failed: %v", err)
	}

	assert.Equal(t, models.TransactionStatusCompleted, trx.Status)
	assert.Equal(t, 1000.00, trx.Balance)

	var got models.Wallet
	testDB.First(&got, wallet.ID)
	assert.Equal(t, 1000.00, got.Balance)
}

func TestApplyTransactionDebit(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewWalletService(testDB)
	wallet := createTestWallet(t, 102)

	svc.ApplyTransaction(wallet.ID, 500.00, models.TransactionTypeCredit, models.OrderTypePartPayment, "", "")
	trx, err := svc.ApplyTransaction(wallet.ID, 200.00, models.TransactionTypeDebit, models.OrderTypePaymentReversal, "", "")
	if err != nil {
		t.Fatalf("ApplyTransaction debit failed: %v", err)
	}

	assert.Equal(t, models.TransactionStatusCompleted, trx.Status)
	assert.Equal(t, 300.00, trx.Balance)
}

func TestApplyTransactionRejectsNonPositiveAmount(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewWalletService(testDB)
	wallet := createTestWallet(t, 103)

	_, err := svc.ApplyTransaction(wallet.ID, 0, models.TransactionTypeCredit, models.OrderTypePartPayment, "", "")
	assert.Error(t, err)

	_, err = svc.ApplyTransaction(wallet.ID, -50, models.TransactionTypeCredit, models.OrderTypePartPayment, "", "")
	assert.Error(t, err)

	var count int64
	testDB.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestApplyTransactionMissingWalletMarksFailed(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewWalletService(testDB)

	_, err := svc.ApplyTransaction(999999, 100.00, models.TransactionTypeCredit, models.OrderTypePartPayment, "", "")
	assert.Error(t, err)

	// The pending row survives the failure as a failed transaction.
	var trx models.Transaction
	testDB.Where("wallet_id = ?", 999999).First(&trx)
	assert.Equal(t, models.TransactionStatusFailed, trx.Status)
}

func TestWalletBalanceMatchesLedger(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewWalletService(testDB)
	wallet := createTestWallet(t, 104)

	svc.ApplyTransaction(wallet.ID, 400.00, models.TransactionTypeCredit, models.OrderTypePartPayment, "", "")
	svc.ApplyTransaction(wallet.ID, 250.00, models.TransactionTypeCredit, models.OrderTypePartPayment, "", "")
	svc.ApplyTransaction(wallet.ID, 150.00, models.TransactionTypeDebit, models.OrderTypePaymentReversal, "", "")

	var ledgerSum float64
	testDB.Model(&models.Transaction{}).
		Where("wallet_id = ? AND status = ?", wallet.ID, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(CASE WHEN transaction_type = 'credit' THEN amount ELSE -amount END), 0)").
		Scan(&ledgerSum)

	var got models.Wallet
	testDB.First(&got, wallet.ID)

	assert.Equal(t, 500.00, got.Balance)
	assert.Equal(t, got.Balance, ledgerSum)
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}
