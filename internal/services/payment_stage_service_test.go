package services

import (
	"testing"
	"time"

	"sitesketch-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStageStatusPrecedence(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name          string
		paid          float64
		total         float64
		dueDate       *time.Time
		wantStatus    string
		wantPayStatus string
	}{
		{
			name: "fully paid completes the stage",
			paid: 100000, total: 100000,
			wantStatus:    models.StageStatusCompleted,
			wantPayStatus: models.PaymentStatusPaid,
		},
		{
			name: "overpaid still reads as paid",
			paid: 120000, total: 100000,
			wantStatus:    models.StageStatusCompleted,
			wantPayStatus: models.PaymentStatusPaid,
		},
		{
			name: "overdue wins over partially paid",
			paid: 30000, total: 100000, dueDate: &yesterday,
			wantStatus:    models.StageStatusPending,
			wantPayStatus: models.PaymentStatusOverdue,
		},
		{
			name: "overdue wins over unpaid",
			paid: 0, total: 100000, dueDate: &yesterday,
			wantStatus:    models.StageStatusPending,
			wantPayStatus: models.PaymentStatusOverdue,
		},
		{
			name: "paid beats overdue",
			paid: 100000, total: 100000, dueDate: &yesterday,
			wantStatus:    models.StageStatusCompleted,
			wantPayStatus: models.PaymentStatusPaid,
		},
		{
			name: "partial payment before due date",
			paid: 30000, total: 100000, dueDate: &tomorrow,
			wantStatus:    models.StageStatusPending,
			wantPayStatus: models.PaymentStatusPartiallyPaid,
		},
		{
			name: "no payments yet",
			paid: 0, total: 100000,
			wantStatus:    models.StageStatusPending,
			wantPayStatus: models.PaymentStatusUnpaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payStatus := DeriveStageStatus(tt.paid, tt.total, tt.dueDate,
				models.StageStatusPending, models.PaymentStatusUnpaid, now)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantPayStatus, payStatus)
		})
	}
}

func TestDeriveStageStatusZeroTotalLeavesFieldsUnchanged(t *testing.T) {
	now := time.Now()
	status, payStatus := DeriveStageStatus(0, 0, nil,
		models.StageStatusUpcoming, models.PaymentStatusUnpaid, now)
	assert.Equal(t, models.StageStatusUpcoming, status)
	assert.Equal(t, models.PaymentStatusUnpaid, payStatus)
}

func TestDeriveStageStatusIdempotent(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	status1, pay1 := DeriveStageStatus(30000, 100000, &yesterday,
		models.StageStatusPending, models.PaymentStatusUnpaid, now)
	status2, pay2 := DeriveStageStatus(30000, 100000, &yesterday, status1, pay1, now)

	assert.Equal(t, status1, status2)
	assert.Equal(t, pay1, pay2)
}

func TestUpdateOverduePaymentStages(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPaymentStageService(testDB)
	wallet := createTestWallet(t, 201)

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }
	pastDue := now.AddDate(0, 0, -3)
	futureDue := now.AddDate(0, 0, 3)

	overdue := models.PaymentStage{WalletId: wallet.ID, Name: "Foundation", TotalAmount: 50000, DueDate: &pastDue, Status: models.StageStatusPending, PaymentStatus: models.PaymentStatusUnpaid}
	current := models.PaymentStage{WalletId: wallet.ID, Name: "Framing", TotalAmount: 50000, DueDate: &futureDue, Status: models.StageStatusPending, PaymentStatus: models.PaymentStatusUnpaid}
	paid := models.PaymentStage{WalletId: wallet.ID, Name: "Roofing", TotalAmount: 50000, PaidAmount: 50000, DueDate: &pastDue, Status: models.StageStatusCompleted, PaymentStatus: models.PaymentStatusPaid}
	testDB.Create(&overdue)
	testDB.Create(&current)
	testDB.Create(&paid)

	count, err := svc.UpdateOverduePaymentStages()
	if err != nil {
		t.Fatalf("UpdateOverduePaymentStages failed: %v", err)
	}
	assert.Equal(t, int64(1), count)

	var got models.PaymentStage
	testDB.First(&got, overdue.ID)
	assert.Equal(t, models.PaymentStatusOverdue, got.PaymentStatus)

	testDB.First(&got, current.ID)
	assert.Equal(t, models.PaymentStatusUnpaid, got.PaymentStatus)

	testDB.First(&got, paid.ID)
	assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)

	// Sweep is idempotent.
	count, err = svc.UpdateOverduePaymentStages()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRecomputeStageStatusAfterTotalChange(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPaymentStageService(testDB)
	wallet := createTestWallet(t, 202)

	stage := models.PaymentStage{WalletId: wallet.ID, Name: "Plumbing", TotalAmount: 40000, PaidAmount: 40000, Status: models.StageStatusInProgress, PaymentStatus: models.PaymentStatusPartiallyPaid}
	testDB.Create(&stage)

	err := svc.RecomputeStageStatus(stage.ID)
	assert.Nil(t, err)

	var got models.PaymentStage
	testDB.First(&got, stage.ID)
	assert.Equal(t, models.StageStatusCompleted, got.Status)
	assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)
}
