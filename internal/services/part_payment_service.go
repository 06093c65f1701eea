package services

import (
	"encoding/json"
	"fmt"
	"log"

	"sitesketch-service/internal/models"
	"sitesketch-service/pkg/common"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// TypeAcknowledgementEmail matches the task type registered by the worker.
const TypeAcknowledgementEmail = "acknowledgement-email"

type PartPaymentService struct {
	DB     *gorm.DB
	Wallet *WalletService
	Stages *PaymentStageService
	Client *asynq.Client
}

func NewPartPaymentService(db *gorm.DB, wallet *WalletService, stages *PaymentStageService, client *asynq.Client) *PartPaymentService {
	return &PartPaymentService{DB: db, Wallet: wallet, Stages: stages, Client: client}
}

func (s *PartPaymentService) loadStage(stageId int) (*models.PaymentStage, error) {
	var stage models.PaymentStage
	if err := s.DB.Where("id = ? AND is_deleted = ?", stageId, false).First(&stage).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, common.NewNotFoundError("Payment stage not found")
		}
		return nil, common.NewSomethingWentWrongError("")
	}
	return &stage, nil
}

type CreatePartPaymentDTO struct {
	StageId     int
	Amount      float64
	Method      string
	ReferenceId string
	Note        string
}

// CreatePartPayment records a partial payment against a stage. The wallet
// credit, the ledger finalize, the stage paid-amount increment and the status
// recompute commit in one database transaction so the ledger and the stage
// aggregate cannot diverge. The pending ledger row is written first and is
// flipped to failed if that transaction does not commit.
func (s *PartPaymentService) CreatePartPayment(data CreatePartPaymentDTO) (common.SuccessResponse, error) {
	if data.Amount <= 0 {
		return common.SuccessResponse{}, common.NewBadRequestError("Amount must be greater than zero")
	}

	stage, err := s.loadStage(data.StageId)
	if err != nil {
		return common.SuccessResponse{}, err
	}
	if stage.Status == models.StageStatusCompleted {
		return common.SuccessResponse{}, common.NewAlreadyCompletedError("Payment stage already completed")
	}

	amount := common.RoundAmount(data.Amount)

	referenceId := data.ReferenceId
	if referenceId == "" {
		referenceId = uuid.NewString()
	}

	trx, err := s.Wallet.RecordPendingTransaction(
		stage.WalletId, amount, models.TransactionTypeCredit,
		models.OrderTypePartPayment, referenceId,
		fmt.Sprintf("Part payment towards %s", stage.Name),
	)
	if err != nil {
		return common.SuccessResponse{}, err
	}

	payment := models.PartPayment{
		StageId:     stage.ID,
		Amount:      amount,
		Method:      data.Method,
		ReferenceId: referenceId,
		InvoiceNo:   common.GenerateInvoiceNo(s.Stages.Now()),
		Note:        data.Note,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := s.Wallet.ApplyLedgerEffect(tx, trx); err != nil {
			return err
		}
		return s.adjustStagePaidAmount(tx, stage, amount)
	})
	if err != nil {
		s.Wallet.MarkTransactionFailed(trx)
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"id":         payment.ID,
		"invoice_no": payment.InvoiceNo,
	}, "Part payment recorded"), nil
}

// UpdatePartPaymentDTO is a partial update; nil fields are left untouched.
type UpdatePartPaymentDTO struct {
	PaymentId   int
	Amount      *float64
	Method      *string
	ReferenceId *string
	Note        *string
}

// UpdatePartPayment applies an amount delta through the ledger (credit when
// the amount grows, debit when it shrinks) and adjusts the stage aggregate by
// the same delta. Non-amount fields update independently.
func (s *PartPaymentService) UpdatePartPayment(data UpdatePartPaymentDTO) (common.SuccessResponse, error) {
	var payment models.PartPayment
	if err := s.DB.Where("id = ? AND is_deleted = ?", data.PaymentId, false).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Part payment not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	stage, err := s.loadStage(payment.StageId)
	if err != nil {
		return common.SuccessResponse{}, err
	}

	updates := map[string]interface{}{}
	if data.Method != nil {
		updates["method"] = *data.Method
	}
	if data.ReferenceId != nil {
		updates["reference_id"] = *data.ReferenceId
	}
	if data.Note != nil {
		updates["note"] = *data.Note
	}

	var delta float64
	if data.Amount != nil {
		if *data.Amount <= 0 {
			return common.SuccessResponse{}, common.NewBadRequestError("Amount must be greater than zero")
		}
		newAmount := common.RoundAmount(*data.Amount)
		delta = common.RoundAmount(newAmount - payment.Amount)
		if delta != 0 {
			updates["amount"] = newAmount
		}
	}

	if delta == 0 {
		if len(updates) > 0 {
			if err := s.DB.Model(&models.PartPayment{}).Where("id = ?", payment.ID).Updates(updates).Error; err != nil {
				return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
			}
		}
		return common.NewSuccessResponse(nil, "Part payment updated"), nil
	}

	trxType := models.TransactionTypeCredit
	magnitude := delta
	if delta < 0 {
		trxType = models.TransactionTypeDebit
		magnitude = -delta
	}

	trx, err := s.Wallet.RecordPendingTransaction(
		stage.WalletId, magnitude, trxType,
		models.OrderTypePaymentAdjustment, payment.ReferenceId,
		fmt.Sprintf("Adjustment of part payment %s", payment.InvoiceNo),
	)
	if err != nil {
		return common.SuccessResponse{}, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PartPayment{}).Where("id = ?", payment.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := s.Wallet.ApplyLedgerEffect(tx, trx); err != nil {
			return err
		}
		return s.adjustStagePaidAmount(tx, stage, delta)
	})
	if err != nil {
		s.Wallet.MarkTransactionFailed(trx)
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(nil, "Part payment updated"), nil
}

// DeletePartPayment soft-deletes a part payment, reversing its ledger credit
// with a debit for the full amount and decrementing the stage aggregate.
func (s *PartPaymentService) DeletePartPayment(paymentId int) (common.SuccessResponse, error) {
	var payment models.PartPayment
	if err := s.DB.Where("id = ? AND is_deleted = ?", paymentId, false).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Part payment not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	stage, err := s.loadStage(payment.StageId)
	if err != nil {
		return common.SuccessResponse{}, err
	}

	trx, err := s.Wallet.RecordPendingTransaction(
		stage.WalletId, payment.Amount, models.TransactionTypeDebit,
		models.OrderTypePaymentReversal, payment.ReferenceId,
		fmt.Sprintf("Reversal of part payment %s", payment.InvoiceNo),
	)
	if err != nil {
		return common.SuccessResponse{}, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PartPayment{}).Where("id = ?", payment.ID).UpdateColumn("is_deleted", true).Error; err != nil {
			return err
		}
		if err := s.Wallet.ApplyLedgerEffect(tx, trx); err != nil {
			return err
		}
		return s.adjustStagePaidAmount(tx, stage, -payment.Amount)
	})
	if err != nil {
		s.Wallet.MarkTransactionFailed(trx)
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(nil, "Part payment deleted"), nil
}

// adjustStagePaidAmount moves the stage aggregate by delta with an atomic
// column expression, then re-derives the stage status from the fresh row.
func (s *PartPaymentService) adjustStagePaidAmount(tx *gorm.DB, stage *models.PaymentStage, delta float64) error {
	if err := tx.Model(&models.PaymentStage{}).
		Where("id = ?", stage.ID).
		UpdateColumn("paid_amount", gorm.Expr("paid_amount + ?", delta)).Error; err != nil {
		return err
	}

	if err := tx.Where("id = ?", stage.ID).First(stage).Error; err != nil {
		return err
	}

	return s.Stages.recomputeStageStatusTx(tx, stage)
}

type ListPartPaymentsDTO struct {
	StageId int
	Page    int
	Limit   int
}

func (s *PartPaymentService) ListPartPayments(data ListPartPaymentsDTO) (common.PaginationResult, error) {
	page, limit := common.NormalizePage(data.Page, data.Limit)
	offset := (page - 1) * limit

	query := s.DB.Model(&models.PartPayment{}).
		Where("stage_id = ? AND is_deleted = ?", data.StageId, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	var payments []models.PartPayment
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	return common.PaginateResponse(payments, total, page, limit, "Part payments fetched"), nil
}

// RequestAcknowledgement queues the acknowledgement email for a part payment.
// Dispatch happens in the worker; the ledger path never waits on email.
func (s *PartPaymentService) RequestAcknowledgement(paymentId int) (common.SuccessResponse, error) {
	var payment models.PartPayment
	if err := s.DB.Where("id = ? AND is_deleted = ?", paymentId, false).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Part payment not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	taskData, err := json.Marshal(map[string]interface{}{"part_payment_id": payment.ID})
	if err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	task := asynq.NewTask(TypeAcknowledgementEmail, taskData)
	info, err := s.Client.Enqueue(task, asynq.TaskID(fmt.Sprintf("ack-email:%d", payment.ID)))
	if err != nil {
		log.Printf("Failed to enqueue acknowledgement email for part payment %d: %v", payment.ID, err)
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"task_id": info.ID,
	}, "Acknowledgement queued"), nil
}
