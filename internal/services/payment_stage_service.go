package services

import (
	"log"
	"time"

	"sitesketch-service/internal/models"
	"sitesketch-service/pkg/common"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type PaymentStageService struct {
	DB *gorm.DB
	// Now is the clock used for overdue checks. Tests override it to move
	// stages past their due date deterministically.
	Now func() time.Time
}

func NewPaymentStageService(db *gorm.DB) *PaymentStageService {
	return &PaymentStageService{DB: db, Now: time.Now}
}

// DeriveStageStatus computes (status, paymentStatus) from the stage amounts
// and due date. Rules apply in precedence order, first match wins:
//  1. paid >= total            -> PAID / COMPLETED
//  2. due date passed          -> OVERDUE, status unchanged
//  3. paid > 0                 -> PARTIALLY_PAID, status unchanged
//  4. otherwise                -> UNPAID, status unchanged
//
// A non-positive total is left untouched; there is nothing meaningful to
// derive from it.
func DeriveStageStatus(paid, total float64, dueDate *time.Time, currentStatus, currentPaymentStatus string, now time.Time) (string, string) {
	if total <= 0 {
		return currentStatus, currentPaymentStatus
	}
	if paid >= total {
		return models.StageStatusCompleted, models.PaymentStatusPaid
	}
	if dueDate != nil && dueDate.Before(now) {
		return currentStatus, models.PaymentStatusOverdue
	}
	if paid > 0 {
		return currentStatus, models.PaymentStatusPartiallyPaid
	}
	return currentStatus, models.PaymentStatusUnpaid
}

// recomputeStageStatusTx re-derives and persists the stage status on the
// caller's transaction handle.
func (s *PaymentStageService) recomputeStageStatusTx(tx *gorm.DB, stage *models.PaymentStage) error {
	status, paymentStatus := DeriveStageStatus(
		stage.PaidAmount, stage.TotalAmount, stage.DueDate,
		stage.Status, stage.PaymentStatus, s.Now(),
	)

	if status == stage.Status && paymentStatus == stage.PaymentStatus {
		return nil
	}

	if err := tx.Model(&models.PaymentStage{}).
		Where("id = ?", stage.ID).
		Updates(map[string]interface{}{
			"status":         status,
			"payment_status": paymentStatus,
		}).Error; err != nil {
		return err
	}

	stage.Status = status
	stage.PaymentStatus = paymentStatus
	return nil
}

// RecomputeStageStatus is idempotent and safe to call redundantly after any
// paid/total/due-date change.
func (s *PaymentStageService) RecomputeStageStatus(stageId int) error {
	var stage models.PaymentStage
	if err := s.DB.Where("id = ? AND is_deleted = ?", stageId, false).First(&stage).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.NewNotFoundError("Payment stage not found")
		}
		return common.NewSomethingWentWrongError("")
	}

	if err := s.recomputeStageStatusTx(s.DB, &stage); err != nil {
		return common.NewSomethingWentWrongError("")
	}
	return nil
}

// UpdateOverduePaymentStages bulk-flips stages whose due date has passed and
// that nobody has touched since. Runs on every stage-list fetch and from the
// scheduler as an eventual-consistency correction.
func (s *PaymentStageService) UpdateOverduePaymentStages() (int64, error) {
	res := s.DB.Model(&models.PaymentStage{}).
		Where("is_deleted = ?", false).
		Where("payment_status NOT IN ?", []string{models.PaymentStatusPaid, models.PaymentStatusOverdue}).
		Where("due_date IS NOT NULL AND due_date < ?", s.Now()).
		UpdateColumn("payment_status", models.PaymentStatusOverdue)

	if res.Error != nil {
		return 0, common.NewSomethingWentWrongError("")
	}
	return res.RowsAffected, nil
}

type CreatePaymentStageDTO struct {
	WalletId    int
	Name        string
	Description string
	TotalAmount float64
	DueDate     *time.Time
	StageOrder  int
	FullPayment bool
}

func (s *PaymentStageService) CreatePaymentStage(data CreatePaymentStageDTO) (common.SuccessResponse, error) {
	if data.TotalAmount <= 0 {
		return common.SuccessResponse{}, common.NewBadRequestError("Total amount must be greater than zero")
	}

	var wallet models.Wallet
	if err := s.DB.First(&wallet, data.WalletId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Wallet not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	stage := models.PaymentStage{
		WalletId:      data.WalletId,
		Name:          data.Name,
		Description:   data.Description,
		TotalAmount:   common.RoundAmount(data.TotalAmount),
		DueDate:       data.DueDate,
		Status:        models.StageStatusUpcoming,
		PaymentStatus: models.PaymentStatusUnpaid,
		StageOrder:    data.StageOrder,
		FullPayment:   data.FullPayment,
	}

	if err := s.DB.Create(&stage).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(stage, "Payment stage created"), nil
}

// UpdatePaymentStageDTO is a partial update; nil fields are left untouched.
type UpdatePaymentStageDTO struct {
	StageId     int
	Name        *string
	Description *string
	TotalAmount *float64
	DueDate     *time.Time
	Approved    *bool
	StageOrder  *int
}

func (s *PaymentStageService) UpdatePaymentStage(data UpdatePaymentStageDTO) (common.SuccessResponse, error) {
	var stage models.PaymentStage
	if err := s.DB.Where("id = ? AND is_deleted = ?", data.StageId, false).First(&stage).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Payment stage not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	updates := map[string]interface{}{}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Description != nil {
		updates["description"] = *data.Description
	}
	if data.TotalAmount != nil {
		if *data.TotalAmount <= 0 {
			return common.SuccessResponse{}, common.NewBadRequestError("Total amount must be greater than zero")
		}
		updates["total_amount"] = common.RoundAmount(*data.TotalAmount)
		stage.TotalAmount = common.RoundAmount(*data.TotalAmount)
	}
	if data.DueDate != nil {
		updates["due_date"] = *data.DueDate
		stage.DueDate = data.DueDate
	}
	if data.Approved != nil {
		updates["approved"] = *data.Approved
	}
	if data.StageOrder != nil {
		updates["stage_order"] = *data.StageOrder
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.PaymentStage{}).Where("id = ?", stage.ID).Updates(updates).Error; err != nil {
			return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
		}
	}

	// Total or due date changes can move the derived status.
	if err := s.recomputeStageStatusTx(s.DB, &stage); err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(stage, "Payment stage updated"), nil
}

type ListPaymentStagesDTO struct {
	WalletId int
	Page     int
	Limit    int
}

func (s *PaymentStageService) ListPaymentStages(data ListPaymentStagesDTO) (common.PaginationResult, error) {
	// Opportunistic sweep so listings never show a stale overdue state.
	if _, err := s.UpdateOverduePaymentStages(); err != nil {
		log.Printf("Overdue sweep failed during stage listing: %v", err)
	}

	page, limit := common.NormalizePage(data.Page, data.Limit)
	offset := (page - 1) * limit

	query := s.DB.Model(&models.PaymentStage{}).
		Where("wallet_id = ? AND is_deleted = ?", data.WalletId, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	var stages []models.PaymentStage
	if err := query.Order("stage_order ASC, id ASC").Limit(limit).Offset(offset).Find(&stages).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	return common.PaginateResponse(stages, total, page, limit, "Payment stages fetched"), nil
}

func (s *PaymentStageService) GetPaymentStage(stageId int) (common.SuccessResponse, error) {
	var stage models.PaymentStage
	if err := s.DB.Where("id = ? AND is_deleted = ?", stageId, false).First(&stage).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Payment stage not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	// Inline overdue check; a detail fetch must reflect a passed due date
	// even if no sweep has run since.
	if err := s.recomputeStageStatusTx(s.DB, &stage); err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(stage, "Payment stage fetched"), nil
}

func (s *PaymentStageService) DeletePaymentStage(stageId int) (common.SuccessResponse, error) {
	res := s.DB.Model(&models.PaymentStage{}).
		Where("id = ? AND is_deleted = ?", stageId, false).
		UpdateColumn("is_deleted", true)
	if res.Error != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}
	if res.RowsAffected == 0 {
		return common.SuccessResponse{}, common.NewNotFoundError("Payment stage not found")
	}
	return common.NewSuccessResponse(nil, "Payment stage deleted"), nil
}

// StartScheduler runs the overdue sweep every 10 minutes so stages nobody
// reads still converge to OVERDUE.
func (s *PaymentStageService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("*/10 * * * *", func() {
		count, err := s.UpdateOverduePaymentStages()
		if err != nil {
			log.Printf("Error in overdue payment stage sweep: %v", err)
			return
		}
		if count > 0 {
			log.Printf("Overdue sweep flipped %d payment stages", count)
		}
	})
	if err != nil {
		log.Printf("Error scheduling overdue sweep: %v", err)
		return
	}
	c.Start()
	log.Println("PaymentStage scheduler started (every 10 minutes)")
}
