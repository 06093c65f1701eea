package consumers

import (
	"fmt"
	"log"

	"sitesketch-service/internal/models"
	"sitesketch-service/internal/services"

	"gorm.io/gorm"
)

type NotificationProcessor struct {
	DB       *gorm.DB
	Notifier *services.NotificationService
}

func NewNotificationProcessor(db *gorm.DB, notifier *services.NotificationService) *NotificationProcessor {
	return &NotificationProcessor{DB: db, Notifier: notifier}
}

type AcknowledgementEmailDTO struct {
	PartPaymentId int `json:"part_payment_id"`
}

// ProcessAcknowledgement sends the payment acknowledgement email and marks
// the part payment once delivery succeeds. Returning an error lets asynq
// retry the task.
func (p *NotificationProcessor) ProcessAcknowledgement(data AcknowledgementEmailDTO) error {
	var payment models.PartPayment
	if err := p.DB.Where("id = ? AND is_deleted = ?", data.PartPaymentId, false).First(&payment).Error; err != nil {
		return fmt.Errorf("part payment %d: %w", data.PartPaymentId, err)
	}

	if payment.AcknowledgementSent {
		log.Printf("Acknowledgement for part payment %d already sent, skipping", payment.ID)
		return nil
	}

	var stage models.PaymentStage
	if err := p.DB.First(&stage, payment.StageId).Error; err != nil {
		return fmt.Errorf("payment stage %d: %w", payment.StageId, err)
	}

	var wallet models.Wallet
	if err := p.DB.First(&wallet, stage.WalletId).Error; err != nil {
		return fmt.Errorf("wallet %d: %w", stage.WalletId, err)
	}

	var project models.Project
	if err := p.DB.First(&project, wallet.ProjectId).Error; err != nil {
		return fmt.Errorf("project %d: %w", wallet.ProjectId, err)
	}

	email := services.AcknowledgementEmail{
		To:          project.ClientEmail,
		ProjectName: project.Name,
		StageName:   stage.Name,
		InvoiceNo:   payment.InvoiceNo,
		Amount:      payment.Amount,
		Currency:    wallet.Currency,
	}

	if err := p.Notifier.SendAcknowledgement(email); err != nil {
		return fmt.Errorf("send acknowledgement for part payment %d: %w", payment.ID, err)
	}

	if err := p.DB.Model(&models.PartPayment{}).
		Where("id = ?", payment.ID).
		UpdateColumn("acknowledgement_sent", true).Error; err != nil {
		return err
	}

	log.Printf("Acknowledgement sent for part payment %d (invoice %s)", payment.ID, payment.InvoiceNo)
	return nil
}
