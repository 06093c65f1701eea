package services

import (
	"fmt"
	"os"

	"sitesketch-service/pkg/common"
)

// NotificationService talks to the mail gateway. It is only reached from the
// worker; nothing on the ledger path blocks on it.
type NotificationService struct {
	BaseUrl string
	ApiKey  string
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		BaseUrl: os.Getenv("MAIL_GATEWAY_URL"),
		ApiKey:  os.Getenv("MAIL_GATEWAY_API_KEY"),
	}
}

type AcknowledgementEmail struct {
	To          string  `json:"to"`
	ProjectName string  `json:"project_name"`
	StageName   string  `json:"stage_name"`
	InvoiceNo   string  `json:"invoice_no"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

func (s *NotificationService) SendAcknowledgement(email AcknowledgementEmail) error {
	if s.BaseUrl == "" {
		return fmt.Errorf("mail gateway not configured")
	}

	payload := map[string]interface{}{
		"to":       email.To,
		"template": "payment-acknowledgement",
		"data": map[string]interface{}{
			"projectName": email.ProjectName,
			"stageName":   email.StageName,
			"invoiceNo":   email.InvoiceNo,
			"amount":      fmt.Sprintf("%.2f", email.Amount),
			"currency":    email.Currency,
		},
	}

	headers := map[string]string{
		"x-api-key": s.ApiKey,
	}

	if _, err := common.Post(fmt.Sprintf("%s/v1/emails", s.BaseUrl), payload, headers); err != nil {
		return err
	}
	return nil
}
