package services

import (
	"log"

	"sitesketch-service/internal/models"
	"sitesketch-service/pkg/common"

	"gorm.io/gorm"
)

type WalletService struct {
	DB *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{DB: db}
}

type CreateWalletDTO struct {
	ProjectId int
	Currency  string
}

func (s *WalletService) CreateWallet(data CreateWalletDTO) (common.SuccessResponse, error) {
	currency := data.Currency
	if currency == "" {
		currency = "INR"
	}

	wallet := models.Wallet{
		ProjectId: data.ProjectId,
		Currency:  currency,
	}

	if err := s.DB.Create(&wallet).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(wallet, "Wallet created"), nil
}

func (s *WalletService) GetWalletByProject(projectId int) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.DB.Where("project_id = ?", projectId).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, common.NewNotFoundError("Wallet not found")
		}
		return nil, common.NewSomethingWentWrongError("")
	}
	return &wallet, nil
}

// RecordPendingTransaction inserts the ledger row in its initial pending
// state. The row survives even if the balance mutation later fails, so a
// failed attempt leaves an auditable trace.
func (s *WalletService) RecordPendingTransaction(walletId int, amount float64, trxType, orderType, referenceId, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, common.NewBadRequestError("Amount must be greater than zero")
	}

	trx := models.Transaction{
		WalletId:        walletId,
		TransactionNo:   common.GenerateTrxNo(),
		Amount:          common.RoundAmount(amount),
		TransactionType: trxType,
		OrderType:       orderType,
		ReferenceId:     referenceId,
		Description:     description,
		Status:          models.TransactionStatusPending,
	}

	if err := s.DB.Create(&trx).Error; err != nil {
		return nil, common.NewSomethingWentWrongError("")
	}

	return &trx, nil
}

// ApplyLedgerEffect mutates the wallet balance atomically and finalizes the
// pending transaction to completed, all on the caller's transaction handle so
// the balance, the ledger row and any dependent aggregate commit together.
func (s *WalletService) ApplyLedgerEffect(tx *gorm.DB, trx *models.Transaction) error {
	expr := gorm.Expr("balance + ?", trx.Amount)
	if trx.TransactionType == models.TransactionTypeDebit {
		expr = gorm.Expr("balance - ?", trx.Amount)
	}

	res := tx.Model(&models.Wallet{}).
		Where("id = ?", trx.WalletId).
		UpdateColumn("balance", expr)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	var wallet models.Wallet
	if err := tx.First(&wallet, trx.WalletId).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.Transaction{}).
		Where("id = ?", trx.ID).
		Updates(map[string]interface{}{
			"status":  models.TransactionStatusCompleted,
			"balance": wallet.Balance,
		}).Error; err != nil {
		return err
	}

	trx.Status = models.TransactionStatusCompleted
	trx.Balance = wallet.Balance
	return nil
}

// MarkTransactionFailed finalizes a pending transaction whose balance
// mutation did not commit.
func (s *WalletService) MarkTransactionFailed(trx *models.Transaction) {
	if err := s.DB.Model(&models.Transaction{}).
		Where("id = ?", trx.ID).
		UpdateColumn("status", models.TransactionStatusFailed).Error; err != nil {
		log.Printf("Failed to mark transaction %s failed: %v", trx.TransactionNo, err)
	}
	trx.Status = models.TransactionStatusFailed
}

// ApplyTransaction records a credit or debit against a wallet end to end:
// pending row, atomic balance mutation, completed finalize. On any failure
// the row is marked failed and the error propagates to the caller.
func (s *WalletService) ApplyTransaction(walletId int, amount float64, trxType, orderType, referenceId, description string) (*models.Transaction, error) {
	trx, err := s.RecordPendingTransaction(walletId, amount, trxType, orderType, referenceId, description)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.ApplyLedgerEffect(tx, trx)
	})
	if err != nil {
		s.MarkTransactionFailed(trx)
		if err == gorm.ErrRecordNotFound {
			return nil, common.NewNotFoundError("Wallet not found")
		}
		return nil, common.NewSomethingWentWrongError("")
	}

	return trx, nil
}

type ListTransactionsDTO struct {
	WalletId int
	Status   string
	Page     int
	Limit    int
}

func (s *WalletService) ListTransactions(data ListTransactionsDTO) (common.PaginationResult, error) {
	page, limit := common.NormalizePage(data.Page, data.Limit)
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Transaction{}).Where("wallet_id = ?", data.WalletId)
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	return common.PaginateResponse(transactions, total, page, limit, "Transactions fetched"), nil
}
