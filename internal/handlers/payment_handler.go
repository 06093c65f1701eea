package handlers

import (
	"net/http"
	"time"

	"sitesketch-service/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Stages       *services.PaymentStageService
	PartPayments *services.PartPaymentService
}

func NewPaymentHandler(stages *services.PaymentStageService, partPayments *services.PartPaymentService) *PaymentHandler {
	return &PaymentHandler{Stages: stages, PartPayments: partPayments}
}

type CreatePaymentStageRequest struct {
	WalletId    int        `json:"wallet_id" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	TotalAmount float64    `json:"total_amount" binding:"required,gt=0"`
	DueDate     *time.Time `json:"due_date"`
	StageOrder  int        `json:"stage_order"`
	FullPayment bool       `json:"full_payment"`
}

func (h *PaymentHandler) CreatePaymentStage(c *gin.Context) {
	var req CreatePaymentStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Stages.CreatePaymentStage(services.CreatePaymentStageDTO{
		WalletId:    req.WalletId,
		Name:        req.Name,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		DueDate:     req.DueDate,
		StageOrder:  req.StageOrder,
		FullPayment: req.FullPayment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type UpdatePaymentStageRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	TotalAmount *float64   `json:"total_amount"`
	DueDate     *time.Time `json:"due_date"`
	Approved    *bool      `json:"approved"`
	StageOrder  *int       `json:"stage_order"`
}

func (h *PaymentHandler) UpdatePaymentStage(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Stages.UpdatePaymentStage(services.UpdatePaymentStageDTO{
		StageId:     id,
		Name:        req.Name,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		DueDate:     req.DueDate,
		Approved:    req.Approved,
		StageOrder:  req.StageOrder,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) ListPaymentStages(c *gin.Context) {
	walletId := queryInt(c, "walletId")
	if walletId <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "walletId is required"})
		return
	}

	res, err := h.Stages.ListPaymentStages(services.ListPaymentStagesDTO{
		WalletId: walletId,
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) GetPaymentStage(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Stages.GetPaymentStage(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) DeletePaymentStage(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Stages.DeletePaymentStage(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type CreatePartPaymentRequest struct {
	StageId     int     `json:"stage_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Method      string  `json:"method"`
	ReferenceId string  `json:"reference_id"`
	Note        string  `json:"note"`
}

func (h *PaymentHandler) CreatePartPayment(c *gin.Context) {
	var req CreatePartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.PartPayments.CreatePartPayment(services.CreatePartPaymentDTO{
		StageId:     req.StageId,
		Amount:      req.Amount,
		Method:      req.Method,
		ReferenceId: req.ReferenceId,
		Note:        req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type UpdatePartPaymentRequest struct {
	Amount      *float64 `json:"amount"`
	Method      *string  `json:"method"`
	ReferenceId *string  `json:"reference_id"`
	Note        *string  `json:"note"`
}

func (h *PaymentHandler) UpdatePartPayment(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req UpdatePartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.PartPayments.UpdatePartPayment(services.UpdatePartPaymentDTO{
		PaymentId:   id,
		Amount:      req.Amount,
		Method:      req.Method,
		ReferenceId: req.ReferenceId,
		Note:        req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) DeletePartPayment(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.PartPayments.DeletePartPayment(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) ListPartPayments(c *gin.Context) {
	stageId := queryInt(c, "stageId")
	if stageId <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stageId is required"})
		return
	}

	res, err := h.PartPayments.ListPartPayments(services.ListPartPaymentsDTO{
		StageId: stageId,
		Page:    queryInt(c, "page"),
		Limit:   queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) AcknowledgePartPayment(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.PartPayments.RequestAcknowledgement(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, res)
}
