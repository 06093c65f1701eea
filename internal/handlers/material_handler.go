package handlers

import (
	"net/http"

	"sitesketch-service/internal/services"

	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	Materials *services.MaterialService
}

func NewMaterialHandler(materials *services.MaterialService) *MaterialHandler {
	return &MaterialHandler{Materials: materials}
}

type SaveCategoryRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name" binding:"required"`
}

func (h *MaterialHandler) SaveCategory(c *gin.Context) {
	var req SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Materials.SaveCategory(services.MaterialCategoryDTO{ID: req.ID, Name: req.Name})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MaterialHandler) ListCategories(c *gin.Context) {
	res, err := h.Materials.ListCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type SaveMaterialRequest struct {
	ID         int     `json:"id"`
	CategoryId int     `json:"category_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Brand      string  `json:"brand"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price"`
}

func (h *MaterialHandler) SaveMaterial(c *gin.Context) {
	var req SaveMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Materials.SaveMaterial(services.MaterialDTO{
		ID:         req.ID,
		CategoryId: req.CategoryId,
		Name:       req.Name,
		Brand:      req.Brand,
		Unit:       req.Unit,
		UnitPrice:  req.UnitPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	res, err := h.Materials.ListMaterials(queryInt(c, "categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Materials.DeleteMaterial(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
