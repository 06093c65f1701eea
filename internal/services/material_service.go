package services

import (
	"sitesketch-service/internal/models"
	"sitesketch-service/pkg/common"

	"gorm.io/gorm"
)

type MaterialService struct {
	DB *gorm.DB
}

func NewMaterialService(db *gorm.DB) *MaterialService {
	return &MaterialService{DB: db}
}

type MaterialCategoryDTO struct {
	ID   int
	Name string
}

func (s *MaterialService) SaveCategory(data MaterialCategoryDTO) (common.SuccessResponse, error) {
	var category models.MaterialCategory
	if data.ID != 0 {
		if err := s.DB.First(&category, data.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return common.SuccessResponse{}, common.NewNotFoundError("Material category not found")
			}
			return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
		}
	}

	category.Name = data.Name
	if err := s.DB.Save(&category).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(category, "Material category saved"), nil
}

func (s *MaterialService) ListCategories() (common.SuccessResponse, error) {
	var categories []models.MaterialCategory
	if err := s.DB.Where("is_deleted = ?", false).Order("name ASC").Find(&categories).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}
	return common.NewSuccessResponse(categories, "Material categories fetched"), nil
}

type MaterialDTO struct {
	ID         int
	CategoryId int
	Name       string
	Brand      string
	Unit       string
	UnitPrice  float64
}

func (s *MaterialService) SaveMaterial(data MaterialDTO) (common.SuccessResponse, error) {
	if data.UnitPrice < 0 {
		return common.SuccessResponse{}, common.NewBadRequestError("Unit price cannot be negative")
	}

	var material models.Material
	if data.ID != 0 {
		if err := s.DB.First(&material, data.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return common.SuccessResponse{}, common.NewNotFoundError("Material not found")
			}
			return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
		}
	}

	material.CategoryId = data.CategoryId
	material.Name = data.Name
	material.Brand = data.Brand
	material.Unit = data.Unit
	material.UnitPrice = common.RoundAmount(data.UnitPrice)

	if err := s.DB.Save(&material).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(material, "Material saved"), nil
}

func (s *MaterialService) ListMaterials(categoryId int) (common.SuccessResponse, error) {
	query := s.DB.Where("is_deleted = ?", false)
	if categoryId != 0 {
		query = query.Where("category_id = ?", categoryId)
	}

	var materials []models.Material
	if err := query.Order("name ASC").Find(&materials).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}
	return common.NewSuccessResponse(materials, "Materials fetched"), nil
}

func (s *MaterialService) DeleteMaterial(id int) (common.SuccessResponse, error) {
	res := s.DB.Model(&models.Material{}).
		Where("id = ? AND is_deleted = ?", id, false).
		UpdateColumn("is_deleted", true)
	if res.Error != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}
	if res.RowsAffected == 0 {
		return common.SuccessResponse{}, common.NewNotFoundError("Material not found")
	}
	return common.NewSuccessResponse(nil, "Material deleted"), nil
}
