package services

import (
	"time"

	"sitesketch-service/internal/models"
	"sitesketch-service/pkg/common"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectService struct {
	DB *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{DB: db}
}

type CreateProjectDTO struct {
	Name        string
	ClientName  string
	ClientEmail string
	Location    string
	Currency    string
	StartDate   *time.Time
	EndDate     *time.Time
}

// CreateProject creates the project and its wallet together; every project
// has exactly one wallet.
func (s *ProjectService) CreateProject(data CreateProjectDTO) (common.SuccessResponse, error) {
	currency := data.Currency
	if currency == "" {
		currency = "INR"
	}

	project := models.Project{
		Name:        data.Name,
		ClientName:  data.ClientName,
		ClientEmail: data.ClientEmail,
		Location:    data.Location,
		Status:      models.ProgressStatusPending,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		wallet := models.Wallet{
			ProjectId: project.ID,
			Currency:  currency,
		}
		return tx.Create(&wallet).Error
	})
	if err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(project, "Project created"), nil
}

type UpdateProjectDTO struct {
	ProjectId   int
	Name        *string
	ClientName  *string
	ClientEmail *string
	Location    *string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *ProjectService) UpdateProject(data UpdateProjectDTO) (common.SuccessResponse, error) {
	var project models.Project
	if err := s.DB.Where("id = ? AND is_deleted = ?", data.ProjectId, false).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Project not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	updates := map[string]interface{}{}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.ClientName != nil {
		updates["client_name"] = *data.ClientName
	}
	if data.ClientEmail != nil {
		updates["client_email"] = *data.ClientEmail
	}
	if data.Location != nil {
		updates["location"] = *data.Location
	}
	if data.StartDate != nil {
		updates["start_date"] = *data.StartDate
	}
	if data.EndDate != nil {
		updates["end_date"] = *data.EndDate
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.Project{}).Where("id = ?", project.ID).Updates(updates).Error; err != nil {
			return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
		}
	}

	return common.NewSuccessResponse(nil, "Project updated"), nil
}

func (s *ProjectService) GetProject(projectId int) (common.SuccessResponse, error) {
	var project models.Project
	if err := s.DB.Where("id = ? AND is_deleted = ?", projectId, false).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Project not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}
	return common.NewSuccessResponse(project, "Project fetched"), nil
}

type ListProjectsDTO struct {
	Status string
	Page   int
	Limit  int
}

func (s *ProjectService) ListProjects(data ListProjectsDTO) (common.PaginationResult, error) {
	page, limit := common.NormalizePage(data.Page, data.Limit)
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Project{}).Where("is_deleted = ?", false)
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	return common.PaginateResponse(projects, total, page, limit, "Projects fetched"), nil
}

type CreateSiteUpdateDTO struct {
	ProjectId   int
	Title       string
	Description string
	Photos      datatypes.JSON
	UpdateDate  *time.Time
}

func (s *ProjectService) CreateSiteUpdate(data CreateSiteUpdateDTO) (common.SuccessResponse, error) {
	var project models.Project
	if err := s.DB.Where("id = ? AND is_deleted = ?", data.ProjectId, false).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Project not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	updateDate := time.Now()
	if data.UpdateDate != nil {
		updateDate = *data.UpdateDate
	}

	update := models.SiteUpdate{
		ProjectId:   data.ProjectId,
		Title:       data.Title,
		Description: data.Description,
		Photos:      data.Photos,
		UpdateDate:  updateDate,
	}
	if err := s.DB.Create(&update).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	return common.NewSuccessResponse(update, "Site update created"), nil
}

type ListSiteUpdatesDTO struct {
	ProjectId int
	Page      int
	Limit     int
}

func (s *ProjectService) ListSiteUpdates(data ListSiteUpdatesDTO) (common.PaginationResult, error) {
	page, limit := common.NormalizePage(data.Page, data.Limit)
	offset := (page - 1) * limit

	query := s.DB.Model(&models.SiteUpdate{}).
		Where("project_id = ? AND is_deleted = ?", data.ProjectId, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	var updates []models.SiteUpdate
	if err := query.Order("update_date DESC").Limit(limit).Offset(offset).Find(&updates).Error; err != nil {
		return common.PaginationResult{}, common.NewSomethingWentWrongError("")
	}

	return common.PaginateResponse(updates, total, page, limit, "Site updates fetched"), nil
}
