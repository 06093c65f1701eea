package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"sitesketch-service/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ProjectHandler struct {
	Projects *services.ProjectService
	Progress *services.ProgressService
}

func NewProjectHandler(projects *services.ProjectService, progress *services.ProgressService) *ProjectHandler {
	return &ProjectHandler{Projects: projects, Progress: progress}
}

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	ClientName  string     `json:"client_name"`
	ClientEmail string     `json:"client_email" binding:"omitempty,email"`
	Location    string     `json:"location"`
	Currency    string     `json:"currency"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Projects.CreateProject(services.CreateProjectDTO{
		Name:        req.Name,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Location:    req.Location,
		Currency:    req.Currency,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	ClientName  *string    `json:"client_name"`
	ClientEmail *string    `json:"client_email" binding:"omitempty,email"`
	Location    *string    `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Projects.UpdateProject(services.UpdateProjectDTO{
		ProjectId:   id,
		Name:        req.Name,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Projects.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	res, err := h.Projects.ListProjects(services.ListProjectsDTO{
		Status: c.Query("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type CreateProjectStageRequest struct {
	Name       string `json:"name" binding:"required"`
	StageOrder int    `json:"stage_order"`
}

func (h *ProjectHandler) CreateProjectStage(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req CreateProjectStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Progress.CreateProjectStage(services.CreateProjectStageDTO{
		ProjectId:  projectId,
		Name:       req.Name,
		StageOrder: req.StageOrder,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ProjectHandler) ListProjectStages(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Progress.ListProjectStages(services.ListStagesDTO{ProjectId: projectId})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type CreateTaskRequest struct {
	StageId   int    `json:"stage_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	TaskOrder int    `json:"task_order"`
}

func (h *ProjectHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Progress.CreateTask(services.CreateTaskDTO{
		StageId:   req.StageId,
		Name:      req.Name,
		TaskOrder: req.TaskOrder,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type CreateSubTaskRequest struct {
	TaskId int    `json:"task_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

func (h *ProjectHandler) CreateSubTask(c *gin.Context) {
	var req CreateSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Progress.CreateSubTask(services.CreateSubTaskDTO{
		TaskId: req.TaskId,
		Name:   req.Name,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ProjectHandler) UpdateTaskStatus(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Progress.UpdateTaskStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProjectHandler) UpdateSubTaskStatus(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Progress.UpdateSubTaskStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProjectHandler) DeleteTask(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Progress.DeleteTask(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProjectHandler) DeleteSubTask(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Progress.DeleteSubTask(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProjectHandler) ListTasks(c *gin.Context) {
	stageId, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Progress.ListTasks(stageId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProjectHandler) ListSubTasks(c *gin.Context) {
	taskId, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Progress.ListSubTasks(taskId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type CreateSiteUpdateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Photos      []string   `json:"photos"`
	UpdateDate  *time.Time `json:"update_date"`
}

func (h *ProjectHandler) CreateSiteUpdate(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req CreateSiteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var photos datatypes.JSON
	if len(req.Photos) > 0 {
		raw, err := json.Marshal(req.Photos)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photos payload"})
			return
		}
		photos = datatypes.JSON(raw)
	}

	res, err := h.Projects.CreateSiteUpdate(services.CreateSiteUpdateDTO{
		ProjectId:   projectId,
		Title:       req.Title,
		Description: req.Description,
		Photos:      photos,
		UpdateDate:  req.UpdateDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ProjectHandler) ListSiteUpdates(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Projects.ListSiteUpdates(services.ListSiteUpdatesDTO{
		ProjectId: projectId,
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
