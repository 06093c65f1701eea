package services

import (
	"sitesketch-service/internal/models"
	"sitesketch-service/pkg/common"

	"gorm.io/gorm"
)

type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// FoldChildStatuses aggregates child statuses into a parent status. The same
// rule applies at every level of the hierarchy (subtask->task, task->stage,
// stage->project):
//   - all completed                    -> completed
//   - any in_progress or delayed,
//     or a mix of completed+pending    -> in_progress
//   - all cancelled                    -> cancelled
//   - otherwise                        -> pending
//
// An empty child list returns "" so callers leave the parent untouched.
func FoldChildStatuses(statuses []string) string {
	if len(statuses) == 0 {
		return ""
	}

	var completed, pending, cancelled, active int
	for _, st := range statuses {
		switch st {
		case models.ProgressStatusCompleted:
			completed++
		case models.ProgressStatusInProgress, models.ProgressStatusDelayed:
			active++
		case models.ProgressStatusCancelled:
			cancelled++
		default:
			pending++
		}
	}

	switch {
	case completed == len(statuses):
		return models.ProgressStatusCompleted
	case active > 0 || (completed > 0 && pending > 0):
		return models.ProgressStatusInProgress
	case cancelled == len(statuses):
		return models.ProgressStatusCancelled
	default:
		return models.ProgressStatusPending
	}
}

// CompletionPercentage is the share of completed children, 0..100.
func CompletionPercentage(statuses []string) float64 {
	if len(statuses) == 0 {
		return 0
	}
	var completed int
	for _, st := range statuses {
		if st == models.ProgressStatusCompleted {
			completed++
		}
	}
	return common.RoundAmount(100 * float64(completed) / float64(len(statuses)))
}

// RecomputeTaskFromSubtasks folds subtask statuses into the task, then walks
// the rest of the hierarchy upward.
func (s *ProgressService) RecomputeTaskFromSubtasks(taskId int) error {
	var task models.ProjectStageTask
	if err := s.DB.Where("id = ? AND is_deleted = ?", taskId, false).First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.NewNotFoundError("Task not found")
		}
		return common.NewSomethingWentWrongError("")
	}

	var statuses []string
	if err := s.DB.Model(&models.ProjectSubTask{}).
		Where("task_id = ? AND is_deleted = ?", taskId, false).
		Pluck("status", &statuses).Error; err != nil {
		return common.NewSomethingWentWrongError("")
	}

	if folded := FoldChildStatuses(statuses); folded != "" && folded != task.Status {
		if err := s.DB.Model(&models.ProjectStageTask{}).
			Where("id = ?", taskId).
			UpdateColumn("status", folded).Error; err != nil {
			return common.NewSomethingWentWrongError("")
		}
	}

	return s.RecomputeStageFromTasks(task.StageId)
}

// RecomputeStageFromTasks folds task statuses into the stage status and
// recomputes the stage percentage, then recomputes the project.
func (s *ProgressService) RecomputeStageFromTasks(stageId int) error {
	var stage models.ProjectStage
	if err := s.DB.Where("id = ? AND is_deleted = ?", stageId, false).First(&stage).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.NewNotFoundError("Project stage not found")
		}
		return common.NewSomethingWentWrongError("")
	}

	var statuses []string
	if err := s.DB.Model(&models.ProjectStageTask{}).
		Where("stage_id = ? AND is_deleted = ?", stageId, false).
		Pluck("status", &statuses).Error; err != nil {
		return common.NewSomethingWentWrongError("")
	}

	if len(statuses) > 0 {
		updates := map[string]interface{}{
			"percentage": CompletionPercentage(statuses),
		}
		if folded := FoldChildStatuses(statuses); folded != "" {
			updates["status"] = folded
		}
		if err := s.DB.Model(&models.ProjectStage{}).
			Where("id = ?", stageId).
			Updates(updates).Error; err != nil {
			return common.NewSomethingWentWrongError("")
		}
	}

	return s.RecomputeProjectFromStages(stage.ProjectId)
}

// RecomputeProjectFromStages folds stage statuses into the project status and
// averages stage percentages into the project completion figure. The average
// is across stages, not weighted by task count.
func (s *ProgressService) RecomputeProjectFromStages(projectId int) error {
	var stages []models.ProjectStage
	if err := s.DB.Where("project_id = ? AND is_deleted = ?", projectId, false).
		Find(&stages).Error; err != nil {
		return common.NewSomethingWentWrongError("")
	}
	if len(stages) == 0 {
		return nil
	}

	statuses := make([]string, 0, len(stages))
	var sum float64
	for _, st := range stages {
		statuses = append(statuses, st.Status)
		sum += st.Percentage
	}

	updates := map[string]interface{}{
		"percentage_of_completion": common.RoundAmount(sum / float64(len(stages))),
	}
	if folded := FoldChildStatuses(statuses); folded != "" {
		updates["status"] = folded
	}

	if err := s.DB.Model(&models.Project{}).
		Where("id = ?", projectId).
		Updates(updates).Error; err != nil {
		return common.NewSomethingWentWrongError("")
	}
	return nil
}

type CreateProjectStageDTO struct {
	ProjectId  int
	Name       string
	StageOrder int
}

func (s *ProgressService) CreateProjectStage(data CreateProjectStageDTO) (common.SuccessResponse, error) {
	var project models.Project
	if err := s.DB.Where("id = ? AND is_deleted = ?", data.ProjectId, false).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Project not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	stage := models.ProjectStage{
		ProjectId:  data.ProjectId,
		Name:       data.Name,
		Status:     models.ProgressStatusPending,
		StageOrder: data.StageOrder,
	}
	if err := s.DB.Create(&stage).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.RecomputeProjectFromStages(data.ProjectId); err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(stage, "Project stage created"), nil
}

type CreateTaskDTO struct {
	StageId   int
	Name      string
	TaskOrder int
}

func (s *ProgressService) CreateTask(data CreateTaskDTO) (common.SuccessResponse, error) {
	var stage models.ProjectStage
	if err := s.DB.Where("id = ? AND is_deleted = ?", data.StageId, false).First(&stage).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Project stage not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	task := models.ProjectStageTask{
		StageId:   data.StageId,
		Name:      data.Name,
		Status:    models.ProgressStatusPending,
		TaskOrder: data.TaskOrder,
	}
	if err := s.DB.Create(&task).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.RecomputeStageFromTasks(data.StageId); err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(task, "Task created"), nil
}

type CreateSubTaskDTO struct {
	TaskId int
	Name   string
}

func (s *ProgressService) CreateSubTask(data CreateSubTaskDTO) (common.SuccessResponse, error) {
	var task models.ProjectStageTask
	if err := s.DB.Where("id = ? AND is_deleted = ?", data.TaskId, false).First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Task not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	subTask := models.ProjectSubTask{
		TaskId: data.TaskId,
		Name:   data.Name,
		Status: models.ProgressStatusPending,
	}
	if err := s.DB.Create(&subTask).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.RecomputeTaskFromSubtasks(data.TaskId); err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(subTask, "Subtask created"), nil
}

func validProgressStatus(status string) bool {
	switch status {
	case models.ProgressStatusPending, models.ProgressStatusInProgress,
		models.ProgressStatusCompleted, models.ProgressStatusDelayed,
		models.ProgressStatusCancelled:
		return true
	}
	return false
}

// UpdateTaskStatus sets a task's status directly. Tasks with subtasks get
// their status from the fold on the next subtask change; setting it here is
// for leaf tasks tracked without subtasks.
func (s *ProgressService) UpdateTaskStatus(taskId int, status string) (common.SuccessResponse, error) {
	if !validProgressStatus(status) {
		return common.SuccessResponse{}, common.NewBadRequestError("Invalid status value")
	}

	var task models.ProjectStageTask
	if err := s.DB.Where("id = ? AND is_deleted = ?", taskId, false).First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Task not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.DB.Model(&models.ProjectStageTask{}).
		Where("id = ?", taskId).
		UpdateColumn("status", status).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.RecomputeStageFromTasks(task.StageId); err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(nil, "Task status updated"), nil
}

func (s *ProgressService) UpdateSubTaskStatus(subTaskId int, status string) (common.SuccessResponse, error) {
	if !validProgressStatus(status) {
		return common.SuccessResponse{}, common.NewBadRequestError("Invalid status value")
	}

	var subTask models.ProjectSubTask
	if err := s.DB.Where("id = ? AND is_deleted = ?", subTaskId, false).First(&subTask).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Subtask not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.DB.Model(&models.ProjectSubTask{}).
		Where("id = ?", subTaskId).
		UpdateColumn("status", status).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.RecomputeTaskFromSubtasks(subTask.TaskId); err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(nil, "Subtask status updated"), nil
}

func (s *ProgressService) DeleteSubTask(subTaskId int) (common.SuccessResponse, error) {
	var subTask models.ProjectSubTask
	if err := s.DB.Where("id = ? AND is_deleted = ?", subTaskId, false).First(&subTask).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Subtask not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.DB.Model(&models.ProjectSubTask{}).
		Where("id = ?", subTaskId).
		UpdateColumn("is_deleted", true).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.RecomputeTaskFromSubtasks(subTask.TaskId); err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(nil, "Subtask deleted"), nil
}

func (s *ProgressService) DeleteTask(taskId int) (common.SuccessResponse, error) {
	var task models.ProjectStageTask
	if err := s.DB.Where("id = ? AND is_deleted = ?", taskId, false).First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.SuccessResponse{}, common.NewNotFoundError("Task not found")
		}
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.DB.Model(&models.ProjectStageTask{}).
		Where("id = ?", taskId).
		UpdateColumn("is_deleted", true).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}

	if err := s.RecomputeStageFromTasks(task.StageId); err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(nil, "Task deleted"), nil
}

type ListStagesDTO struct {
	ProjectId int
}

func (s *ProgressService) ListProjectStages(data ListStagesDTO) (common.SuccessResponse, error) {
	var stages []models.ProjectStage
	if err := s.DB.Where("project_id = ? AND is_deleted = ?", data.ProjectId, false).
		Order("stage_order ASC, id ASC").Find(&stages).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}
	return common.NewSuccessResponse(stages, "Project stages fetched"), nil
}

func (s *ProgressService) ListTasks(stageId int) (common.SuccessResponse, error) {
	var tasks []models.ProjectStageTask
	if err := s.DB.Where("stage_id = ? AND is_deleted = ?", stageId, false).
		Order("task_order ASC, id ASC").Find(&tasks).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}
	return common.NewSuccessResponse(tasks, "Tasks fetched"), nil
}

func (s *ProgressService) ListSubTasks(taskId int) (common.SuccessResponse, error) {
	var subTasks []models.ProjectSubTask
	if err := s.DB.Where("task_id = ? AND is_deleted = ?", taskId, false).
		Order("id ASC").Find(&subTasks).Error; err != nil {
		return common.SuccessResponse{}, common.NewSomethingWentWrongError("")
	}
	return common.NewSuccessResponse(subTasks, "Subtasks fetched"), nil
}
