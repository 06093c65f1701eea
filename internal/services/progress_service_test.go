package services

import (
	"testing"

	"sitesketch-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFoldChildStatuses(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"empty leaves parent untouched", nil, ""},
		{"all completed", []string{"completed", "completed"}, models.ProgressStatusCompleted},
		{"any in progress", []string{"pending", "in_progress"}, models.ProgressStatusInProgress},
		{"delayed counts as active", []string{"pending", "delayed"}, models.ProgressStatusInProgress},
		{"mix of completed and pending", []string{"completed", "pending"}, models.ProgressStatusInProgress},
		{"all cancelled", []string{"cancelled", "cancelled"}, models.ProgressStatusCancelled},
		{"all pending", []string{"pending", "pending"}, models.ProgressStatusPending},
		{"completed with cancelled", []string{"completed", "cancelled"}, models.ProgressStatusPending},
		{"single completed", []string{"completed"}, models.ProgressStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldChildStatuses(tt.statuses))
		})
	}
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, float64(0), CompletionPercentage(nil))
	assert.Equal(t, float64(0), CompletionPercentage([]string{"pending", "pending"}))
	assert.Equal(t, float64(50), CompletionPercentage([]string{"completed", "pending"}))
	assert.Equal(t, float64(100), CompletionPercentage([]string{"completed", "completed"}))
	assert.Equal(t, 33.33, CompletionPercentage([]string{"completed", "pending", "pending"}))
}

func TestRollupPropagation(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewProgressService(testDB)

	project := models.Project{Name: "Villa A", Status: models.ProgressStatusPending}
	testDB.Create(&project)

	stage1 := models.ProjectStage{ProjectId: project.ID, Name: "Structure", Status: models.ProgressStatusPending}
	stage2 := models.ProjectStage{ProjectId: project.ID, Name: "Finishing", Status: models.ProgressStatusPending}
	testDB.Create(&stage1)
	testDB.Create(&stage2)

	task := models.ProjectStageTask{StageId: stage1.ID, Name: "Columns", Status: models.ProgressStatusPending}
	testDB.Create(&task)

	sub1 := models.ProjectSubTask{TaskId: task.ID, Name: "Rebar", Status: models.ProgressStatusPending}
	sub2 := models.ProjectSubTask{TaskId: task.ID, Name: "Pour", Status: models.ProgressStatusPending}
	testDB.Create(&sub1)
	testDB.Create(&sub2)

	// Completing every subtask completes the task, which completes the
	// stage (its only task) and lifts the project average.
	_, err := svc.UpdateSubTaskStatus(sub1.ID, models.ProgressStatusCompleted)
	assert.Nil(t, err)
	_, err = svc.UpdateSubTaskStatus(sub2.ID, models.ProgressStatusCompleted)
	assert.Nil(t, err)

	var gotTask models.ProjectStageTask
	testDB.First(&gotTask, task.ID)
	assert.Equal(t, models.ProgressStatusCompleted, gotTask.Status)

	var gotStage models.ProjectStage
	testDB.First(&gotStage, stage1.ID)
	assert.Equal(t, models.ProgressStatusCompleted, gotStage.Status)
	assert.Equal(t, float64(100), gotStage.Percentage)

	// Project average across two stages: (100 + 0) / 2.
	var gotProject models.Project
	testDB.First(&gotProject, project.ID)
	assert.Equal(t, float64(50), gotProject.PercentageOfCompletion)
	assert.Equal(t, models.ProgressStatusInProgress, gotProject.Status)
}

func TestRollupPartialSubtasksMarksTaskInProgress(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewProgressService(testDB)

	project := models.Project{Name: "Villa B", Status: models.ProgressStatusPending}
	testDB.Create(&project)
	stage := models.ProjectStage{ProjectId: project.ID, Name: "Structure", Status: models.ProgressStatusPending}
	testDB.Create(&stage)
	task := models.ProjectStageTask{StageId: stage.ID, Name: "Walls", Status: models.ProgressStatusPending}
	testDB.Create(&task)

	sub1 := models.ProjectSubTask{TaskId: task.ID, Name: "Brickwork", Status: models.ProgressStatusPending}
	sub2 := models.ProjectSubTask{TaskId: task.ID, Name: "Plaster", Status: models.ProgressStatusPending}
	testDB.Create(&sub1)
	testDB.Create(&sub2)

	_, err := svc.UpdateSubTaskStatus(sub1.ID, models.ProgressStatusCompleted)
	assert.Nil(t, err)

	var gotTask models.ProjectStageTask
	testDB.First(&gotTask, task.ID)
	assert.Equal(t, models.ProgressStatusInProgress, gotTask.Status)

	var gotStage models.ProjectStage
	testDB.First(&gotStage, stage.ID)
	assert.Equal(t, models.ProgressStatusInProgress, gotStage.Status)
	assert.Equal(t, float64(0), gotStage.Percentage)
}

func TestUpdateTaskStatusRejectsInvalidValue(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewProgressService(testDB)

	project := models.Project{Name: "Villa C"}
	testDB.Create(&project)
	stage := models.ProjectStage{ProjectId: project.ID, Name: "Structure"}
	testDB.Create(&stage)
	task := models.ProjectStageTask{StageId: stage.ID, Name: "Slab"}
	testDB.Create(&task)

	_, err := svc.UpdateTaskStatus(task.ID, "finished")
	assert.Error(t, err)
}
