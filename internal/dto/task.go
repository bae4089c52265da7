package dto

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required,min=1,max=100"`
	Description string              `json:"description" binding:"omitempty,max=500"`
	Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time          `json:"due_date"`
	AssignedTo  *uint64             `json:"assigned_to"`
	Tags        []string            `json:"tags"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/:id. Pointer fields
// distinguish "not sent" from zero values.
type UpdateTaskRequest struct {
	Title       *string              `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string              `json:"description" binding:"omitempty,max=500"`
	Status      *models.TaskStatus   `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Priority    *models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time           `json:"due_date"`
	AssignedTo  *uint64              `json:"assigned_to"`
	Tags        *[]string            `json:"tags"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	Tags        []string            `json:"tags"`
	CompletedAt *time.Time          `json:"completed_at"`
	AssignedTo  *UserSummaryDTO     `json:"assigned_to,omitempty"`
	CreatedBy   *UserSummaryDTO     `json:"created_by,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Count int       `json:"count"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Pages int       `json:"pages"`
	Tasks []TaskDTO `json:"tasks"`
}

// TaskStatsDTO represents the aggregated task statistics for a user
type TaskStatsDTO struct {
	TotalTasks      int64              `json:"totalTasks"`
	OverdueTasks    int64              `json:"overdueTasks"`
	StatusBreakdown StatusBreakdownDTO `json:"statusBreakdown"`
}

// StatusBreakdownDTO holds per-status task counts
type StatusBreakdownDTO struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	if task.Tags == nil {
		task.Tags = []string{}
	}

	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Tags:        task.Tags,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include relations if preloaded
	if task.AssignedTo.ID != 0 {
		assignee := ToUserSummaryDTO(task.AssignedTo)
		dto.AssignedTo = &assignee
	}
	if task.CreatedBy.ID != 0 {
		creator := ToUserSummaryDTO(task.CreatedBy)
		dto.CreatedBy = &creator
	}

	return dto
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pages int, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Count: len(items),
		Total: total,
		Page:  page,
		Pages: pages,
		Tasks: items,
	}
}
