package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/taskflow/taskflow-api/internal/dto"
	"github.com/taskflow/taskflow-api/internal/httputil"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
	"github.com/taskflow/taskflow-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the caller's assigned tasks, optionally filtered by
// status and priority, paginated, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		httputil.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		UserID:   userID,
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		input.Status = &status
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority := models.TaskPriority(priorityStr)
		input.Priority = &priority
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		log.Printf("list tasks failed: %v", err)
		httputil.InternalError(c, "Server error getting tasks")
		return
	}

	resp := dto.ToTaskListResponse(tasks, params.Page, utils.TotalPages(total, params.Limit), total)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   resp.Count,
		"total":   resp.Total,
		"page":    resp.Page,
		"pages":   resp.Pages,
		"data":    resp.Tasks,
	})
}

// GetTaskStats returns the caller's aggregated task counts.
func (h *TaskHandler) GetTaskStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		httputil.Unauthorized(c, "")
		return
	}

	stats, err := h.taskService.GetStats(userID, time.Now())
	if err != nil {
		log.Printf("task stats failed: %v", err)
		httputil.InternalError(c, "Server error getting task statistics")
		return
	}

	httputil.OK(c, http.StatusOK, "", dto.TaskStatsDTO{
		TotalTasks:   stats.Total,
		OverdueTasks: stats.Overdue,
		StatusBreakdown: dto.StatusBreakdownDTO{
			Pending:    stats.Pending,
			InProgress: stats.InProgress,
			Completed:  stats.Completed,
		},
	})
}

// CreateTask creates a task for the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		httputil.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		Tags:        req.Tags,
		CreatorID:   userID,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	httputil.OK(c, http.StatusCreated, "Task created successfully", dto.ToTaskDTO(*task))
}

// GetTask returns one task. Access was already checked by RequireTaskAccess.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, exists := middleware.GetContextTask(c)
	if !exists {
		httputil.InternalError(c, "")
		return
	}

	httputil.OK(c, http.StatusOK, "", dto.ToTaskDTO(*task))
}

// UpdateTask updates one task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, exists := middleware.GetContextTask(c)
	if !exists {
		httputil.InternalError(c, "")
		return
	}

	// The raw body is kept to tell an explicit "due_date": null apart from
	// an omitted field
	raw, err := c.GetRawData()
	if err != nil {
		httputil.BadRequest(c, "Invalid request body")
		return
	}

	var req dto.UpdateTaskRequest
	if err := binding.JSON.BindBody(raw, &req); err != nil {
		httputil.BindError(c, err)
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ClearDueDate: hasNullField(raw, "due_date"),
		AssignedTo:   req.AssignedTo,
		Tags:         req.Tags,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	httputil.OK(c, http.StatusOK, "Task updated successfully", dto.ToTaskDTO(*updated))
}

// hasNullField reports whether the raw JSON body carries the key with an
// explicit null value.
func hasNullField(raw []byte, key string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	value, ok := fields[key]
	return ok && string(value) == "null"
}

// DeleteTask deletes one task. Only the creator or an admin may delete.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		httputil.Unauthorized(c, "")
		return
	}

	task, taskExists := middleware.GetContextTask(c)
	if !taskExists {
		httputil.InternalError(c, "")
		return
	}

	if !services.CanDeleteTask(user, task) {
		httputil.Forbidden(c, "Not authorized to delete this task")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		log.Printf("delete task failed: %v", err)
		httputil.InternalError(c, "Server error deleting task")
		return
	}

	httputil.OK(c, http.StatusOK, "Task deleted successfully", nil)
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAssigneeNotFound):
		httputil.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		httputil.NotFound(c, err.Error())
	default:
		log.Printf("task error: %v", err)
		httputil.InternalError(c, "")
	}
}
