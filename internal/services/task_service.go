package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assigned user not found")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
	AssignedTo  *uint64
	Tags        []string
	CreatorID   uint64
}

// ListTasksInput represents filters for listing a user's own tasks
type ListTasksInput struct {
	UserID   uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Page     int
	PageSize int
}

// UpdateTaskInput represents input for updating a task. Nil means unchanged;
// ClearDueDate unsets the due date.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	AssignedTo   *uint64
	Tags         *[]string
}

// TaskStats holds the aggregated counts for a user's assigned tasks
type TaskStats struct {
	Total      int64
	Overdue    int64
	Pending    int64
	InProgress int64
	Completed  int64
}

// CreateTask creates a task. An explicit assignee must exist; without one
// the task is self-assigned to the creator.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	assignedTo := input.CreatorID
	if input.AssignedTo != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		assignedTo = *input.AssignedTo
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       models.TaskStatusPending,
		Priority:     priority,
		DueDate:      input.DueDate,
		AssignedToID: assignedTo,
		CreatedByID:  input.CreatorID,
		Tags:         input.Tags,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "AssignedTo", "CreatedBy")
}

// ListTasks returns the caller's assigned tasks with optional status and
// priority filters, newest first.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		AssignedToID: input.UserID,
		Status:       input.Status,
		Priority:     input.Priority,
		Page:         input.Page,
		PageSize:     input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its relations loaded.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "AssignedTo", "CreatedBy")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTask applies the provided changes to a task. The row is re-read
// without relations; saving a task carrying preloaded relation structs would
// restore the old assignee foreign key. A status change drives the
// CompletedAt stamp through ApplyStatusTransition.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Tags != nil {
		task.Tags = *input.Tags
	}
	if input.AssignedTo != nil && *input.AssignedTo != task.AssignedToID {
		if _, err := s.userRepo.FindByID(*input.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		task.AssignedToID = *input.AssignedTo
	}
	if input.Status != nil {
		models.ApplyStatusTransition(task, *input.Status, time.Now())
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "AssignedTo", "CreatedBy")
}

// DeleteTask deletes a task.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// GetStats aggregates the user's assigned tasks by status and counts
// overdue tasks.
func (s *TaskService) GetStats(userID uint64, now time.Time) (*TaskStats, error) {
	byStatus, err := s.taskRepo.CountByStatus(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tasks: %w", err)
	}

	total, err := s.taskRepo.CountByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	overdue, err := s.taskRepo.CountOverdue(userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	return &TaskStats{
		Total:      total,
		Overdue:    overdue,
		Pending:    byStatus[models.TaskStatusPending],
		InProgress: byStatus[models.TaskStatusInProgress],
		Completed:  byStatus[models.TaskStatusCompleted],
	}, nil
}
