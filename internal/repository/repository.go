package repository

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// FindByEmailOrGoogleUID finds a user matching either the email or the
	// Google subject id, for the OAuth login upsert
	FindByEmailOrGoogleUID(email, googleUID string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// List returns all users, newest first
	List() ([]models.User, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination, newest first,
	// returning the page of tasks and the unpaginated total
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// CountByStatus counts a user's assigned tasks grouped by status
	CountByStatus(assignedToID uint64) (map[models.TaskStatus]int64, error)

	// CountByAssignee counts all tasks assigned to a user
	CountByAssignee(assignedToID uint64) (int64, error)

	// CountOverdue counts a user's assigned tasks that are past due and
	// not completed
	CountOverdue(assignedToID uint64, now time.Time) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssignedToID uint64
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	Page         int
	PageSize     int
}
