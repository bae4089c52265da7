package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"type:varchar(100);not null" json:"title"`
	Description  string         `gorm:"type:varchar(500)" json:"description"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'pending';index:idx_tasks_assignee_status,priority:2" json:"status"`
	Priority     TaskPriority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	DueDate      *time.Time     `gorm:"index" json:"due_date"`
	AssignedToID uint64         `gorm:"not null;index:idx_tasks_assignee_status,priority:1" json:"assigned_to_id"`
	CreatedByID  uint64         `gorm:"not null;index" json:"created_by_id"`
	Tags         []string       `gorm:"serializer:json" json:"tags"`
	CompletedAt  *time.Time     `json:"completed_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedTo User `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	CreatedBy  User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// ApplyStatusTransition moves the task to the given status and keeps
// CompletedAt in sync: entering completed stamps the current time, leaving
// completed clears it. A task already completed keeps its original stamp.
func ApplyStatusTransition(task *Task, status TaskStatus, now time.Time) {
	if status == TaskStatusCompleted {
		if task.Status != TaskStatusCompleted || task.CompletedAt == nil {
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}
	task.Status = status
}

// IsOverdue reports whether the task is past due and not yet completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}
