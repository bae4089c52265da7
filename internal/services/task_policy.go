package services

import "github.com/taskflow/taskflow-api/internal/models"

// Per-task authorization rules, applied after the auth middleware has
// resolved the caller. Read and update are open to the assignee, the
// creator and admins; delete is restricted to the creator and admins.

// CanViewTask reports whether the user may read the task.
func CanViewTask(user *models.User, task *models.Task) bool {
	return user.IsAdmin() || task.AssignedToID == user.ID || task.CreatedByID == user.ID
}

// CanUpdateTask reports whether the user may modify the task.
func CanUpdateTask(user *models.User, task *models.Task) bool {
	return CanViewTask(user, task)
}

// CanDeleteTask reports whether the user may delete the task. Being the
// assignee is not sufficient.
func CanDeleteTask(user *models.User, task *models.Task) bool {
	return user.IsAdmin() || task.CreatedByID == user.ID
}
