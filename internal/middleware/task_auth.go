package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/httputil"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
)

// RequireTaskAccess loads the task from the URL parameter and enforces the
// read rule: assignee, creator, or admin. The loaded task is stored in the
// request context for the handler. Must run after RequireAuth.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httputil.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		user, exists := GetCurrentUser(c)
		if !exists {
			httputil.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("AssignedTo").
			Preload("CreatedBy").
			First(&task, taskID).Error; err != nil {
			httputil.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if !services.CanViewTask(user, &task) {
			httputil.Forbidden(c, "Not authorized to access this task")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetContextTask retrieves the task loaded by RequireTaskAccess
func GetContextTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}

	task, ok := value.(models.Task)
	if !ok {
		return nil, false
	}
	return &task, true
}
