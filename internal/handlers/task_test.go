package handlers

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskflow/taskflow-api/internal/models"
)

func TestTaskHandler_CreateTask(t *testing.T) {
	env := setupTestEnv(t, nil)
	ann, token := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")

	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title": "Write spec",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	require.Equal(t, "Write spec", data["title"])
	require.Equal(t, "pending", data["status"])
	require.Equal(t, "medium", data["priority"])
	require.Nil(t, data["completed_at"])

	// Omitted tags come back as an empty array, not null
	require.NotNil(t, data["tags"])
	require.Len(t, data["tags"], 0)

	// Omitted assignee defaults to the creator
	assignee := data["assigned_to"].(map[string]any)
	require.Equal(t, float64(ann.ID), assignee["id"])
	creator := data["created_by"].(map[string]any)
	require.Equal(t, float64(ann.ID), creator["id"])
}

func TestTaskHandler_CreateTaskWithAssignee(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")
	bob, _ := env.registerUser(t, "Bob", "bob@x.com", "secret1", "")

	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":       "Review PR",
		"assigned_to": bob.ID,
		"priority":    "high",
		"tags":        []string{"review", "urgent"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assignee := data["assigned_to"].(map[string]any)
	require.Equal(t, float64(bob.ID), assignee["id"])
	require.Equal(t, "high", data["priority"])
	require.Len(t, data["tags"], 2)
}

func TestTaskHandler_CreateTaskUnknownAssignee(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")

	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":       "Orphan task",
		"assigned_to": 9999,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "assigned user not found", decodeBody(t, w)["message"])
}

func TestTaskHandler_CreateTaskValidation(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")

	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"description": "a task without a title",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "Validation failed", body["message"])
	require.NotEmpty(t, body["errors"])
}

func TestTaskHandler_UpdateTaskCompletion(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")

	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title": "Write spec",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["data"].(map[string]any)
	taskID := created["id"].(float64)

	// Completing the task stamps completed_at
	w = env.request(t, http.MethodPut, "/api/tasks/"+itoa(taskID), token, map[string]any{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)["data"].(map[string]any)
	require.Equal(t, "completed", updated["status"])
	require.NotNil(t, updated["completed_at"])

	// The pending list no longer contains it
	w = env.request(t, http.MethodGet, "/api/tasks?status=pending", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, float64(0), body["count"])

	// Moving back out of completed clears completed_at
	w = env.request(t, http.MethodPut, "/api/tasks/"+itoa(taskID), token, map[string]any{
		"status": "in-progress",
	})
	require.Equal(t, http.StatusOK, w.Code)
	reopened := decodeBody(t, w)["data"].(map[string]any)
	require.Equal(t, "in-progress", reopened["status"])
	require.Nil(t, reopened["completed_at"])
}

func TestTaskHandler_ListScopedToAssignee(t *testing.T) {
	env := setupTestEnv(t, nil)
	ann, annToken := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")
	_, bobToken := env.registerUser(t, "Bob", "bob@x.com", "secret1", "")

	for _, title := range []string{"one", "two", "three"} {
		w := env.request(t, http.MethodPost, "/api/tasks", annToken, map[string]any{"title": title})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := env.request(t, http.MethodPost, "/api/tasks", bobToken, map[string]any{"title": "bob's task"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks", annToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, float64(3), body["total"])

	tasks := body["data"].([]any)
	require.Len(t, tasks, 3)
	for _, raw := range tasks {
		task := raw.(map[string]any)
		assignee := task["assigned_to"].(map[string]any)
		require.Equal(t, float64(ann.ID), assignee["id"])
	}
}

func TestTaskHandler_ListFiltersAndPagination(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")

	titles := []string{"a", "b", "c"}
	var ids []float64
	for _, title := range titles {
		w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
			"title":    title,
			"priority": "low",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decodeBody(t, w)["data"].(map[string]any)["id"].(float64))
	}

	// Complete the first task
	w := env.request(t, http.MethodPut, "/api/tasks/"+itoa(ids[0]), token, map[string]any{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks?status=pending", token, nil)
	body := decodeBody(t, w)
	require.Equal(t, float64(2), body["total"])

	w = env.request(t, http.MethodGet, "/api/tasks?priority=low&page=1&limit=2", token, nil)
	body = decodeBody(t, w)
	require.Equal(t, float64(3), body["total"])
	require.Equal(t, float64(2), body["count"])
	require.Equal(t, float64(2), body["pages"])
}

func TestTaskHandler_GetTaskOwnership(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, annToken := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")
	_, bobToken := env.registerUser(t, "Bob", "bob@x.com", "secret1", "")
	_, adminToken := env.registerUser(t, "Root", "root@x.com", "secret1", models.RoleAdmin)

	w := env.request(t, http.MethodPost, "/api/tasks", annToken, map[string]any{"title": "private"})
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decodeBody(t, w)["data"].(map[string]any)["id"].(float64)

	w = env.request(t, http.MethodGet, "/api/tasks/"+itoa(taskID), annToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks/"+itoa(taskID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks/"+itoa(taskID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks/9999", annToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_DeleteRequiresCreatorOrAdmin(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, annToken := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")
	bob, bobToken := env.registerUser(t, "Bob", "bob@x.com", "secret1", "")

	// Ann creates a task assigned to Bob
	w := env.request(t, http.MethodPost, "/api/tasks", annToken, map[string]any{
		"title":       "handoff",
		"assigned_to": bob.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decodeBody(t, w)["data"].(map[string]any)["id"].(float64)

	// The assignee may read and update but not delete
	w = env.request(t, http.MethodDelete, "/api/tasks/"+itoa(taskID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The creator may delete
	w = env.request(t, http.MethodDelete, "/api/tasks/"+itoa(taskID), annToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks/"+itoa(taskID), annToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_AssigneeCanUpdate(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, annToken := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")
	bob, bobToken := env.registerUser(t, "Bob", "bob@x.com", "secret1", "")

	w := env.request(t, http.MethodPost, "/api/tasks", annToken, map[string]any{
		"title":       "handoff",
		"assigned_to": bob.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decodeBody(t, w)["data"].(map[string]any)["id"].(float64)

	w = env.request(t, http.MethodPut, "/api/tasks/"+itoa(taskID), bobToken, map[string]any{
		"status": "in-progress",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	require.Equal(t, "in-progress", data["status"])
}

func TestTaskHandler_UpdateTaskReassign(t *testing.T) {
	env := setupTestEnv(t, nil)
	ann, annToken := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")
	bob, _ := env.registerUser(t, "Bob", "bob@x.com", "secret1", "")

	w := env.request(t, http.MethodPost, "/api/tasks", annToken, map[string]any{"title": "handoff"})
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decodeBody(t, w)["data"].(map[string]any)["id"].(float64)

	w = env.request(t, http.MethodPut, "/api/tasks/"+itoa(taskID), annToken, map[string]any{
		"assigned_to": bob.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assignee := data["assigned_to"].(map[string]any)
	require.Equal(t, float64(bob.ID), assignee["id"])

	// The stored row moved too
	var stored models.Task
	require.NoError(t, env.db.First(&stored, uint64(taskID)).Error)
	require.Equal(t, bob.ID, stored.AssignedToID)
	require.Equal(t, ann.ID, stored.CreatedByID)

	// Reassigning to an unknown user is rejected
	w = env.request(t, http.MethodPut, "/api/tasks/"+itoa(taskID), annToken, map[string]any{
		"assigned_to": 9999,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "assigned user not found", decodeBody(t, w)["message"])
}

func TestTaskHandler_UpdateTaskClearDueDate(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")

	due := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":    "deadline",
		"due_date": due,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["data"].(map[string]any)
	taskID := created["id"].(float64)
	require.NotNil(t, created["due_date"])

	// An update that omits due_date leaves it in place
	w = env.request(t, http.MethodPut, "/api/tasks/"+itoa(taskID), token, map[string]any{
		"priority": "high",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, decodeBody(t, w)["data"].(map[string]any)["due_date"])

	// An explicit null clears it
	w = env.request(t, http.MethodPut, "/api/tasks/"+itoa(taskID), token, map[string]any{
		"due_date": nil,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, decodeBody(t, w)["data"].(map[string]any)["due_date"])
}

func TestTaskHandler_Stats(t *testing.T) {
	env := setupTestEnv(t, nil)
	ann, token := env.registerUser(t, "Ann", "ann@x.com", "secret1", "")

	past := time.Now().Add(-48 * time.Hour)
	tasks := []models.Task{
		{Title: "overdue", Status: models.TaskStatusPending, Priority: models.TaskPriorityMedium, DueDate: &past, AssignedToID: ann.ID, CreatedByID: ann.ID},
		{Title: "doing", Status: models.TaskStatusInProgress, Priority: models.TaskPriorityMedium, AssignedToID: ann.ID, CreatedByID: ann.ID},
		{Title: "done", Status: models.TaskStatusCompleted, Priority: models.TaskPriorityMedium, AssignedToID: ann.ID, CreatedByID: ann.ID},
		{Title: "done earlier", Status: models.TaskStatusCompleted, Priority: models.TaskPriorityMedium, DueDate: &past, AssignedToID: ann.ID, CreatedByID: ann.ID},
	}
	for i := range tasks {
		require.NoError(t, env.db.Create(&tasks[i]).Error)
	}

	w := env.request(t, http.MethodGet, "/api/tasks/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]any)
	require.Equal(t, float64(4), data["totalTasks"])
	// Past-due completed tasks do not count as overdue
	require.Equal(t, float64(1), data["overdueTasks"])

	breakdown := data["statusBreakdown"].(map[string]any)
	require.Equal(t, float64(1), breakdown["pending"])
	require.Equal(t, float64(1), breakdown["in_progress"])
	require.Equal(t, float64(2), breakdown["completed"])
}

func itoa(id float64) string {
	return strconv.Itoa(int(id))
}
