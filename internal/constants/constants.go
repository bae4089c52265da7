package constants

// Context keys set by middleware for downstream handlers.
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "current_user"
	ContextKeyTask   = "task"
)

// Pagination limits for list endpoints.
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const MinPasswordLength = 6
