package dto

import "taskdesk.com/taskdesk/internal/constants"

// TaskRequestData is the normalized body sent on task create and update.
// Optional fields are null rather than empty strings.
type TaskRequestData struct {
	Title       string                 `json:"title"`
	Description *string                `json:"description"`
	Priority    constants.TaskPriority `json:"priority"`
	Status      constants.TaskStatus   `json:"status"`
	DueDate     *string                `json:"dueDate"`
	Category    *string                `json:"category"`
	Tags        *string                `json:"tags"`
}
