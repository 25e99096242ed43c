package model

import (
	"bytes"
	"encoding/json"
	"time"

	"taskdesk.com/taskdesk/internal/constants"
)

// ID is assigned by the server. It may arrive as a JSON number or string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

type Task struct {
	ID          ID                     `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Priority    constants.TaskPriority `json:"priority"`
	Status      constants.TaskStatus   `json:"status"`
	DueDate     *string                `json:"dueDate,omitempty"`
	Category    string                 `json:"category,omitempty"`
	Tags        string                 `json:"tags,omitempty"`
	CreatedAt   string                 `json:"createdAt,omitempty"`
	UpdatedAt   string                 `json:"updatedAt,omitempty"`
}

// Due returns the parsed due date, if the task has one.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return time.Time{}, false
	}
	due, err := ParseDate(*t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// IsOverdue reports whether the task is past due. It only looks at the
// task's own status.
func (t Task) IsOverdue(now time.Time) bool {
	due, ok := t.Due()
	if !ok {
		return false
	}
	return due.Before(now) && t.Status != constants.StatusCompleted
}

func (t Task) IsCompleted() bool {
	return t.Status == constants.StatusCompleted
}

// Partition splits tasks into active and completed, keeping their order.
func Partition(tasks []Task) (active, completed []Task) {
	active = make([]Task, 0, len(tasks))
	completed = make([]Task, 0)
	for _, t := range tasks {
		if t.IsCompleted() {
			completed = append(completed, t)
			continue
		}
		active = append(active, t)
	}
	return active, completed
}
