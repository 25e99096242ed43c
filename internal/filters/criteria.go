// Package filters composes task search parameters from free text and the
// status, priority and category selections.
package filters

import (
	"net/url"
	"strings"

	"taskdesk.com/taskdesk/internal/constants"
	model "taskdesk.com/taskdesk/pkg/models"
)

const (
	ParamQuery    = "query"
	ParamStatus   = "status"
	ParamPriority = "priority"
	ParamCategory = "category"
)

type Criteria struct {
	Query    string
	Status   constants.TaskStatus
	Priority constants.TaskPriority
	Category string
}

// Params returns only the fields that are set. Absent filters are omitted,
// never sent as empty values.
func (c Criteria) Params() url.Values {
	params := url.Values{}
	add := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			params.Set(key, v)
		}
	}
	add(ParamQuery, c.Query)
	add(ParamStatus, string(c.Status))
	add(ParamPriority, string(c.Priority))
	add(ParamCategory, c.Category)
	return params
}

func (c Criteria) IsZero() bool {
	return len(c.Params()) == 0
}

func (c *Criteria) Reset() {
	*c = Criteria{}
}

// Match applies the criteria to an already loaded task. The query matches
// title or description case-insensitively.
func (c Criteria) Match(t model.Task) bool {
	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if s := strings.TrimSpace(string(c.Status)); s != "" && string(t.Status) != s {
		return false
	}
	if p := strings.TrimSpace(string(c.Priority)); p != "" && string(t.Priority) != p {
		return false
	}
	if cat := strings.TrimSpace(c.Category); cat != "" && t.Category != cat {
		return false
	}
	return true
}

// Apply returns the tasks that match, in order.
func (c Criteria) Apply(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
