package forms

import (
	"strings"

	"taskdesk.com/taskdesk/internal/constants"
	dto "taskdesk.com/taskdesk/internal/data_models"
	"taskdesk.com/taskdesk/internal/validators"
	model "taskdesk.com/taskdesk/pkg/models"
)

// TaskForm is the editable state behind task create and edit.
type TaskForm struct {
	errorBag

	Title       string
	Description string
	Priority    constants.TaskPriority
	Status      constants.TaskStatus
	DueDate     string
	Category    string
	Tags        string

	editingID model.ID
}

func NewTaskForm() *TaskForm {
	f := &TaskForm{}
	f.Reset()
	return f
}

// Reset restores the defaults, clears errors and leaves edit mode.
func (f *TaskForm) Reset() {
	f.Title = ""
	f.Description = ""
	f.Priority = constants.DefaultPriority
	f.Status = constants.DefaultStatus
	f.DueDate = ""
	f.Category = ""
	f.Tags = ""
	f.editingID = ""
	f.clearErrors()
}

// Load copies an existing task into the form and enters edit mode. The due
// date keeps only its date part. Errors are left as they are.
func (f *TaskForm) Load(task model.Task) {
	f.Title = task.Title
	f.Description = task.Description
	f.Priority = task.Priority
	f.Status = task.Status
	f.DueDate = ""
	if task.DueDate != nil {
		f.DueDate = model.DatePart(*task.DueDate)
	}
	f.Category = task.Category
	f.Tags = task.Tags
	f.editingID = task.ID
}

func (f *TaskForm) EditingID() model.ID {
	return f.editingID
}

func (f *TaskForm) IsEditing() bool {
	return f.editingID != ""
}

// Set assigns one field by its JSON name and drops that field's error.
func (f *TaskForm) Set(field, value string) error {
	switch field {
	case "title":
		f.Title = value
	case "description":
		f.Description = value
	case "priority":
		f.Priority = constants.TaskPriority(value)
	case "status":
		f.Status = constants.TaskStatus(value)
	case "dueDate":
		f.DueDate = value
	case "category":
		f.Category = value
	case "tags":
		f.Tags = value
	default:
		return ErrUnknownField
	}
	f.ClearFieldError(field)
	return nil
}

func (f *TaskForm) input() validators.TaskInput {
	return validators.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		Status:      f.Status,
		DueDate:     f.DueDate,
		Category:    f.Category,
		Tags:        f.Tags,
	}
}

// Validate checks the current values. On failure the errors are stored and
// nil is returned; on success the errors are cleared and the normalized
// request is returned.
func (f *TaskForm) Validate() (*dto.TaskRequestData, bool) {
	if errs := validators.ValidateTask(f.input()); !errs.Valid() {
		f.setErrors(errs)
		return nil, false
	}

	req := &dto.TaskRequestData{
		Title:       strings.TrimSpace(f.Title),
		Description: nullable(f.Description),
		Priority:    f.Priority,
		Status:      f.Status,
		Category:    nullable(f.Category),
		Tags:        nullable(f.Tags),
	}

	if due := strings.TrimSpace(f.DueDate); due != "" {
		t, err := model.ParseDate(due)
		if err != nil {
			f.setErrors(validators.FieldErrors{"dueDate": "Invalid date format"})
			return nil, false
		}
		ts := model.FormatTimestamp(t)
		req.DueDate = &ts
	}

	f.clearErrors()
	return req, true
}

// RequestFromTask builds an update body from a stored task, as the form would
// produce it after Load and Validate without edits.
func RequestFromTask(task model.Task) *dto.TaskRequestData {
	req := &dto.TaskRequestData{
		Title:       task.Title,
		Description: nullable(task.Description),
		Priority:    task.Priority,
		Status:      task.Status,
		Category:    nullable(task.Category),
		Tags:        nullable(task.Tags),
	}
	if due, ok := task.Due(); ok {
		ts := model.FormatTimestamp(due)
		req.DueDate = &ts
	}
	return req
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
