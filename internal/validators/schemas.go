package validators

import (
	"strings"

	"taskdesk.com/taskdesk/internal/constants"
)

type LoginInput struct {
	Username string `json:"username" validate:"min=3,max=50"`
	Password string `json:"password" validate:"min=6,max=100"`
}

type RegisterInput struct {
	Username string `json:"username" validate:"min=3,max=50,username"`
	Email    string `json:"email" validate:"email,max=100"`
	Password string `json:"password" validate:"min=6,max=100,hasletter,hasdigit"`
}

// TaskInput holds raw task form values. DueDate may be a bare date or a
// full timestamp.
type TaskInput struct {
	Title       string                 `json:"title" validate:"notblank,max=200"`
	Description string                 `json:"description" validate:"max=1000"`
	Priority    constants.TaskPriority `json:"priority" validate:"enum"`
	Status      constants.TaskStatus   `json:"status" validate:"enum"`
	DueDate     string                 `json:"dueDate" validate:"omitempty,date"`
	Category    string                 `json:"category" validate:"max=100"`
	Tags        string                 `json:"tags" validate:"max=500"`
}

type ProfileInput struct {
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
	Email     string `json:"email" validate:"email,max=100"`
}

func ValidateLogin(in LoginInput) FieldErrors {
	return check(&in)
}

func ValidateRegister(in RegisterInput) FieldErrors {
	return check(&in)
}

// ValidateTask checks the title after trimming surrounding whitespace.
func ValidateTask(in TaskInput) FieldErrors {
	in.Title = strings.TrimSpace(in.Title)
	in.DueDate = strings.TrimSpace(in.DueDate)
	return check(&in)
}

func ValidateProfile(in ProfileInput) FieldErrors {
	return check(&in)
}
