package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskdesk.com/taskdesk/internal/constants"
)

func validTask() TaskInput {
	return TaskInput{
		Title:    "Write report",
		Priority: constants.PriorityMedium,
		Status:   constants.StatusPending,
	}
}

func TestValidateTask_BlankTitleOnlyReportsTitle(t *testing.T) {
	for _, title := range []string{"", " ", "\t\n", "      "} {
		in := validTask()
		in.Title = title

		errs := ValidateTask(in)

		assert.Equal(t, FieldErrors{"title": "Title is required"}, errs, "title %q", title)
	}
}

func TestValidateTask_TitleLengthCountsTrimmedRunes(t *testing.T) {
	in := validTask()
	in.Title = "  " + strings.Repeat("é", 200) + "  "
	assert.True(t, ValidateTask(in).Valid())

	in.Title = strings.Repeat("a", 201)
	assert.Equal(t, "Title cannot exceed 200 characters", ValidateTask(in)["title"])
}

func TestValidateTask_Enums(t *testing.T) {
	for _, p := range constants.Priorities() {
		in := validTask()
		in.Priority = p
		assert.True(t, ValidateTask(in).Valid(), "priority %s", p)
	}
	for _, s := range constants.Statuses() {
		in := validTask()
		in.Status = s
		assert.True(t, ValidateTask(in).Valid(), "status %s", s)
	}

	for _, bad := range []string{"", "low", "CRITICAL", "DONE", " MEDIUM"} {
		in := validTask()
		in.Priority = constants.TaskPriority(bad)
		assert.Equal(t, "Invalid priority level", ValidateTask(in)["priority"], "priority %q", bad)

		in = validTask()
		in.Status = constants.TaskStatus(bad)
		assert.Equal(t, "Invalid status", ValidateTask(in)["status"], "status %q", bad)
	}
}

func TestValidateTask_OptionalFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*TaskInput)
		field string
		want  string
	}{
		{"due date bare", func(in *TaskInput) { in.DueDate = "2025-03-01" }, "", ""},
		{"due date timestamp", func(in *TaskInput) { in.DueDate = "2025-03-01T10:00:00.000Z" }, "", ""},
		{"due date garbage", func(in *TaskInput) { in.DueDate = "next tuesday" }, "dueDate", "Invalid date format"},
		{"due date impossible", func(in *TaskInput) { in.DueDate = "2025-02-30" }, "dueDate", "Invalid date format"},
		{"description too long", func(in *TaskInput) { in.Description = strings.Repeat("x", 1001) }, "description", "Description cannot exceed 1000 characters"},
		{"category too long", func(in *TaskInput) { in.Category = strings.Repeat("x", 101) }, "category", "Category cannot exceed 100 characters"},
		{"tags too long", func(in *TaskInput) { in.Tags = strings.Repeat("x", 501) }, "tags", "Tags cannot exceed 500 characters"},
		{"limits inclusive", func(in *TaskInput) {
			in.Description = strings.Repeat("x", 1000)
			in.Category = strings.Repeat("x", 100)
			in.Tags = strings.Repeat("x", 500)
		}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validTask()
			tt.edit(&in)
			errs := ValidateTask(in)
			if tt.field == "" {
				assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
				return
			}
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.want, errs[tt.field])
		})
	}
}

func TestValidateRegister_PasswordComposition(t *testing.T) {
	base := RegisterInput{Username: "jane_doe", Email: "jane@example.com"}

	base.Password = "abcdef"
	assert.Equal(t, FieldErrors{"password": "Password must contain at least one number"}, ValidateRegister(base))

	base.Password = "123456"
	assert.Equal(t, FieldErrors{"password": "Password must contain at least one letter"}, ValidateRegister(base))

	base.Password = "abc123"
	assert.True(t, ValidateRegister(base).Valid())
}

func TestValidateRegister_FirstRuleWins(t *testing.T) {
	errs := ValidateRegister(RegisterInput{Username: "a!", Email: "nope", Password: "ab"})

	assert.Equal(t, "Username must be at least 3 characters", errs["username"])
	assert.Equal(t, "Invalid email address", errs["email"])
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])
	assert.Equal(t, []string{"email", "password", "username"}, errs.Fields())
}

func TestValidateRegister_UsernameCharset(t *testing.T) {
	in := RegisterInput{Username: "jane doe", Email: "jane@example.com", Password: "abc123"}
	assert.Equal(t, "Username can only contain letters, numbers, hyphens, and underscores", ValidateRegister(in)["username"])

	in.Username = "jane-doe_42"
	assert.True(t, ValidateRegister(in).Valid())
}

func TestValidateLogin(t *testing.T) {
	assert.True(t, ValidateLogin(LoginInput{Username: "jane doe", Password: "abcdef"}).Valid())

	errs := ValidateLogin(LoginInput{Username: strings.Repeat("u", 51), Password: strings.Repeat("p", 101)})
	assert.Equal(t, "Username cannot exceed 50 characters", errs["username"])
	assert.Equal(t, "Password cannot exceed 100 characters", errs["password"])
}

func TestValidateProfile(t *testing.T) {
	assert.True(t, ValidateProfile(ProfileInput{Email: "a@b.io"}).Valid())

	errs := ValidateProfile(ProfileInput{
		FirstName: strings.Repeat("f", 51),
		LastName:  strings.Repeat("l", 51),
		Email:     "",
	})
	assert.Equal(t, FieldErrors{
		"firstName": "First name cannot exceed 50 characters",
		"lastName":  "Last name cannot exceed 50 characters",
		"email":     "Invalid email address",
	}, errs)

	long := strings.Repeat("a", 40) + "@" + strings.Repeat("b", 56) + ".com"
	assert.Equal(t, "Email cannot exceed 100 characters", ValidateProfile(ProfileInput{Email: long})["email"])
}

func TestValidate_Deterministic(t *testing.T) {
	in := TaskInput{Title: " ", Priority: "X", Status: "Y", DueDate: "bad"}
	first := ValidateTask(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ValidateTask(in))
	}
}
