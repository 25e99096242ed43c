package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"taskdesk.com/taskdesk/internal/filters"
	"taskdesk.com/taskdesk/internal/forms"
	model "taskdesk.com/taskdesk/pkg/models"
)

// ConfirmFunc asks the user to approve a destructive action.
type ConfirmFunc func(prompt string) bool

const DeletePrompt = "Are you sure you want to delete this task?"

// TaskService drives the task board: the rendered list, the filter
// selections and the create/edit form.
type TaskService struct {
	api      TaskAPI
	notifier Notifier
	logger   *log.Logger

	form     *forms.TaskForm
	criteria filters.Criteria

	mu         sync.RWMutex
	tasks      []model.Task
	categories []string

	inFlight inFlight
}

func NewTaskService(api TaskAPI, notifier Notifier, logger *log.Logger) *TaskService {
	return &TaskService{
		api:      api,
		notifier: notifier,
		logger:   logger,
		form:     forms.NewTaskForm(),
	}
}

func (s *TaskService) Form() *forms.TaskForm {
	return s.form
}

func (s *TaskService) Criteria() *filters.Criteria {
	return &s.criteria
}

// Tasks returns a copy of the rendered list.
func (s *TaskService) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *TaskService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

func (s *TaskService) Task(id model.ID) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Partition splits the rendered list into active and completed tasks.
func (s *TaskService) Partition() (active, completed []model.Task) {
	return model.Partition(s.Tasks())
}

func (s *TaskService) Overdue(now time.Time) []model.Task {
	var overdue []model.Task
	for _, t := range s.Tasks() {
		if t.IsOverdue(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

// Busy reports whether a mutation on id is outstanding.
func (s *TaskService) Busy(id model.ID) bool {
	return s.inFlight.busy(id)
}

func (s *TaskService) Load(ctx context.Context) error {
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		s.notifier.Failure("Failed to load tasks", err)
		return err
	}
	s.setTasks(tasks)
	return nil
}

// LoadCategories keeps the previous categories when the request fails.
func (s *TaskService) LoadCategories(ctx context.Context) error {
	categories, err := s.api.Categories(ctx)
	if err != nil {
		s.logger.Warn("failed to load categories", "err", err)
		return err
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return nil
}

// Search lists with the current criteria. With no criteria set it issues
// the plain list request.
func (s *TaskService) Search(ctx context.Context) error {
	if s.criteria.IsZero() {
		return s.Load(ctx)
	}

	tasks, err := s.api.SearchTasks(ctx, s.criteria.Params())
	if err != nil {
		s.notifier.Failure("Search failed", err)
		return err
	}
	s.setTasks(tasks)
	return nil
}

// ResetFilters clears the criteria and reloads. The criteria are not
// guarded, so do not call it while another goroutine reads them.
func (s *TaskService) ResetFilters(ctx context.Context) error {
	s.criteria.Reset()
	return s.Load(ctx)
}

// Edit loads task into the form for editing.
func (s *TaskService) Edit(task model.Task) {
	s.form.Load(task)
}

func (s *TaskService) CancelEdit() {
	s.form.Reset()
}

// Save creates or updates a task from the form. Invalid input returns the
// field errors without calling the API. After a successful save the form is
// reset and the list and categories are reloaded in that order; after a
// failed one the form keeps its values.
func (s *TaskService) Save(ctx context.Context) error {
	req, ok := s.form.Validate()
	if !ok {
		return s.form.Errors()
	}

	id := s.form.EditingID()
	if id != "" {
		if !s.inFlight.track(id) {
			return ErrRecordBusy
		}
		defer s.inFlight.untrack(id)
	}

	var err error
	if id != "" {
		_, err = s.api.UpdateTask(ctx, id, req)
	} else {
		_, err = s.api.CreateTask(ctx, req)
	}
	if err != nil {
		if id != "" {
			s.notifier.Failure("Failed to update task", err)
		} else {
			s.notifier.Failure("Failed to create task", err)
		}
		return err
	}

	if id != "" {
		s.notifier.Success("Task updated successfully!")
	} else {
		s.notifier.Success("Task created successfully!")
	}

	s.form.Reset()
	s.reload(ctx)
	return nil
}

// MarkComplete resends the task with status COMPLETED.
func (s *TaskService) MarkComplete(ctx context.Context, id model.ID) error {
	task, ok := s.Task(id)
	if !ok {
		return ErrTaskNotLoaded
	}

	if !s.inFlight.track(id) {
		return ErrRecordBusy
	}
	defer s.inFlight.untrack(id)

	if _, err := s.api.CompleteTask(ctx, task); err != nil {
		s.notifier.Failure("Failed to update task", err)
		return err
	}

	s.notifier.Success("Task marked as completed!")
	s.reload(ctx)
	return nil
}

// Delete removes a task after confirm approves. A declined confirmation
// returns ErrCancelled and sends nothing.
func (s *TaskService) Delete(ctx context.Context, id model.ID, confirm ConfirmFunc) error {
	if confirm == nil || !confirm(DeletePrompt) {
		return ErrCancelled
	}

	if !s.inFlight.track(id) {
		return ErrRecordBusy
	}
	defer s.inFlight.untrack(id)

	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.notifier.Failure("Failed to delete task", err)
		return err
	}

	s.mu.Lock()
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
	s.mu.Unlock()

	if s.form.EditingID() == id {
		s.form.Reset()
	}

	s.notifier.Success("Task deleted successfully!")
	s.reload(ctx)
	return nil
}

// reload fetches the unfiltered list, then the categories. Failures are
// already reported and do not undo the mutation.
func (s *TaskService) reload(ctx context.Context) {
	_ = s.Load(ctx)
	_ = s.LoadCategories(ctx)
}

func (s *TaskService) setTasks(tasks []model.Task) {
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
}
