package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk.com/taskdesk/internal/constants"
	dto "taskdesk.com/taskdesk/internal/data_models"
	"taskdesk.com/taskdesk/internal/forms"
	"taskdesk.com/taskdesk/internal/validators"
	model "taskdesk.com/taskdesk/pkg/models"
)

// mockTaskAPI is an in-memory backend that records every call.
type mockTaskAPI struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int
	calls  []string
	params []url.Values
	fail   map[string]error

	// block, when set, holds mutations until it is closed.
	block   chan struct{}
	entered chan struct{}
}

func newMockTaskAPI(tasks ...model.Task) *mockTaskAPI {
	return &mockTaskAPI{tasks: tasks, nextID: 100, fail: map[string]error{}}
}

func (m *mockTaskAPI) record(call string) error {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	err := m.fail[call]
	m.mu.Unlock()
	return err
}

func (m *mockTaskAPI) wait() {
	if m.entered != nil {
		m.entered <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
}

func (m *mockTaskAPI) count(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *mockTaskAPI) ListTasks(ctx context.Context) ([]model.Task, error) {
	if err := m.record("list"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Task(nil), m.tasks...), nil
}

func (m *mockTaskAPI) SearchTasks(ctx context.Context, params url.Values) ([]model.Task, error) {
	if err := m.record("search"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params = append(m.params, params)
	var out []model.Task
	for _, t := range m.tasks {
		if s := params.Get("status"); s == "" || string(t.Status) == s {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskAPI) Categories(ctx context.Context) ([]string, error) {
	if err := m.record("categories"); err != nil {
		return nil, err
	}
	return []string{"work"}, nil
}

func (m *mockTaskAPI) CreateTask(ctx context.Context, req *dto.TaskRequestData) (model.Task, error) {
	if err := m.record("create"); err != nil {
		return model.Task{}, err
	}
	m.wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	task := model.Task{ID: model.ID(strconv.Itoa(m.nextID)), Title: req.Title, Priority: req.Priority, Status: req.Status, DueDate: req.DueDate}
	m.tasks = append(m.tasks, task)
	return task, nil
}

func (m *mockTaskAPI) UpdateTask(ctx context.Context, id model.ID, req *dto.TaskRequestData) (model.Task, error) {
	if err := m.record("update"); err != nil {
		return model.Task{}, err
	}
	m.wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks[i].Title = req.Title
			m.tasks[i].Priority = req.Priority
			m.tasks[i].Status = req.Status
			m.tasks[i].DueDate = req.DueDate
			return m.tasks[i], nil
		}
	}
	return model.Task{}, errors.New("not found")
}

func (m *mockTaskAPI) DeleteTask(ctx context.Context, id model.ID) error {
	if err := m.record("delete"); err != nil {
		return err
	}
	m.wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (m *mockTaskAPI) CompleteTask(ctx context.Context, task model.Task) (model.Task, error) {
	req := forms.RequestFromTask(task)
	req.Status = constants.StatusCompleted
	return m.UpdateTask(ctx, task.ID, req)
}

type mockNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *mockNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *mockNotifier) Failure(msg string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func strptr(s string) *string { return &s }

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Write report", Priority: constants.PriorityHigh, Status: constants.StatusPending, DueDate: strptr("2024-05-01T00:00:00.000Z"), Category: "work"},
		{ID: "2", Title: "Gym", Priority: constants.PriorityLow, Status: constants.StatusCompleted},
		{ID: "3", Title: "Taxes", Priority: constants.PriorityUrgent, Status: constants.StatusInProgress, DueDate: strptr("2024-04-01T00:00:00.000Z")},
	}
}

func newTaskService(api *mockTaskAPI) (*TaskService, *mockNotifier) {
	n := &mockNotifier{}
	return NewTaskService(api, n, log.New(io.Discard)), n
}

func TestTaskService_SaveInvalidSendsNothing(t *testing.T) {
	api := newMockTaskAPI()
	s, n := newTaskService(api)

	s.Form().Title = "   "
	err := s.Save(context.Background())

	var fieldErrs validators.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, []string{"title"}, fieldErrs.Fields())
	assert.Equal(t, "Title is required", s.Form().FieldError("title"))
	assert.Empty(t, api.calls)
	assert.Empty(t, n.successes)
}

func TestTaskService_SaveCreatesThenReloads(t *testing.T) {
	api := newMockTaskAPI()
	s, n := newTaskService(api)
	ctx := context.Background()

	s.Form().Title = "  New task "
	s.Form().DueDate = "2024-06-01"
	require.NoError(t, s.Save(ctx))

	assert.Equal(t, []string{"create", "list", "categories"}, api.calls)
	assert.Equal(t, []string{"Task created successfully!"}, n.successes)
	assert.Equal(t, "", s.Form().Title)
	assert.False(t, s.Form().IsEditing())

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "New task", tasks[0].Title)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2024-06-01T00:00:00.000Z", *tasks[0].DueDate)
	assert.Equal(t, []string{"work"}, s.Categories())
}

func TestTaskService_SaveFailureKeepsForm(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	api.fail["update"] = errors.New("boom")
	s, n := newTaskService(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	task, ok := s.Task("1")
	require.True(t, ok)
	s.Edit(task)
	s.Form().Title = "Renamed"

	assert.Error(t, s.Save(ctx))
	assert.Equal(t, []string{"Failed to update task"}, n.failures)
	assert.Equal(t, "Renamed", s.Form().Title)
	assert.Equal(t, model.ID("1"), s.Form().EditingID())
	assert.Equal(t, 1, api.count("list"))
}

func TestTaskService_EditRoundTrip(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	s, _ := newTaskService(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	task, _ := s.Task("1")
	s.Edit(task)
	require.NoError(t, s.Save(ctx))

	updated, _ := s.Task("1")
	assert.Equal(t, task.Title, updated.Title)
	assert.Equal(t, task.Priority, updated.Priority)
	assert.Equal(t, task.Status, updated.Status)
	assert.Equal(t, *task.DueDate, *updated.DueDate)
}

func TestTaskService_MarkCompleteMovesTask(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	s, n := newTaskService(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	active, completed := s.Partition()
	require.Len(t, active, 2)
	require.Len(t, completed, 1)

	require.NoError(t, s.MarkComplete(ctx, "3"))

	active, completed = s.Partition()
	assert.Len(t, active, 1)
	assert.Len(t, completed, 2)
	done, _ := s.Task("3")
	assert.Equal(t, constants.StatusCompleted, done.Status)
	assert.Equal(t, "2024-04-01T00:00:00.000Z", *done.DueDate)
	assert.Contains(t, n.successes, "Task marked as completed!")

	assert.ErrorIs(t, s.MarkComplete(ctx, "404"), ErrTaskNotLoaded)
}

func TestTaskService_DeleteRemovesExactlyOne(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	s, _ := newTaskService(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	prompts := 0
	require.NoError(t, s.Delete(ctx, "2", func(prompt string) bool {
		prompts++
		assert.Equal(t, DeletePrompt, prompt)
		return true
	}))

	assert.Equal(t, 1, prompts)
	assert.Equal(t, 1, api.count("delete"))

	var ids []model.ID
	for _, task := range s.Tasks() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []model.ID{"1", "3"}, ids)
}

func TestTaskService_DeleteDeclined(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	s, n := newTaskService(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	assert.ErrorIs(t, s.Delete(ctx, "2", func(string) bool { return false }), ErrCancelled)
	assert.ErrorIs(t, s.Delete(ctx, "2", nil), ErrCancelled)
	assert.Equal(t, 0, api.count("delete"))
	assert.Len(t, s.Tasks(), 3)
	assert.Empty(t, n.successes)
	assert.Empty(t, n.failures)
}

func TestTaskService_DeleteFailureNotifies(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	api.fail["delete"] = errors.New("boom")
	s, n := newTaskService(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	assert.Error(t, s.Delete(ctx, "2", func(string) bool { return true }))
	assert.Equal(t, []string{"Failed to delete task"}, n.failures)
	assert.Len(t, s.Tasks(), 3)
}

func TestTaskService_ResetFiltersMatchesInitialLoad(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	s, _ := newTaskService(api)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	initial := s.Tasks()

	s.Criteria().Status = constants.StatusCompleted
	s.Criteria().Query = "  "
	require.NoError(t, s.Search(ctx))
	require.Len(t, s.Tasks(), 1)
	assert.Equal(t, url.Values{"status": {"COMPLETED"}}, api.params[0])

	require.NoError(t, s.ResetFilters(ctx))
	assert.True(t, s.Criteria().IsZero())
	assert.Equal(t, initial, s.Tasks())
	assert.Equal(t, []string{"list", "search", "list"}, api.calls)
}

func TestTaskService_SearchWithoutCriteriaLists(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	s, _ := newTaskService(api)

	require.NoError(t, s.Search(context.Background()))
	assert.Equal(t, []string{"list"}, api.calls)
}

func TestTaskService_LoadFailureKeepsList(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	s, n := newTaskService(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	api.fail["list"] = errors.New("offline")
	assert.Error(t, s.Load(ctx))
	assert.Len(t, s.Tasks(), 3)
	assert.Equal(t, []string{"Failed to load tasks"}, n.failures)
}

func TestTaskService_Overdue(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	s, _ := newTaskService(api)
	require.NoError(t, s.Load(context.Background()))

	overdue := s.Overdue(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC))
	require.Len(t, overdue, 1)
	assert.Equal(t, model.ID("3"), overdue[0].ID)

	assert.Len(t, s.Overdue(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)), 2)
}

func TestTaskService_InFlightGuard(t *testing.T) {
	api := newMockTaskAPI(sampleTasks()...)
	s, _ := newTaskService(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	api.block = make(chan struct{})
	api.entered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() { done <- s.MarkComplete(ctx, "1") }()
	<-api.entered

	assert.True(t, s.Busy("1"))
	assert.ErrorIs(t, s.MarkComplete(ctx, "1"), ErrRecordBusy)
	assert.ErrorIs(t, s.Delete(ctx, "1", func(string) bool { return true }), ErrRecordBusy)
	assert.False(t, s.Busy("3"))

	close(api.block)
	require.NoError(t, <-done)
	assert.False(t, s.Busy("1"))
	assert.Equal(t, 1, api.count("update"))
	assert.Equal(t, 0, api.count("delete"))
}

func TestTaskService_ConcurrentCreates(t *testing.T) {
	api := newMockTaskAPI()
	ctx := context.Background()

	const concurrentCount = 20
	var wg sync.WaitGroup
	wg.Add(concurrentCount)

	errs := make(chan error, concurrentCount)
	for i := 0; i < concurrentCount; i++ {
		go func(idx int) {
			defer wg.Done()
			s, _ := newTaskService(api)
			s.Form().Title = fmt.Sprintf("Task %d", idx)
			if err := s.Save(ctx); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent creation failed: %v", err)
	}
	assert.Equal(t, concurrentCount, api.count("create"))
}
