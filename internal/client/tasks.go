package client

import (
	"context"
	"net/http"
	"net/url"

	"taskdesk.com/taskdesk/internal/constants"
	dto "taskdesk.com/taskdesk/internal/data_models"
	apperrors "taskdesk.com/taskdesk/internal/errors"
	"taskdesk.com/taskdesk/internal/forms"
	model "taskdesk.com/taskdesk/pkg/models"
)

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "tasks",
		schema: taskListSchema,
		out:    &tasks,
	})
	return tasks, err
}

// SearchTasks sends params as the query string, typically built by
// filters.Criteria.Params.
func (c *Client) SearchTasks(ctx context.Context, params url.Values) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "tasks/search",
		query:  params,
		schema: taskListSchema,
		out:    &tasks,
	})
	return tasks, err
}

// Categories drops null and empty entries.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var raw []string
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "tasks/categories",
		schema: categoriesSchema,
		out:    &raw,
	})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(raw))
	for _, category := range raw {
		if category != "" {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (c *Client) Statistics(ctx context.Context) (model.Statistics, error) {
	var stats model.Statistics
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "tasks/statistics",
		schema: statisticsSchema,
		out:    &stats,
	})
	return stats, err
}

func (c *Client) CreateTask(ctx context.Context, req *dto.TaskRequestData) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "tasks",
		body:   req,
		schema: taskSchema,
		out:    &task,
	})
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, id model.ID, req *dto.TaskRequestData) (model.Task, error) {
	if id == "" {
		return model.Task{}, apperrors.ErrTaskIDRequired
	}

	var task model.Task
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "tasks/" + url.PathEscape(id.String()),
		body:   req,
		schema: taskSchema,
		out:    &task,
	})
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, id model.ID) error {
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "tasks/" + url.PathEscape(id.String()),
	})
}

// CompleteTask resends the task unchanged except for a COMPLETED status.
func (c *Client) CompleteTask(ctx context.Context, task model.Task) (model.Task, error) {
	req := forms.RequestFromTask(task)
	req.Status = constants.StatusCompleted
	return c.UpdateTask(ctx, task.ID, req)
}
