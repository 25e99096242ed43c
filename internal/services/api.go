package services

import (
	"context"
	"net/url"

	dto "taskdesk.com/taskdesk/internal/data_models"
	model "taskdesk.com/taskdesk/pkg/models"
)

// TaskAPI is the part of the backend the task board talks to.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	SearchTasks(ctx context.Context, params url.Values) ([]model.Task, error)
	Categories(ctx context.Context) ([]string, error)
	CreateTask(ctx context.Context, req *dto.TaskRequestData) (model.Task, error)
	UpdateTask(ctx context.Context, id model.ID, req *dto.TaskRequestData) (model.Task, error)
	DeleteTask(ctx context.Context, id model.ID) error
	CompleteTask(ctx context.Context, task model.Task) (model.Task, error)
}

type AuthAPI interface {
	Login(ctx context.Context, req dto.LoginRequest) (string, error)
	Register(ctx context.Context, req dto.RegisterRequest) (string, error)
}

type ProfileAPI interface {
	Profile(ctx context.Context) (model.Profile, error)
	UpdateProfile(ctx context.Context, req dto.ProfileUpdateRequest) (model.Profile, error)
}

type StatisticsAPI interface {
	Statistics(ctx context.Context) (model.Statistics, error)
}

// TokenStore receives the token after a successful login or registration.
type TokenStore interface {
	SetToken(ctx context.Context, token string) error
	Logout(ctx context.Context) error
}
