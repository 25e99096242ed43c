package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"taskdesk.com/taskdesk/internal/constants"
	dto "taskdesk.com/taskdesk/internal/data_models"
	apperrors "taskdesk.com/taskdesk/internal/errors"
	middleware "taskdesk.com/taskdesk/internal/http/middlewares"
	repository "taskdesk.com/taskdesk/internal/repositories"
	"taskdesk.com/taskdesk/internal/validators"
	model "taskdesk.com/taskdesk/pkg/models"
)

var errTaskConflict = apperrors.New(http.StatusConflict, "task was modified by another request")

type Handler struct {
	users    *repository.UserRepository
	tasks    *repository.TaskRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *log.Logger
	now      func() time.Time
}

func NewHandler(users *repository.UserRepository, tasks *repository.TaskRepository, secret []byte, logger *log.Logger) *Handler {
	return &Handler{
		users:    users,
		tasks:    tasks,
		secret:   secret,
		tokenTTL: 24 * time.Hour,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *Handler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if errs := validators.ValidateRegister(validators.RegisterInput(req)); !errs.Valid() {
		return validationFailure(errs)
	}

	ctx := c.Request().Context()

	if _, err := h.users.FindByUsername(ctx, req.Username); err == nil {
		return apperrors.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	if _, err := h.users.FindByEmail(ctx, req.Email); err == nil {
		return apperrors.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{Username: req.Username, Email: req.Email, PasswordHash: string(hashed)}
	if err := h.users.Create(ctx, user); err != nil {
		return err
	}

	h.logger.Info("user registered", "username", user.Username)
	return h.respondWithToken(c, user.Username)
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	user, err := h.users.FindByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperrors.ErrInvalidCredentials
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	return h.respondWithToken(c, user.Username)
}

func (h *Handler) respondWithToken(c echo.Context, username string) error {
	now := h.now()
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub": username,
			"iat": now.Unix(),
			"exp": now.Add(h.tokenTTL).Unix(),
		})

	signed, err := token.SignedString(h.secret)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{Token: signed, Username: username})
}

func (h *Handler) ListTasks(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	records, err := h.tasks.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTasks(records))
}

// SearchTasks applies a single filter: a non-blank query wins, then status,
// then priority, then category.
func (h *Handler) SearchTasks(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	query := c.QueryParam("query")
	status := c.QueryParam("status")
	priority := c.QueryParam("priority")
	category := c.QueryParam("category")

	h.logger.Info("search tasks",
		"username", user.Username,
		"query", query,
		"status", status,
		"priority", priority,
		"category", category,
	)

	var records []model.TaskRecord
	switch {
	case strings.TrimSpace(query) != "":
		records, err = h.tasks.Search(ctx, user.ID, query)
	case status != "":
		s := constants.TaskStatus(status)
		if !s.IsValid() {
			return apperrors.New(http.StatusBadRequest, "Invalid status")
		}
		records, err = h.tasks.ListByStatus(ctx, user.ID, s)
	case priority != "":
		p := constants.TaskPriority(priority)
		if !p.IsValid() {
			return apperrors.New(http.StatusBadRequest, "Invalid priority level")
		}
		records, err = h.tasks.ListByPriority(ctx, user.ID, p)
	case category != "":
		records, err = h.tasks.ListByCategory(ctx, user.ID, category)
	default:
		records, err = h.tasks.ListByUser(ctx, user.ID)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTasks(records))
}

func (h *Handler) Statistics(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.tasks.Statistics(c.Request().Context(), user.ID, h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) Categories(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	categories, err := h.tasks.Categories(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateTask(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	record := &model.TaskRecord{UserID: user.ID}
	if err := bindTask(c, record); err != nil {
		return err
	}

	if err := h.tasks.Create(c.Request().Context(), record); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record.Task())
}

func (h *Handler) UpdateTask(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	record, err := h.ownedTask(c, user)
	if err != nil {
		return err
	}

	if err := bindTask(c, record); err != nil {
		return err
	}

	if err := h.tasks.Update(c.Request().Context(), record); err != nil {
		if errors.Is(err, repository.ErrOptimisticLock) {
			return errTaskConflict
		}
		return err
	}

	updated, err := h.tasks.FindByID(c.Request().Context(), record.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated.Task())
}

func (h *Handler) DeleteTask(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	record, err := h.ownedTask(c, user)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), record.ID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) GetProfile(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Profile())
}

// UpdateProfile stores the names as sent. The email changes only when it
// differs and no other account uses it.
func (h *Handler) UpdateProfile(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	ctx := c.Request().Context()

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if req.Email != "" && req.Email != user.Email {
		if _, err := h.users.FindByEmail(ctx, req.Email); err == nil {
			return apperrors.ErrEmailTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		user.Email = req.Email
	}

	if err := h.users.Update(ctx, user); err != nil {
		return err
	}

	h.logger.Info("profile updated", "username", user.Username)
	return c.JSON(http.StatusOK, user.Profile())
}

func (h *Handler) currentUser(c echo.Context) (*model.User, error) {
	username, _ := c.Get(middleware.UsernameKey).(string)
	if username == "" {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := h.users.FindByUsername(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (h *Handler) ownedTask(c echo.Context, user *model.User) (*model.TaskRecord, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return nil, apperrors.ErrTaskIDRequired
	}

	record, err := h.tasks.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if record.UserID != user.ID {
		return nil, apperrors.ErrForbidden
	}
	return record, nil
}

// bindTask decodes and validates a task body onto record. Missing priority
// and status fall back to their defaults.
func bindTask(c echo.Context, record *model.TaskRecord) error {
	var req dto.TaskRequestData
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	if req.Priority == "" {
		req.Priority = constants.DefaultPriority
	}
	if req.Status == "" {
		req.Status = constants.DefaultStatus
	}

	in := validators.TaskInput{
		Title:       req.Title,
		Description: deref(req.Description),
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     deref(req.DueDate),
		Category:    deref(req.Category),
		Tags:        deref(req.Tags),
	}
	if errs := validators.ValidateTask(in); !errs.Valid() {
		return validationFailure(errs)
	}

	record.Title = strings.TrimSpace(in.Title)
	record.Description = in.Description
	record.Priority = in.Priority
	record.Status = in.Status
	record.Category = in.Category
	record.Tags = in.Tags
	record.DueDate = nil
	if due := strings.TrimSpace(in.DueDate); due != "" {
		t, err := model.ParseDate(due)
		if err != nil {
			return apperrors.New(http.StatusBadRequest, "Invalid date format")
		}
		record.DueDate = &t
	}
	return nil
}

func validationFailure(errs validators.FieldErrors) error {
	return apperrors.New(http.StatusBadRequest, errs[errs.Fields()[0]])
}

func toTasks(records []model.TaskRecord) []model.Task {
	tasks := make([]model.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, r.Task())
	}
	return tasks
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
