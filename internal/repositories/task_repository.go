package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskdesk.com/taskdesk/internal/constants"
	model "taskdesk.com/taskdesk/pkg/models"
)

type TaskRepository struct {
	db *gorm.DB
}

var (
	ErrOptimisticLock = errors.New("optimistic locking conflict")
	ErrTaskNotFound   = errors.New("task not found")
)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.TaskRecord) error {
	now := time.Now().UTC()
	task.ID = 0
	task.Version = 1
	task.CreatedAt = now
	task.UpdatedAt = now

	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.TaskRecord, error) {
	var task model.TaskRecord
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]model.TaskRecord, error) {
	return r.find(ctx, r.byUser(ctx, userID))
}

// Search matches the query against title and description, ignoring case.
func (r *TaskRepository) Search(ctx context.Context, userID uint, query string) ([]model.TaskRecord, error) {
	like := "%" + strings.ToLower(query) + "%"
	return r.find(ctx, r.byUser(ctx, userID).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like))
}

func (r *TaskRepository) ListByStatus(ctx context.Context, userID uint, status constants.TaskStatus) ([]model.TaskRecord, error) {
	return r.find(ctx, r.byUser(ctx, userID).Where("status = ?", status))
}

func (r *TaskRepository) ListByPriority(ctx context.Context, userID uint, priority constants.TaskPriority) ([]model.TaskRecord, error) {
	return r.find(ctx, r.byUser(ctx, userID).Where("priority = ?", priority))
}

func (r *TaskRepository) ListByCategory(ctx context.Context, userID uint, category string) ([]model.TaskRecord, error) {
	return r.find(ctx, r.byUser(ctx, userID).Where("category = ?", category))
}

// Categories returns the user's distinct non-empty categories, sorted.
func (r *TaskRepository) Categories(ctx context.Context, userID uint) ([]string, error) {
	categories := make([]string, 0)
	err := r.byUser(ctx, userID).
		Where("category IS NOT NULL AND category <> ''").
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *TaskRepository) Update(ctx context.Context, task *model.TaskRecord) error {
	res := r.db.WithContext(ctx).Model(&model.TaskRecord{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"priority":    task.Priority,
			"status":      task.Status,
			"due_date":    task.DueDate,
			"category":    task.Category,
			"tags":        task.Tags,
			"updated_at":  time.Now().UTC(),
			"version":     gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	task.Version++
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.TaskRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Statistics counts the user's tasks. Overdue tasks are those due before now
// that are not completed; the week window runs from now to a week after the
// start of today.
func (r *TaskRepository) Statistics(ctx context.Context, userID uint, now time.Time) (model.Statistics, error) {
	stats := model.Statistics{
		ByStatus:   make(map[string]int64),
		ByPriority: make(map[string]int64),
	}

	if err := r.byUser(ctx, userID).Count(&stats.TotalTasks).Error; err != nil {
		return stats, err
	}

	for _, status := range constants.Statuses() {
		var n int64
		if err := r.byUser(ctx, userID).Where("status = ?", status).Count(&n).Error; err != nil {
			return stats, err
		}
		stats.ByStatus[string(status)] = n
	}

	for _, priority := range constants.Priorities() {
		var n int64
		if err := r.byUser(ctx, userID).Where("priority = ?", priority).Count(&n).Error; err != nil {
			return stats, err
		}
		stats.ByPriority[string(priority)] = n
	}

	now = now.UTC()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	err := r.byUser(ctx, userID).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", now, constants.StatusCompleted).
		Count(&stats.OverdueTasksCount).Error
	if err != nil {
		return stats, err
	}

	err = r.byUser(ctx, userID).
		Where("due_date >= ? AND due_date < ?", startOfToday, startOfToday.AddDate(0, 0, 1)).
		Count(&stats.TodayTasksCount).Error
	if err != nil {
		return stats, err
	}

	err = r.byUser(ctx, userID).
		Where("due_date >= ? AND due_date < ?", now, startOfToday.AddDate(0, 0, 7)).
		Count(&stats.WeekTasksCount).Error
	return stats, err
}

func (r *TaskRepository) byUser(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.TaskRecord{}).Where("user_id = ?", userID)
}

func (r *TaskRepository) find(ctx context.Context, query *gorm.DB) ([]model.TaskRecord, error) {
	tasks := make([]model.TaskRecord, 0)
	err := query.Order("created_at desc").Order("id desc").Find(&tasks).Error
	return tasks, err
}
