package model

import (
	"strconv"
	"time"

	"taskdesk.com/taskdesk/internal/constants"
)

// The record types below are the stub server's storage rows. The wire
// types above are what the client sees.

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;size:50;not null"`
	Email        string    `gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `gorm:"not null"`
	FirstName    string    `gorm:"size:50"`
	LastName     string    `gorm:"size:50"`
	AvatarURL    string    `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        ID(strconv.FormatUint(uint64(u.ID), 10)),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
	}
}

type TaskRecord struct {
	ID          uint                   `gorm:"primaryKey"`
	UserID      uint                   `gorm:"index;not null"`
	Title       string                 `gorm:"size:200;not null"`
	Description string                 `gorm:"size:1000"`
	Priority    constants.TaskPriority `gorm:"type:varchar(20);not null"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null"`
	DueDate     *time.Time
	Category    string    `gorm:"size:100;index"`
	Tags        string    `gorm:"size:500"`
	Version     uint      `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time
}

func (TaskRecord) TableName() string {
	return "tasks"
}

func (r TaskRecord) Task() Task {
	t := Task{
		ID:          ID(strconv.FormatUint(uint64(r.ID), 10)),
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		Category:    r.Category,
		Tags:        r.Tags,
		CreatedAt:   FormatTimestamp(r.CreatedAt),
		UpdatedAt:   FormatTimestamp(r.UpdatedAt),
	}
	if r.DueDate != nil {
		due := FormatTimestamp(*r.DueDate)
		t.DueDate = &due
	}
	return t
}

// Setting is one persisted client-side key/value pair.
type Setting struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
