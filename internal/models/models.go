package models

import (
	"time"
)

// User is the owning scope for every job, interview and calendar event.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// JobSequence holds the highest job id ever issued to a user. Ids are never
// handed out twice, even after the job that used them is deleted.
type JobSequence struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false"`
	LastID uint `gorm:"not null;default:0"`
}

// Job is keyed by (user_id, job_id); job_id is sequential per user.
type Job struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	JobID     uint      `gorm:"primaryKey;autoIncrement:false" json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Company     string  `gorm:"not null" json:"company"`
	Title       string  `gorm:"column:job_title;not null" json:"job_title"`
	Description *string `gorm:"column:job_description;type:text" json:"job_description"`
	Role        string  `gorm:"not null" json:"role"`
	Status      string  `gorm:"not null" json:"status"`
}

// Interview references a job by (user_id, job_id). The reference is checked
// when written, there is no database foreign key, so it may dangle after the
// job is deleted.
type Interview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID   uint      `gorm:"not null;index:idx_interviews_user_job,priority:1" json:"user_id"`
	JobID    uint      `gorm:"not null;index:idx_interviews_user_job,priority:2" json:"job_id"`
	DateTime time.Time `gorm:"not null" json:"date_time"`
	Details  string    `gorm:"type:text" json:"details"`
	PrepTips *string   `gorm:"type:text" json:"prep_tips"`
}

const (
	EventTypeJob       = "job"
	EventTypeInterview = "interview"
)

// CalendarEvent is a dated note; JobID is optional and validated like an
// interview's reference when set.
type CalendarEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID   uint      `gorm:"not null;index" json:"user_id"`
	Type     string    `gorm:"not null" json:"type"`
	JobID    *uint     `json:"job_id"`
	DateTime time.Time `gorm:"not null" json:"date_time"`
	Details  string    `gorm:"type:text" json:"details"`
}
