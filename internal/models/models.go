package models

import (
	"time"
)

// User is a staff or student login. Roles are not stored here; they come from
// the admins table and the students.user_id link.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `json:"name"`
}

type Admin struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Client is an employer abroad that posts jobs.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string `gorm:"uniqueIndex;not null" json:"client_name"`
	ContactEmail string `json:"contact_email"`
	Country      string `json:"country"`

	// 'omitempty' prevents Job -> Client -> Jobs loops in JSON.
	Jobs []Job `json:"jobs,omitempty"`
}

type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID uint   `json:"client_id"`
	Client   Client `json:"client"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	JobLink     string `json:"job_link"`
	Category    string `gorm:"index" json:"category"`
	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
	Status      string `gorm:"default:'OPEN'" json:"status"`
}

type Interview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID       uint      `gorm:"index" json:"job_id"`
	Job         Job       `json:"job"`
	StudentID   uint      `gorm:"index" json:"student_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Result      string    `gorm:"default:'pending'" json:"result"`
	Notes       string    `gorm:"type:text" json:"notes"`
}

const (
	InterviewPending = "pending"
	InterviewPassed  = "passed"
	InterviewFailed  = "failed"
)

// ProcessedEmail dedups Gmail messages across polls.
type ProcessedEmail struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
}

// Mailbox keeps the Gmail history bookmark of the watched inbox.
type Mailbox struct {
	ID            uint   `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;not null"`
	LastHistoryID uint64
}
