package dtos

import "time"

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

type JobCreationRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	Title       string `json:"role_title" binding:"required"`
	Description string `json:"description" binding:"required"`

	// Optional Fields
	JobLink     string `json:"job_link"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
	Status      string `json:"status"` // Defaults to "OPEN" if empty
}

type ClientRequest struct {
	Name         string `json:"client_name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Country      string `json:"country"`
}

type InterviewRequest struct {
	JobID       uint      `json:"job_id" binding:"required"`
	StudentID   uint      `json:"student_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}

type InterviewResultRequest struct {
	Result string `json:"result" binding:"required,oneof=pending passed failed"`
	Notes  string `json:"notes"`
}

// EligibleStudent is one row of the backend's eligible_students(job_id).
type EligibleStudent struct {
	StudentID uint   `json:"student_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Status    string `json:"status"`
}
