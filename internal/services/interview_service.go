package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"gorm.io/gorm"
)

type InterviewService struct {
	DB       *gorm.DB
	Students *StudentService
}

func NewInterviewService(db *gorm.DB, students *StudentService) *InterviewService {
	return &InterviewService{DB: db, Students: students}
}

func (s *InterviewService) Schedule(ctx context.Context, req *dtos.InterviewRequest) (*models.Interview, error) {
	db := s.DB.WithContext(ctx)
	var job models.Job
	if err := db.Preload("Client").First(&job, req.JobID).Error; err != nil {
		return nil, notFound(err)
	}
	if _, err := s.Students.Status(ctx, req.StudentID); err != nil {
		return nil, err
	}
	iv := &models.Interview{
		JobID:       req.JobID,
		StudentID:   req.StudentID,
		ScheduledAt: req.ScheduledAt,
		Result:      models.InterviewPending,
		Notes:       req.Notes,
	}
	if err := db.Omit("Job").Create(iv).Error; err != nil {
		return nil, err
	}
	iv.Job = job
	return iv, nil
}

// List filters by job and/or student; zero means any.
func (s *InterviewService) List(ctx context.Context, jobID, studentID uint) ([]models.Interview, error) {
	tx := s.DB.WithContext(ctx).Preload("Job.Client").Order("scheduled_at DESC")
	if jobID != 0 {
		tx = tx.Where("job_id = ?", jobID)
	}
	if studentID != 0 {
		tx = tx.Where("student_id = ?", studentID)
	}
	var out []models.Interview
	return out, tx.Find(&out).Error
}

// PendingForClient lists interviews still waiting on a result from one client.
func (s *InterviewService) PendingForClient(ctx context.Context, clientID uint) ([]models.Interview, error) {
	var out []models.Interview
	err := s.DB.WithContext(ctx).
		Preload("Job").
		Joins("JOIN jobs ON jobs.id = interviews.job_id").
		Where("jobs.client_id = ? AND interviews.result = ?", clientID, models.InterviewPending).
		Order("interviews.scheduled_at ASC").
		Find(&out).Error
	return out, err
}

// SetResult records the outcome. A pass moves the student forward to offered
// in the same transaction; students already offered, departed or withdrawn
// keep their status.
func (s *InterviewService) SetResult(ctx context.Context, id uint, result, notes string) (*models.Interview, error) {
	var iv models.Interview
	if err := s.DB.WithContext(ctx).Preload("Job").First(&iv, id).Error; err != nil {
		return nil, notFound(err)
	}
	updates := map[string]interface{}{"result": result}
	if notes != "" {
		updates["notes"] = notes
	}

	moved := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&iv).Updates(updates).Error; err != nil {
			return err
		}
		if result != models.InterviewPassed {
			return nil
		}
		details := fmt.Sprintf("Passed interview %d for job %q", iv.ID, iv.Job.Title)
		var err error
		moved, err = advanceStatus(tx, iv.StudentID, models.StatusOffered, "INTERVIEW_PASSED", details)
		return err
	})
	if err != nil {
		return nil, err
	}
	if moved {
		s.Students.Directory.Invalidate()
	}

	iv.Result = result
	if notes != "" {
		iv.Notes = notes
	}
	return &iv, nil
}
