package services

import (
	"context"

	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

// CreateJob files a job under its client, creating the client on first sight.
func (s *JobService) CreateJob(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	var client models.Client
	err := s.DB.WithContext(ctx).Where(models.Client{Name: req.ClientName}).
		FirstOrCreate(&client).Error
	if err != nil {
		return nil, err
	}
	job := &models.Job{
		ClientID:    client.ID,
		Client:      client,
		Title:       req.Title,
		Description: req.Description,
		JobLink:     req.JobLink,
		Category:    req.Category,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
		Status:      req.Status,
	}
	if job.Status == "" {
		job.Status = "OPEN"
	}
	if err := s.DB.WithContext(ctx).Omit("Client").Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context, clientID uint) ([]models.Job, error) {
	tx := s.DB.WithContext(ctx).Preload("Client").Order("id DESC")
	if clientID != 0 {
		tx = tx.Where("client_id = ?", clientID)
	}
	var jobs []models.Job
	return jobs, tx.Find(&jobs).Error
}

func (s *JobService) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).Preload("Client").First(&job, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &job, nil
}

// EligibleStudents returns the backend's eligible_students(job_id) as is.
func (s *JobService) EligibleStudents(ctx context.Context, jobID uint) ([]dtos.EligibleStudent, error) {
	if _, err := s.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	var rows []dtos.EligibleStudent
	err := s.DB.WithContext(ctx).Raw(`SELECT student_id, first_name, last_name, status FROM eligible_students(?)`, jobID).Scan(&rows).Error
	return rows, err
}

func (s *JobService) CreateClient(ctx context.Context, req *dtos.ClientRequest) (*models.Client, error) {
	c := &models.Client{Name: req.Name, ContactEmail: req.ContactEmail, Country: req.Country}
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (s *JobService) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	return clients, s.DB.WithContext(ctx).Order("name").Find(&clients).Error
}
