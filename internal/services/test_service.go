package services

import (
	"context"

	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"gorm.io/gorm"
)

// TestService manages recorded test passes. Reading tests does not change
// anything by itself; callers hand the result to StatusRule.ObserveTests.
type TestService struct {
	DB   *gorm.DB
	Rule *StatusRule
}

func NewTestService(db *gorm.DB, rule *StatusRule) *TestService {
	return &TestService{DB: db, Rule: rule}
}

// List returns a student's tests, oldest pass first.
func (s *TestService) List(ctx context.Context, studentID uint) ([]models.Test, error) {
	var tests []models.Test
	err := s.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("passed_date ASC").Order("id ASC").
		Find(&tests).Error
	return tests, err
}

func (s *TestService) Record(ctx context.Context, studentID uint, req *dtos.TestRequest) (*models.Test, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Student{}).Where("id = ?", studentID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	t := &models.Test{
		StudentID:     studentID,
		Type:          req.Type,
		SkillCategory: req.SkillCategory,
		PassedDate:    req.PassedDate,
	}
	if err := s.DB.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	s.Rule.ObserveTests(studentID, []models.Test{*t})
	return t, nil
}

func (s *TestService) Delete(ctx context.Context, studentID, testID uint) error {
	res := s.DB.WithContext(ctx).Where("student_id = ?", studentID).Delete(&models.Test{}, testID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
