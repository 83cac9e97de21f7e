package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentService struct {
	DB        *gorm.DB
	Directory *Directory
}

func NewStudentService(db *gorm.DB) *StudentService {
	s := &StudentService{DB: db}
	s.Directory = NewDirectory(s.loadAll)
	return s
}

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

func (s *StudentService) withRecord(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Preload("Family", byPosition).
		Preload("Education", byPosition).
		Preload("WorkExperiences", byPosition).
		Preload("Certificates", byPosition).
		Preload("Resume")
}

func (s *StudentService) loadAll(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := s.DB.WithContext(ctx).Preload("Resume").Order("id DESC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	return students, nil
}

// Create stores a new student with every sub-list.
func (s *StudentService) Create(ctx context.Context, st *models.Student) error {
	if err := s.DB.WithContext(ctx).Create(st).Error; err != nil {
		return err
	}
	s.Directory.Invalidate()
	return nil
}

func (s *StudentService) Get(ctx context.Context, id uint) (*models.Student, error) {
	var st models.Student
	if err := s.withRecord(ctx).First(&st, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &st, nil
}

// ForUser finds the record linked to a student login.
func (s *StudentService) ForUser(ctx context.Context, userID uint) (*models.Student, error) {
	var st models.Student
	if err := s.withRecord(ctx).Where("user_id = ?", userID).First(&st).Error; err != nil {
		return nil, notFound(err)
	}
	return &st, nil
}

// Search is the paged, filtered listing; unfiltered reads go through Directory.
func (s *StudentService) Search(ctx context.Context, q string, page, size int) ([]models.Student, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&models.Student{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.Student
	if err := tx.Preload("Resume").Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update replaces the student and all sub-lists. Status and login link are
// kept unless the payload sets them.
func (s *StudentService) Update(ctx context.Context, id uint, st models.Student) (*models.Student, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Student
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, id).Error; err != nil {
			return notFound(err)
		}
		st.ID = existing.ID
		st.CreatedAt = existing.CreatedAt
		if st.Status == "" {
			st.Status = existing.Status
		}
		if st.UserID == nil {
			st.UserID = existing.UserID
		}
		if st.Status != existing.Status {
			ev := models.StudentEvent{
				StudentID: id,
				EventType: "MANUAL_UPDATE",
				Details:   fmt.Sprintf("Status changed from %s to %s", existing.Status, st.Status),
			}
			if err := tx.Create(&ev).Error; err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(&st).Error; err != nil {
			return err
		}
		return replaceChildren(tx, &st)
	})
	if err != nil {
		return nil, err
	}
	s.Directory.Invalidate()
	return s.Get(ctx, id)
}

func replaceChildren(tx *gorm.DB, st *models.Student) error {
	for _, m := range []any{&models.FamilyMember{}, &models.Education{}, &models.WorkExperience{}, &models.Certificate{}, &models.Resume{}} {
		if err := tx.Where("student_id = ?", st.ID).Delete(m).Error; err != nil {
			return err
		}
	}
	for i := range st.Family {
		st.Family[i].ID, st.Family[i].StudentID = 0, st.ID
	}
	for i := range st.Education {
		st.Education[i].ID, st.Education[i].StudentID = 0, st.ID
	}
	for i := range st.WorkExperiences {
		st.WorkExperiences[i].ID, st.WorkExperiences[i].StudentID = 0, st.ID
	}
	for i := range st.Certificates {
		st.Certificates[i].ID, st.Certificates[i].StudentID = 0, st.ID
	}
	creates := []struct {
		n int
		v any
	}{
		{len(st.Family), &st.Family},
		{len(st.Education), &st.Education},
		{len(st.WorkExperiences), &st.WorkExperiences},
		{len(st.Certificates), &st.Certificates},
	}
	for _, c := range creates {
		if c.n == 0 {
			continue
		}
		if err := tx.Create(c.v).Error; err != nil {
			return err
		}
	}
	if st.Resume != nil {
		st.Resume.ID, st.Resume.StudentID = 0, st.ID
		if err := tx.Create(st.Resume).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *StudentService) Status(ctx context.Context, id uint) (string, error) {
	var st models.Student
	if err := s.DB.WithContext(ctx).Select("id", "status").First(&st, id).Error; err != nil {
		return "", notFound(err)
	}
	return st.Status, nil
}

// Advance implements StatusStore. It reports whether the student moved.
func (s *StudentService) Advance(ctx context.Context, id uint, target, eventType, details string) (bool, error) {
	var moved bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		moved, err = advanceStatus(tx, id, target, eventType, details)
		return err
	})
	if err != nil {
		return false, err
	}
	if moved {
		s.Directory.Invalidate()
	}
	return moved, nil
}

// advanceStatus moves a student forward to target with a single conditional
// UPDATE, so concurrent callers cannot both move it or move it backwards.
// The event is written only for the caller whose UPDATE hit the row.
func advanceStatus(tx *gorm.DB, id uint, target, eventType, details string) (bool, error) {
	res := tx.Model(&models.Student{}).
		Where("id = ? AND status IN ?", id, models.StatusesBelow(target)).
		Update("status", target)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected != 1 {
		return false, nil
	}
	ev := models.StudentEvent{StudentID: id, EventType: eventType, Details: details}
	if err := tx.Create(&ev).Error; err != nil {
		return false, err
	}
	return true, nil
}

// SetStatus is the manual override from staff; it may move in any direction.
// The status change and its event commit together.
func (s *StudentService) SetStatus(ctx context.Context, id uint, status, eventType, details string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Student{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(&models.StudentEvent{StudentID: id, EventType: eventType, Details: details}).Error
	})
	if err != nil {
		return err
	}
	s.Directory.Invalidate()
	return nil
}

func (s *StudentService) Events(ctx context.Context, id uint) ([]models.StudentEvent, error) {
	var events []models.StudentEvent
	err := s.DB.WithContext(ctx).Where("student_id = ?", id).Order("created_at DESC").Find(&events).Error
	return events, err
}
