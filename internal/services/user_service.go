package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService owns logins and answers the two capability checks.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// IsAdmin implements access.Checker.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	var ok bool
	err := s.DB.WithContext(ctx).Raw(`SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = ?)`, userID).Scan(&ok).Error
	return ok, err
}

// IsStudent implements access.Checker.
func (s *UserService) IsStudent(ctx context.Context, userID uint) (bool, error) {
	var ok bool
	err := s.DB.WithContext(ctx).Raw(`SELECT EXISTS (SELECT 1 FROM students WHERE user_id = ?)`, userID).Scan(&ok).Error
	return ok, err
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// Create adds a login, optionally granting admin or linking a student record.
func (s *UserService) Create(ctx context.Context, req *dtos.UserRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         req.Name,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		if req.Admin {
			if err := tx.Create(&models.Admin{UserID: u.ID}).Error; err != nil {
				return err
			}
		}
		if req.StudentID != nil {
			res := tx.Model(&models.Student{}).Where("id = ?", *req.StudentID).Update("user_id", u.ID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UserView is a login as shown on the admin users page.
type UserView struct {
	models.User
	Admin bool `json:"admin"`
}

func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	var users []UserView
	err := s.DB.WithContext(ctx).
		Table("users").
		Select("users.*, admins.user_id IS NOT NULL AS admin").
		Joins("LEFT JOIN admins ON admins.user_id = users.id").
		Order("users.id").
		Scan(&users).Error
	return users, err
}
