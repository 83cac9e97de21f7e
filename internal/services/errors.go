package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUploadRejected     = errors.New("file type not allowed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// notFound turns gorm's missing-row error into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
