package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"gorm.io/gorm"
)

type MatcherService struct {
	DB *gorm.DB
}

func NewMatcherService(db *gorm.DB) *MatcherService {
	return &MatcherService{DB: db}
}

// FindClientFromEmail tries to match an email to a known client.
func (s *MatcherService) FindClientFromEmail(ctx context.Context, subject, rawSender string) (*models.Client, error) {
	var clients []models.Client
	if err := s.DB.WithContext(ctx).Find(&clients).Error; err != nil {
		return nil, err
	}
	return MatchClient(clients, subject, rawSender), nil
}

// MatchClient checks, in order: the registered contact address, the subject
// line, the sender display name and the sender domain.
func MatchClient(clients []models.Client, subject, rawSender string) *models.Client {
	// "Tokyo Care Recruiting <hr@tokyocare.jp>" -> name, addr
	senderName, senderAddr := "", ""
	if parsed, err := mail.ParseAddress(rawSender); err == nil {
		senderName = strings.ToLower(parsed.Name)
		senderAddr = strings.ToLower(parsed.Address)
	} else {
		senderAddr = strings.ToLower(strings.TrimSpace(rawSender))
	}
	domain := ""
	if parts := strings.Split(senderAddr, "@"); len(parts) == 2 {
		domain = parts[1]
	}
	subjectLower := strings.ToLower(subject)

	for i := range clients {
		if c := strings.ToLower(clients[i].ContactEmail); c != "" && c == senderAddr {
			return &clients[i]
		}
	}

	for i := range clients {
		name := strings.ToLower(clients[i].Name)
		// Very short names match everything.
		if len(name) < 3 {
			continue
		}
		if strings.Contains(subjectLower, name) {
			return &clients[i]
		}
		if senderName != "" && strings.Contains(senderName, name) {
			return &clients[i]
		}
		if domain != "" && strings.Contains(domain, strings.ReplaceAll(name, " ", "")) {
			return &clients[i]
		}
	}
	return nil
}
