package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"gorm.io/gorm"
)

const (
	watchedMailbox = "me"
	syncTimeout    = 2 * time.Minute
	fullSyncQuery  = "subject:(interview OR result OR selection OR offer OR unsuccessful OR 面接 OR 結果) newer_than:7d"
)

// EmailService watches the agency inbox for interview results sent by clients.
type EmailService struct {
	DB             *gorm.DB
	LLMService     *LLMService
	MatcherService *MatcherService
	Interviews     *InterviewService
	GmailClient    *gmail.Service
}

func NewEmailService(db *gorm.DB, llm *LLMService, gmail *gmail.Service, matcher *MatcherService, interviews *InterviewService) *EmailService {
	return &EmailService{
		DB:             db,
		LLMService:     llm,
		GmailClient:    gmail,
		MatcherService: matcher,
		Interviews:     interviews,
	}
}

// StartWatcher polls until ctx is done.
func (s *EmailService) StartWatcher(ctx context.Context, every time.Duration) {
	if s.GmailClient == nil || s.LLMService == nil {
		log.Println("⚠️ Gmail Watcher disabled (no Gmail client or LLM). Check credentials.")
		return
	}

	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		s.SyncEmails(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SyncEmails(ctx)
			}
		}
	}()
}

// SyncEmails runs one poll: full bootstrap on first run or after the
// history bookmark expired, incremental otherwise.
func (s *EmailService) SyncEmails(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, syncTimeout)
	defer cancel()

	log.Println("📧 Email Watcher: Starting Sync Cycle...")

	var box models.Mailbox
	if err := s.DB.WithContext(ctx).Where(models.Mailbox{Email: watchedMailbox}).FirstOrCreate(&box).Error; err != nil {
		log.Printf("❌ Mailbox bookmark: %v", err)
		return
	}

	var (
		messages     []*gmail.Message
		newHistoryID uint64
		err          error
	)
	if box.LastHistoryID == 0 {
		log.Println("🆕 First run detected. Running Full Bootstrap Sync...")
		messages, newHistoryID, err = s.performFullSync(ctx)
	} else {
		messages, newHistoryID, err = s.performIncrementalSync(ctx, box.LastHistoryID)
		if err != nil && isHistoryExpiredError(err) {
			log.Println("⚠️ History ID expired (too old). Falling back to Full Sync.")
			messages, newHistoryID, err = s.performFullSync(ctx)
		}
	}
	if err != nil {
		log.Printf("❌ Sync failed: %v", err)
		return
	}

	if len(messages) > 0 {
		log.Printf("📥 Processing %d candidate emails...", len(messages))
	}
	failed := handleBatch(ctx, messages, gormProcessedLog{db: s.DB}, s.processSingleEmail)
	if failed > 0 {
		// Keep the bookmark so the next incremental sync returns them again.
		log.Printf("⚠️ %d emails will be retried next cycle; history bookmark kept at %d", failed, box.LastHistoryID)
		return
	}

	if newHistoryID > box.LastHistoryID {
		if err := s.DB.WithContext(ctx).Model(&box).Update("last_history_id", newHistoryID).Error; err != nil {
			log.Printf("❌ History bookmark update: %v", err)
			return
		}
		log.Printf("🔖 History updated to %d", newHistoryID)
	}
}

// processedLog remembers which messages were already dealt with.
type processedLog interface {
	Seen(ctx context.Context, id string) (bool, error)
	Mark(ctx context.Context, id string) error
}

type gormProcessedLog struct{ db *gorm.DB }

func (p gormProcessedLog) Seen(ctx context.Context, id string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.ProcessedEmail{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (p gormProcessedLog) Mark(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Create(&models.ProcessedEmail{ID: id}).Error
}

// handleBatch runs process on every message not seen before. A message is
// marked only when process returned nil (handled or deliberately skipped);
// failures stay unmarked for the next cycle. It returns how many failed.
func handleBatch(ctx context.Context, messages []*gmail.Message, seen processedLog, process func(context.Context, *gmail.Message) error) int {
	failed := 0
	for _, msg := range messages {
		done, err := seen.Seen(ctx, msg.Id)
		if err != nil {
			log.Printf("❌ [Email %s] dedup lookup: %v", msg.Id, err)
			failed++
			continue
		}
		if done {
			continue
		}
		if err := process(ctx, msg); err != nil {
			log.Printf("❌ [Email %s] will retry: %v", msg.Id, err)
			failed++
			continue
		}
		if err := seen.Mark(ctx, msg.Id); err != nil {
			log.Printf("❌ [Email %s] mark processed: %v", msg.Id, err)
			failed++
		}
	}
	return failed
}

func (s *EmailService) performFullSync(ctx context.Context) ([]*gmail.Message, uint64, error) {
	var resp *gmail.ListMessagesResponse
	err := retry(ctx, 3, time.Second, func() error {
		var e error
		resp, e = s.GmailClient.Users.Messages.List(watchedMailbox).Q(fullSyncQuery).MaxResults(50).Context(ctx).Do()
		return e
	})
	if err != nil {
		return nil, 0, err
	}

	// The profile's history id is the new anchor.
	profile, err := s.GmailClient.Users.GetProfile(watchedMailbox).Context(ctx).Do()
	if err != nil {
		return nil, 0, err
	}
	return s.expandMessages(ctx, resp.Messages), profile.HistoryId, nil
}

func (s *EmailService) performIncrementalSync(ctx context.Context, startID uint64) ([]*gmail.Message, uint64, error) {
	var resp *gmail.ListHistoryResponse
	err := retry(ctx, 3, time.Second, func() error {
		var e error
		call := s.GmailClient.Users.History.List(watchedMailbox).StartHistoryId(startID)
		call.HistoryTypes("messageAdded")
		resp, e = call.Context(ctx).Do()
		return e
	})
	if err != nil {
		return nil, 0, err
	}

	var added []*gmail.Message
	for _, h := range resp.History {
		for _, m := range h.MessagesAdded {
			if m.Message != nil {
				added = append(added, m.Message)
			}
		}
	}
	return s.expandMessages(ctx, added), resp.HistoryId, nil
}

func (s *EmailService) expandMessages(ctx context.Context, headers []*gmail.Message) []*gmail.Message {
	var full []*gmail.Message
	for _, h := range headers {
		_ = retry(ctx, 2, 500*time.Millisecond, func() error {
			msg, err := s.GmailClient.Users.Messages.Get(watchedMailbox, h.Id).Context(ctx).Do()
			if err == nil {
				full = append(full, msg)
			}
			return err
		})
	}
	return full
}

// processSingleEmail: match client -> pick pending interview -> LLM verdict -> apply.
// It returns nil when the mail was handled or is not ours to handle, and an
// error when a lookup, LLM call or write failed and the mail should be retried.
func (s *EmailService) processSingleEmail(ctx context.Context, msg *gmail.Message) error {
	headers := parseHeaders(msg)
	subject := headers["Subject"]
	sender := headers["From"]

	shortSub := subject
	if len([]rune(shortSub)) > 20 {
		shortSub = string([]rune(shortSub)[:20]) + "..."
	}
	logPrefix := fmt.Sprintf("[Email: %s]", shortSub)
	log.Printf("%s 📥 START processing from: %s", logPrefix, sender)

	body := getEmailBody(msg)

	client, err := s.MatcherService.FindClientFromEmail(ctx, subject, sender)
	if err != nil {
		return fmt.Errorf("client lookup: %w", err)
	}
	if client == nil {
		log.Printf("%s ❌ SKIPPED: sender/subject does not match a client.", logPrefix)
		return nil
	}
	log.Printf("%s ✅ MATCHED Client: %s", logPrefix, client.Name)

	pending, err := s.Interviews.PendingForClient(ctx, client.ID)
	if err != nil {
		return fmt.Errorf("pending interviews: %w", err)
	}
	if len(pending) == 0 {
		log.Printf("%s ❌ SKIPPED: no pending interviews for %s.", logPrefix, client.Name)
		return nil
	}

	target := &pending[0]
	if len(pending) > 1 {
		candidates, err := s.describeInterviews(ctx, pending)
		if err != nil {
			return fmt.Errorf("describe interviews: %w", err)
		}
		log.Printf("%s ⚠️ Ambiguous: %d pending interviews. Asking LLM to pick...", logPrefix, len(pending))
		idx, err := s.LLMService.IdentifyInterview(ctx, candidates, subject, body)
		if err != nil {
			return err
		}
		if idx == -1 {
			log.Printf("%s ❌ SKIPPED: LLM could not determine which interview this email is about.", logPrefix)
			return nil
		}
		target = &pending[idx]
	}
	log.Printf("%s 🎯 Interview %d (student %d, job %q)", logPrefix, target.ID, target.StudentID, target.Job.Title)

	analysis, err := s.LLMService.AnalyzeInterviewEmail(ctx, client.Name, subject, body)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	log.Printf("%s 🧠 LLM Decision: Result=%s | Summary=%s", logPrefix, analysis.Result, analysis.Summary)

	result, ok := interviewResultFor(analysis.Result)
	if !ok {
		log.Printf("%s ⏹️  No update needed (%s).", logPrefix, analysis.Result)
		return nil
	}

	if _, err := s.Interviews.SetResult(ctx, target.ID, result, "From email: "+analysis.Summary); err != nil {
		return fmt.Errorf("set interview %d result: %w", target.ID, err)
	}
	log.Printf("%s ✅ Interview %d marked %s.", logPrefix, target.ID, result)
	return nil
}

func (s *EmailService) describeInterviews(ctx context.Context, ivs []models.Interview) ([]string, error) {
	ids := make([]uint, 0, len(ivs))
	for _, iv := range ivs {
		ids = append(ids, iv.StudentID)
	}
	var students []models.Student
	if err := s.DB.WithContext(ctx).Select("id", "first_name", "last_name").Find(&students, ids).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(students))
	for _, st := range students {
		names[st.ID] = st.FirstName + " " + st.LastName
	}
	out := make([]string, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, fmt.Sprintf("%s, %s interview on %s", names[iv.StudentID], iv.Job.Title, iv.ScheduledAt.Format("2006-01-02")))
	}
	return out, nil
}

// interviewResultFor maps the LLM verdict onto an interview result.
func interviewResultFor(verdict string) (string, bool) {
	switch verdict {
	case "PASSED":
		return models.InterviewPassed, true
	case "FAILED":
		return models.InterviewFailed, true
	}
	return "", false
}

// retry runs f with exponential backoff. A 404 fails fast so the caller can
// fall back to a full sync.
func retry(ctx context.Context, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if isHistoryExpiredError(err) {
			return err
		}
		log.Printf("⚠️ API Error: %v. Retrying in %v...", err, sleep)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

func isHistoryExpiredError(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == 404
	}
	return false
}

func parseHeaders(msg *gmail.Message) map[string]string {
	res := make(map[string]string)
	if msg.Payload == nil {
		return res
	}
	for _, h := range msg.Payload.Headers {
		res[h.Name] = h.Value
	}
	return res
}

func getEmailBody(msg *gmail.Message) string {
	if msg.Payload == nil {
		return ""
	}
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		return decodePart(msg.Payload.Body.Data)
	}
	for _, mime := range []string{"text/plain", "text/html"} {
		for _, part := range msg.Payload.Parts {
			if part.MimeType == mime && part.Body != nil && part.Body.Data != "" {
				return decodePart(part.Body.Data)
			}
		}
	}
	return ""
}

// Gmail bodies are base64url, usually unpadded.
func decodePart(data string) string {
	if d, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(d)
	}
	d, _ := base64.URLEncoding.DecodeString(data)
	return string(d)
}
