package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"github.com/justsurfingit/Placement-Tracker/internal/resume"
)

// StatusStore moves a student forward to a status and logs an event, leaving
// students already at or past it untouched.
type StatusStore interface {
	Advance(ctx context.Context, studentID uint, target, eventType, details string) (bool, error)
}

// EligibleStatusFor says which status a set of test passes earns.
func EligibleStatusFor(tests []models.Test) (string, bool) {
	for _, t := range tests {
		if t.Type == resume.TestTypeSkill {
			return models.StatusInterviewEligible, true
		}
	}
	return "", false
}

// StatusRule applies "a skill test pass makes the student interview eligible"
// whenever a student's tests are observed. The update runs in the background
// so the read that observed the tests is not slowed down.
type StatusRule struct {
	Store   StatusStore
	Timeout time.Duration

	wg sync.WaitGroup
}

func NewStatusRule(store StatusStore) *StatusRule {
	return &StatusRule{Store: store, Timeout: 10 * time.Second}
}

// ObserveTests schedules the transition if the tests call for one.
func (r *StatusRule) ObserveTests(studentID uint, tests []models.Test) {
	target, ok := EligibleStatusFor(tests)
	if !ok {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
		defer cancel()
		if err := r.apply(ctx, studentID, target); err != nil {
			log.Printf("❌ [status] student %d -> %s failed: %v", studentID, target, err)
		}
	}()
}

func (r *StatusRule) apply(ctx context.Context, studentID uint, target string) error {
	moved, err := r.Store.Advance(ctx, studentID, target, "TEST_PASSED",
		fmt.Sprintf("Status changed to %s after a skill test pass", target))
	if err != nil {
		return err
	}
	if moved {
		log.Printf("⚡ [status] student %d -> %s (skill test passed)", studentID, target)
	}
	return nil
}

// Wait blocks until scheduled transitions finish.
func (r *StatusRule) Wait() {
	r.wg.Wait()
}
