package access

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Checker answers the two capability questions for a signed-in user.
type Checker interface {
	IsAdmin(ctx context.Context, userID uint) (bool, error)
	IsStudent(ctx context.Context, userID uint) (bool, error)
}

// Resolver runs both checks on every call. Nothing is cached between calls.
type Resolver struct {
	Checker Checker
}

func NewResolver(c Checker) *Resolver {
	return &Resolver{Checker: c}
}

// Resolve runs the checks in parallel. A failed check counts as false.
func (r *Resolver) Resolve(ctx context.Context, userID uint) Role {
	var isAdmin, isStudent bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ok, err := r.Checker.IsAdmin(gctx, userID)
		if err != nil {
			log.Printf("[access] is_admin check failed for user %d: %v", userID, err)
			return nil
		}
		isAdmin = ok
		return nil
	})
	g.Go(func() error {
		ok, err := r.Checker.IsStudent(gctx, userID)
		if err != nil {
			log.Printf("[access] is_student check failed for user %d: %v", userID, err)
			return nil
		}
		isStudent = ok
		return nil
	})
	_ = g.Wait()

	return ResolveRole(isAdmin, isStudent)
}
