package services

import (
	"context"
	"sync"

	"github.com/justsurfingit/Placement-Tracker/internal/models"
)

// Directory is the shared student list behind the list views. Any change
// signal drops it whole; the next read refetches everything.
type Directory struct {
	load func(ctx context.Context) ([]models.Student, error)

	mu         sync.Mutex
	students   []models.Student
	valid      bool
	generation uint64
}

func NewDirectory(load func(ctx context.Context) ([]models.Student, error)) *Directory {
	return &Directory{load: load}
}

// Invalidate implements realtime.Invalidator.
func (d *Directory) Invalidate() {
	d.mu.Lock()
	d.valid = false
	d.students = nil
	d.generation++
	d.mu.Unlock()
}

// List returns a copy of the cached list, refetching when invalid. A fetch
// that overlaps an Invalidate is returned to its caller but not cached.
func (d *Directory) List(ctx context.Context) ([]models.Student, error) {
	d.mu.Lock()
	if d.valid {
		out := append([]models.Student(nil), d.students...)
		d.mu.Unlock()
		return out, nil
	}
	gen := d.generation
	d.mu.Unlock()

	students, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.generation == gen {
		d.students = students
		d.valid = true
	}
	d.mu.Unlock()
	return append([]models.Student(nil), students...), nil
}
