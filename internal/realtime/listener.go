package realtime

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
)

// Invalidator is told that the watched collection changed. Payloads are
// ignored; the receiver refetches everything.
type Invalidator interface {
	Invalidate()
}

// Listener holds a dedicated LISTEN connection and reconnects on failure.
type Listener struct {
	URL     string
	Channel string
	Target  Invalidator
	Backoff time.Duration
}

func NewListener(url, channel string, target Invalidator) *Listener {
	return &Listener{URL: url, Channel: channel, Target: target, Backoff: 2 * time.Second}
}

// Run blocks until ctx is done.
func (l *Listener) Run(ctx context.Context) {
	b := backoff{base: l.Backoff, max: time.Minute}
	for {
		err := l.listen(ctx, b.reset)
		if ctx.Err() != nil {
			return
		}
		wait := b.next()
		log.Printf("⚠️ realtime: %v, reconnecting in %s", err, wait)
		// Changes may have been missed while disconnected.
		l.Target.Invalidate()
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// backoff doubles from base up to max and starts over after reset.
type backoff struct {
	base, max, cur time.Duration
}

func (b *backoff) next() time.Duration {
	if b.cur == 0 {
		b.cur = b.base
	}
	wait := b.cur
	if b.cur < b.max {
		b.cur *= 2
		if b.cur > b.max {
			b.cur = b.max
		}
	}
	return wait
}

func (b *backoff) reset() { b.cur = 0 }

// listen calls onListening once LISTEN is in place, then blocks.
func (l *Listener) listen(ctx context.Context, onListening func()) error {
	conn, err := pgx.Connect(ctx, l.URL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.Channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", l.Channel, err)
	}
	log.Printf("📡 realtime: listening on %s", l.Channel)
	onListening()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait: %w", err)
		}
		log.Printf("📡 realtime: %s (%s), invalidating", n.Channel, n.Payload)
		l.Target.Invalidate()
	}
}
