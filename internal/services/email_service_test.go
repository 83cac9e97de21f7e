package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"google.golang.org/api/gmail/v1"
)

type memProcessedLog struct {
	marked  map[string]bool
	seenErr error
	markErr error
}

func (m *memProcessedLog) Seen(_ context.Context, id string) (bool, error) {
	if m.seenErr != nil {
		return false, m.seenErr
	}
	return m.marked[id], nil
}

func (m *memProcessedLog) Mark(_ context.Context, id string) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.marked[id] = true
	return nil
}

func messages(ids ...string) []*gmail.Message {
	out := make([]*gmail.Message, 0, len(ids))
	for _, id := range ids {
		out = append(out, &gmail.Message{Id: id})
	}
	return out
}

func TestHandleBatchRetriesFailedMessages(t *testing.T) {
	seen := &memProcessedLog{marked: map[string]bool{"old": true}}
	var processed []string
	process := func(_ context.Context, msg *gmail.Message) error {
		processed = append(processed, msg.Id)
		if msg.Id == "llm-timeout" {
			return errors.New("analyze: deadline exceeded")
		}
		return nil
	}

	failed := handleBatch(context.Background(), messages("old", "result", "llm-timeout", "newsletter"), seen, process)

	if failed != 1 {
		t.Fatalf("failed = %d, want 1", failed)
	}
	if want := []string{"result", "llm-timeout", "newsletter"}; !reflect.DeepEqual(processed, want) {
		t.Fatalf("processed = %v, want %v", processed, want)
	}
	if seen.marked["llm-timeout"] {
		t.Fatal("failed message marked processed")
	}
	if !seen.marked["result"] || !seen.marked["newsletter"] {
		t.Fatalf("handled messages not marked: %v", seen.marked)
	}

	// Next cycle: only the failed one runs again.
	processed = nil
	if failed := handleBatch(context.Background(), messages("result", "llm-timeout"), seen, func(_ context.Context, msg *gmail.Message) error {
		processed = append(processed, msg.Id)
		return nil
	}); failed != 0 {
		t.Fatalf("failed = %d on retry", failed)
	}
	if !reflect.DeepEqual(processed, []string{"llm-timeout"}) || !seen.marked["llm-timeout"] {
		t.Fatalf("retry processed %v, marked %v", processed, seen.marked)
	}
}

func TestHandleBatchCountsDedupErrors(t *testing.T) {
	calls := 0
	process := func(context.Context, *gmail.Message) error {
		calls++
		return nil
	}

	failed := handleBatch(context.Background(), messages("a", "b"), &memProcessedLog{marked: map[string]bool{}, seenErr: errors.New("db down")}, process)
	if failed != 2 || calls != 0 {
		t.Fatalf("lookup errors: failed=%d calls=%d", failed, calls)
	}

	failed = handleBatch(context.Background(), messages("a"), &memProcessedLog{marked: map[string]bool{}, markErr: errors.New("db down")}, process)
	if failed != 1 {
		t.Fatalf("mark errors: failed=%d", failed)
	}
}
