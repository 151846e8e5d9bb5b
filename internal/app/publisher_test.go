package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samvad-hq/qstash-go/internal/config"
)

const testMessages = `
messages:
  - id: first
    destination: topic-a
    payload:
      n: 1
  - id: second
    destination: topic-b
    delay: 5s
    payload:
      n: 2
`

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.yaml")
	if err := os.WriteFile(path, []byte(testMessages), 0o644); err != nil {
		t.Fatalf("write messages file: %v", err)
	}
	return &config.Config{
		Token:        "test-token",
		BaseURL:      baseURL,
		MessagesFile: path,
		Timeout:      2 * time.Second,
		LedgerType:   "none",
	}
}

func TestPublisherRunPublishesAllEntries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messageId":"msg_ok"}`))
	}))
	defer srv.Close()

	pub, err := NewPublisher(testConfig(t, srv.URL), nil)
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	if err := pub.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 publishes, got %d", got)
	}
}

func TestPublisherRunContinuesPastFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messageId":"msg_ok"}`))
	}))
	defer srv.Close()

	pub, err := NewPublisher(testConfig(t, srv.URL), nil)
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}

	err = pub.Run(context.Background())
	if err == nil {
		t.Fatalf("expected joined error for the failed entry")
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected both entries attempted, got %d", got)
	}
}

// recordingLedger remembers what was recorded so tests can assert on the
// ledger interaction.
type recordingLedger struct {
	seen    map[string]bool
	records []string
}

func (l *recordingLedger) Close() error { return nil }

func (l *recordingLedger) Seen(id string) (bool, error) { return l.seen[id], nil }

func (l *recordingLedger) Record(id, _ string) error {
	l.seen[id] = true
	l.records = append(l.records, id)
	return nil
}

func TestPublisherRunSkipsAlreadyRecordedAcknowledgements(t *testing.T) {
	// Same message ID for every publish, as QStash answers when a
	// deduplication id suppressed the second enqueue.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messageId":"msg_dup"}`))
	}))
	defer srv.Close()

	pub, err := NewPublisher(testConfig(t, srv.URL), nil)
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	led := &recordingLedger{seen: map[string]bool{}}
	pub.ledger = led

	if err := pub.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(led.records) != 1 {
		t.Fatalf("expected one ledger record for duplicate acknowledgements, got %v", led.records)
	}
	if led.records[0] != "msg_dup" {
		t.Fatalf("unexpected recorded id %q", led.records[0])
	}
}

func TestNewPublisherRequiresConfig(t *testing.T) {
	if _, err := NewPublisher(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
