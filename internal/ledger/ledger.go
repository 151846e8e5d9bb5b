// Package ledger keeps a local record of messages the publish tool has
// already sent, keyed by the message ID QStash assigned.
package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Ledger tracks published message IDs.
type Ledger interface {
	Close() error
	Seen(messageID string) (bool, error)
	Record(messageID, destination string) error
}

// Options controls retention characteristics for concrete ledger implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// New creates the configured ledger backend.
func New(typ, path string, opts Options) (Ledger, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopLedger{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt ledger requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported ledger type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopLedger struct{}

func (noopLedger) Close() error                { return nil }
func (noopLedger) Seen(string) (bool, error)   { return false, nil }
func (noopLedger) Record(string, string) error { return nil }
