package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/qstash-go/internal/config"
	"github.com/samvad-hq/qstash-go/internal/ledger"
	"github.com/samvad-hq/qstash-go/pkg/httpclient"
	"github.com/samvad-hq/qstash-go/pkg/messagefile"
	"github.com/samvad-hq/qstash-go/pkg/qstash"
	"go.uber.org/zap"
)

// Publisher wires together the message file, the QStash client, and the
// local ledger, and publishes every entry once.
type Publisher struct {
	cfg     *config.Config
	client  *qstash.Client
	entries []messagefile.Entry
	ledger  ledger.Ledger
	log     *zap.SugaredLogger
}

// NewPublisher builds a publish runtime from config.
func NewPublisher(cfg *config.Config, log *zap.SugaredLogger) (*Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	entries, err := messagefile.Load(cfg.MessagesFile)
	if err != nil {
		return nil, fmt.Errorf("load message file: %w", err)
	}
	log.Infow("message file loaded", "file", cfg.MessagesFile, "messages", len(entries))

	opts := []qstash.Option{
		qstash.WithHTTPClient(httpclient.NewRestyClient(cfg.Timeout)),
		qstash.WithLogger(log),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, qstash.WithBaseURL(cfg.BaseURL))
	}
	client, err := qstash.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("init qstash client: %w", err)
	}

	led, err := ledger.New(cfg.LedgerType, cfg.LedgerPath, ledger.Options{
		EntryTTL:        cfg.LedgerTTL,
		CleanupInterval: cfg.LedgerCleanup,
	})
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}

	return &Publisher{
		cfg:     cfg,
		client:  client,
		entries: entries,
		ledger:  led,
		log:     log,
	}, nil
}

// Run publishes all loaded entries and records acknowledgements in the
// ledger. Individual failures do not stop the batch; they are joined and
// returned at the end.
func (p *Publisher) Run(ctx context.Context) error {
	if p == nil || p.client == nil {
		return fmt.Errorf("publisher is not initialized")
	}
	defer p.ledger.Close()

	var errs []error
	published := 0
	duplicates := 0

	for _, entry := range p.entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		res, err := p.client.PublishJSON(ctx, entry.Destination, entry.Payload, entry.Settings())
		if err != nil {
			p.log.Errorw("publish failed", "message", entry.ID, "destination", entry.Destination, "error", err)
			errs = append(errs, fmt.Errorf("message %q: %w", entry.ID, err))
			continue
		}

		published++
		p.log.Infow("message published",
			"message", entry.ID,
			"destination", entry.Destination,
			"message_id", res.MessageID,
			"schedule_id", res.ScheduleID,
		)

		// QStash acknowledges a deduplicated publish with the message ID it
		// already holds; a recorded ID means nothing new was enqueued.
		seen, err := p.ledger.Seen(res.MessageID)
		if err != nil {
			p.log.Warnw("ledger lookup failed", "message_id", res.MessageID, "error", err)
		}
		if seen {
			duplicates++
			p.log.Infow("acknowledgement already recorded", "message", entry.ID, "message_id", res.MessageID)
			continue
		}

		if err := p.ledger.Record(res.MessageID, entry.Destination); err != nil {
			p.log.Warnw("ledger record failed", "message_id", res.MessageID, "error", err)
		}
	}

	p.log.Infow("publish run finished", "published", published, "duplicates", duplicates, "failed", len(errs))
	return errors.Join(errs...)
}
