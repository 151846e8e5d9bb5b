// Package messagefile loads declarative YAML/JSON files describing messages
// to publish through QStash.
package messagefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/qstash-go/pkg/qstash"
	"gopkg.in/yaml.v3"
)

// fileSchema represents the structure of a message file.
type fileSchema struct {
	Messages []Entry `json:"messages" yaml:"messages"`
}

// Entry describes one message to publish: where it goes, its publish-time
// options, and the JSON payload.
type Entry struct {
	ID              string            `json:"id" yaml:"id"`
	Destination     string            `json:"destination" yaml:"destination"`
	Delay           string            `json:"delay" yaml:"delay"`
	Retries         *int              `json:"retries" yaml:"retries"`
	Cron            string            `json:"cron" yaml:"cron"`
	CallbackURL     string            `json:"callback_url" yaml:"callback_url"`
	DeduplicationID string            `json:"deduplication_id" yaml:"deduplication_id"`
	Headers         map[string]string `json:"headers" yaml:"headers"`
	Payload         map[string]any    `json:"payload" yaml:"payload"`
}

// Settings converts the entry's options to qstash.MessageSettings.
// Returns nil when the entry sets none of them.
func (e Entry) Settings() *qstash.MessageSettings {
	s := qstash.MessageSettings{
		Delay:           e.Delay,
		Retries:         e.Retries,
		Cron:            e.Cron,
		CallbackURL:     e.CallbackURL,
		DeduplicationID: e.DeduplicationID,
		Headers:         e.Headers,
	}
	if s.Delay == "" && s.Retries == nil && s.Cron == "" && s.CallbackURL == "" &&
		s.DeduplicationID == "" && len(s.Headers) == 0 {
		return nil
	}
	return &s
}

// Load reads message entries from a YAML/JSON file.
func Load(path string) ([]Entry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("message file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open message file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read message file: %w", err)
	}

	schema, err := parse(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(schema.Messages) == 0 {
		return nil, errors.New("message file contains no messages entries")
	}

	entries := make([]Entry, len(schema.Messages))
	ids := make(map[string]struct{}, len(schema.Messages))

	for i := range schema.Messages {
		entry := sanitizeEntry(schema.Messages[i])
		if err := validateEntry(entry); err != nil {
			return nil, fmt.Errorf("messages[%d]: %w", i, err)
		}
		if _, exists := ids[entry.ID]; exists {
			return nil, fmt.Errorf("duplicate message id %q", entry.ID)
		}
		entries[i] = entry
		ids[entry.ID] = struct{}{}
	}

	return entries, nil
}

// parse attempts to decode the message file content.
func parse(data []byte, ext string) (fileSchema, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if schema, err := unmarshalSchema(d.name, data, d.fn); err == nil {
			return schema, nil
		}
	}

	return fileSchema{}, errors.New("message file format not recognized (expected YAML or JSON)")
}

// unmarshalSchema decodes the message file using the provided function.
func unmarshalSchema(name string, data []byte, fn func([]byte, any) error) (fileSchema, error) {
	var schema fileSchema
	if err := fn(data, &schema); err != nil {
		return fileSchema{}, fmt.Errorf("decode %s messages: %w", name, err)
	}
	return schema, nil
}

// sanitizeEntry trims and normalizes the entry fields.
func sanitizeEntry(e Entry) Entry {
	e.ID = strings.TrimSpace(e.ID)
	e.Destination = strings.TrimSpace(e.Destination)
	e.Delay = strings.TrimSpace(e.Delay)
	e.Cron = strings.TrimSpace(e.Cron)
	e.CallbackURL = strings.TrimSpace(e.CallbackURL)
	e.DeduplicationID = strings.TrimSpace(e.DeduplicationID)
	e.Headers = sanitizeHeaders(e.Headers)
	return e
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateEntry checks that required fields are present.
func validateEntry(e Entry) error {
	if e.ID == "" {
		return errors.New("id is required")
	}
	if e.Destination == "" {
		return fmt.Errorf("destination is required for message %q", e.ID)
	}
	if e.Retries != nil && *e.Retries < 0 {
		return fmt.Errorf("retries must not be negative for message %q", e.ID)
	}
	return nil
}
