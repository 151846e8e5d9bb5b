package qstash

import (
	"strconv"
	"strings"
)

// Header names understood by the QStash API for publish-time options.
const (
	headerDelay    = "Upstash-Delay"
	headerRetries  = "Upstash-Retries"
	headerCron     = "Upstash-Cron"
	headerCallback = "Upstash-Callback"
	headerDedupID  = "Upstash-Deduplication-Id"
)

// MessageSettings carries the optional publish-time options. The zero value
// (or a nil pointer) publishes with the server defaults for everything.
type MessageSettings struct {
	// Delay postpones delivery relative to publish time. The format is
	// (number)(unit): "10s", "30m", "2h", "7d".
	Delay string

	// Retries caps how often QStash retries delivery to the destination.
	// Nil keeps the server default; an explicit 0 disables retries.
	Retries *int

	// Cron registers a recurring schedule instead of a one-shot delivery.
	// Expressions are evaluated in UTC.
	Cron string

	// CallbackURL asks QStash to POST the destination's eventual response
	// to this URL instead of making the caller wait for it.
	CallbackURL string

	// DeduplicationID makes QStash accept but not enqueue a message it has
	// already seen under the same id, so publishes can be retried safely.
	DeduplicationID string

	// Headers are forwarded to the destination verbatim. They cannot
	// override the request's own Authorization or Content-Type.
	Headers map[string]string
}

// headers renders the settings as HTTP request headers. Unset fields emit
// no header at all so the server defaults stay in effect.
func (s *MessageSettings) headers() map[string]string {
	if s == nil {
		return nil
	}

	out := make(map[string]string, len(s.Headers)+5)
	for k, v := range s.Headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}

	if s.Delay != "" {
		out[headerDelay] = s.Delay
	}
	if s.Retries != nil {
		out[headerRetries] = strconv.Itoa(*s.Retries)
	}
	if s.Cron != "" {
		out[headerCron] = s.Cron
	}
	if s.CallbackURL != "" {
		out[headerCallback] = s.CallbackURL
	}
	if s.DeduplicationID != "" {
		out[headerDedupID] = s.DeduplicationID
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
