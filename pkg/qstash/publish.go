package qstash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// PublishResult is the API acknowledgement for a published message.
// Unknown response fields are ignored for forward compatibility.
type PublishResult struct {
	// MessageID identifies the accepted message on the QStash side.
	MessageID string `json:"messageId"`
	// ScheduleID is set when the publish registered a cron schedule.
	ScheduleID string `json:"scheduleId,omitempty"`
}

// apiErrorBody is the error envelope QStash returns on failed requests.
type apiErrorBody struct {
	Error string `json:"error"`
}

// PublishJSON publishes a JSON-encoded message to a destination URL or
// topic name. Settings may be nil for server defaults. Exactly one network
// call is made per invocation; there is no retrying, caching, or
// deduplication at this layer. Failures come back as *TransportError (no
// response obtained), *APIError (non-2xx status), or *DecodeError (2xx with
// an unparseable body).
func (c *Client) PublishJSON(ctx context.Context, destination string, payload any, settings *MessageSettings) (*PublishResult, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, ErrEmptyDestination
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	// Auth and content type are set after the option headers so forwarded
	// headers cannot clobber them.
	headers := settings.headers()
	if headers == nil {
		headers = make(map[string]string, 2)
	}
	headers["Authorization"] = "Bearer " + c.token
	headers["Content-Type"] = "application/json"

	endpoint := c.baseURL + "publish/" + destination

	c.log.Debugw("publishing message", "destination", destination, "bytes", len(body))

	resp, err := c.http.Post(ctx, endpoint, headers, body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return nil, newAPIError(status, resp.Body())
	}

	var result PublishResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &DecodeError{Err: err, Body: bodySnippet(resp.Body())}
	}

	c.log.Debugw("message published", "destination", destination, "message_id", result.MessageID)
	return &result, nil
}

// newAPIError maps a non-2xx response to an APIError, preferring the
// server-provided message and falling back to the generic status text when
// the body is empty or not the expected JSON envelope.
func newAPIError(status int, body []byte) *APIError {
	var envelope apiErrorBody
	if len(body) > 0 {
		if err := json.Unmarshal(body, &envelope); err != nil {
			envelope.Error = ""
		}
	}

	msg := strings.TrimSpace(envelope.Error)
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "unexpected status"
	}

	return &APIError{StatusCode: status, Message: msg}
}

func bodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
