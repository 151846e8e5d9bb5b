package qstash

import (
	"reflect"
	"testing"
)

func TestMessageSettingsNilEmitsNoHeaders(t *testing.T) {
	var s *MessageSettings
	if got := s.headers(); got != nil {
		t.Fatalf("expected nil headers, got %v", got)
	}
}

func TestMessageSettingsZeroValueEmitsNoHeaders(t *testing.T) {
	if got := (&MessageSettings{}).headers(); got != nil {
		t.Fatalf("expected nil headers, got %v", got)
	}
}

func TestMessageSettingsRendersOnlySetFields(t *testing.T) {
	got := (&MessageSettings{Delay: "7d", DeduplicationID: "once"}).headers()
	want := map[string]string{
		"Upstash-Delay":            "7d",
		"Upstash-Deduplication-Id": "once",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("headers: got %v want %v", got, want)
	}
}

func TestMessageSettingsExplicitZeroRetries(t *testing.T) {
	zero := 0
	got := (&MessageSettings{Retries: &zero}).headers()
	if got["Upstash-Retries"] != "0" {
		t.Fatalf("expected Upstash-Retries 0, got %v", got)
	}
}

func TestMessageSettingsDropsBlankForwardedHeaders(t *testing.T) {
	got := (&MessageSettings{Headers: map[string]string{
		"X-Keep":  "v",
		"  ":      "v",
		"X-Empty": "  ",
	}}).headers()
	want := map[string]string{"X-Keep": "v"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("headers: got %v want %v", got, want)
	}
}
