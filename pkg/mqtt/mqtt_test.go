package mqtt

import (
	"encoding/json"
	"testing"
	"time"
)

// TestWarningEventJSON verifies the wire shape consumed by dashboard subscribers
func TestWarningEventJSON(t *testing.T) {
	ev := WarningEvent{
		WarningID: 42,
		UserID:    "111",
		IssuedBy:  "222",
		Template:  "Spamming",
		Severity:  "high",
		At:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got["warningId"] != float64(42) {
		t.Errorf("warningId = %v, want 42", got["warningId"])
	}
	if got["userId"] != "111" {
		t.Errorf("userId = %v, want 111", got["userId"])
	}
	if got["severity"] != "high" {
		t.Errorf("severity = %v, want high", got["severity"])
	}
}

// TestWarningEventOmitsEmptyFields verifies optional fields stay off the wire
func TestWarningEventOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(WarningEvent{WarningID: 1, UserID: "111", IssuedBy: "222"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := got["template"]; ok {
		t.Error("template should be omitted when empty")
	}
	if _, ok := got["severity"]; ok {
		t.Error("severity should be omitted when empty")
	}
}

// TestPublishEventOnDisconnectedFeed verifies publishing never panics when the
// broker is unavailable or the feed was never initialized
func TestPublishEventOnDisconnectedFeed(t *testing.T) {
	var ef *EventFeed
	ef.WarningIssued(WarningEvent{WarningID: 1})

	ef = &EventFeed{}
	ef.WarningAcknowledged(WarningEvent{WarningID: 1})
}
