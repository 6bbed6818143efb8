package errors

import (
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
)

func TestClassificationHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", NewValidation("title", "must not be empty"), IsValidation},
		{"reference", NewReference("template", "42"), IsReference},
		{"storage", NewStorage("recordWarning", pkgerrors.New("connection refused")), IsStorage},
		{"delivery", NewDelivery("123", pkgerrors.New("cannot send messages to this user")), IsDelivery},
		{"permission", NewPermission("999"), IsPermission},
		{"timeout", NewTimeout("SelectingTemplate", 60*time.Second), IsTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("classification helper did not match its own error: %v", tt.err)
			}
			if tt.err.Error() == "" {
				t.Error("Error() returned empty string")
			}
		})
	}
}

func TestClassificationThroughWrapping(t *testing.T) {
	err := pkgerrors.Wrap(NewReference("template", "7"), "selecting template")

	if !IsReference(err) {
		t.Error("IsReference should see through pkg/errors wrapping")
	}
	if IsStorage(err) {
		t.Error("IsStorage should not match a wrapped ReferenceError")
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := pkgerrors.New("duplicate entry")
	err := NewStorage("createTemplate", cause)

	storage, ok := err.(*StorageError)
	if !ok {
		t.Fatalf("NewStorage returned %T, want *StorageError", err)
	}
	if storage.Unwrap() != cause {
		t.Error("Unwrap() did not return the original cause")
	}
}
