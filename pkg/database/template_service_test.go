package database

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	cerrors "github.com/voidswithin/cipher/pkg/errors"
	"github.com/voidswithin/cipher/pkg/models"
)

// recordingDBTX accepts every statement; tests use it to observe which
// inputs get past validation
type recordingDBTX struct {
	execs int
}

func (d *recordingDBTX) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	d.execs++
	return stubResult{}, nil
}

func (d *recordingDBTX) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sql.ErrNoRows
}

func (d *recordingDBTX) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return nil
}

type stubResult struct{}

func (stubResult) LastInsertId() (int64, error) { return 1, nil }
func (stubResult) RowsAffected() (int64, error) { return 1, nil }

// TestCreateTemplateValidation verifies oversize and empty input is
// rejected before any statement reaches the driver
func TestCreateTemplateValidation(t *testing.T) {
	// nil DBTX: a test failing with a nil dereference means validation
	// let bad input through
	s := &TemplateService{}

	tests := []struct {
		name        string
		title       string
		description string
	}{
		{"empty title", "", "a description"},
		{"blank title", "   ", "a description"},
		{"empty description", "a title", ""},
		{"oversize title", strings.Repeat("x", models.TemplateTitleMaxLen+1), "a description"},
		{"oversize multibyte title", strings.Repeat("é", models.TemplateTitleMaxLen+1), "a description"},
		{"oversize description", "a title", strings.Repeat("x", models.TemplateDescriptionMaxLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateTemplate(context.Background(), tt.title, tt.description, "mod-1")
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !cerrors.IsValidation(err) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}

// TestCreateTemplateCountsCharacters verifies the limits are measured in
// characters: a 100-character title is valid even when its UTF-8
// encoding is longer than 100 bytes
func TestCreateTemplateCountsCharacters(t *testing.T) {
	db := &recordingDBTX{}
	s := &TemplateService{db: db}

	title := strings.Repeat("é", models.TemplateTitleMaxLen)
	if _, err := s.CreateTemplate(context.Background(), title, "a description", "mod-1"); err != nil {
		t.Fatalf("CreateTemplate() = %v, want nil", err)
	}
	if db.execs != 1 {
		t.Fatalf("execs = %d, want the insert to run", db.execs)
	}
}
