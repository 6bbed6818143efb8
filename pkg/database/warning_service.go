package database

import (
	"context"
	"database/sql"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	cerrors "github.com/voidswithin/cipher/pkg/errors"
	"github.com/voidswithin/cipher/pkg/models"
)

// WarningService is the append-only log of issued warnings
type WarningService struct {
	db DBTX
}

// NewWarningService creates a WarningService on the global connection
func NewWarningService(d *Database) *WarningService {
	return &WarningService{db: d.DB()}
}

// RecordWarning appends one warning and returns its id. Both userID and
// issuedBy must already exist in the user directory; callers upsert them
// first. A missing template is a ReferenceError, anything else a
// StorageError.
func (s *WarningService) RecordWarning(ctx context.Context, userID string, templateID int64, issuedBy string, notes *string, severity models.Severity) (int64, error) {
	var exists int64
	err := s.db.GetContext(ctx, &exists, "SELECT id FROM warning_templates WHERE id = ?", templateID)
	if err != nil {
		if pkgerrors.Is(err, sql.ErrNoRows) {
			return 0, cerrors.NewReference("template", strconv.FormatInt(templateID, 10))
		}
		return 0, cerrors.NewStorage("recordWarning", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO user_warnings (user_id, template_id, issued_by, notes, severity) VALUES (?, ?, ?, ?, ?)",
		userID, templateID, issuedBy, notes, severity,
	)
	if err != nil {
		return 0, cerrors.NewStorage("recordWarning", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, cerrors.NewStorage("recordWarning", err)
	}
	return id, nil
}

// ListWarningsForUser returns a user's warnings joined with template
// details and issuer display name, newest first.
func (s *WarningService) ListWarningsForUser(ctx context.Context, userID string) ([]models.WarningDetail, error) {
	warnings := make([]models.WarningDetail, 0)
	err := s.db.SelectContext(ctx, &warnings, `
		SELECT uw.id, uw.user_id, uw.template_id, uw.issued_by, uw.notes, uw.severity, uw.issued_at,
		       wt.title AS template_title, wt.description AS template_description,
		       u.username AS issuer_name
		FROM user_warnings uw
		JOIN warning_templates wt ON uw.template_id = wt.id
		JOIN users u ON uw.issued_by = u.id
		WHERE uw.user_id = ?
		ORDER BY uw.issued_at DESC, uw.id DESC`,
		userID,
	)
	if err != nil {
		return nil, cerrors.NewStorage("listWarningsForUser", err)
	}
	return warnings, nil
}

// CountWarningsForUser returns how many warnings a user has accumulated
func (s *WarningService) CountWarningsForUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM user_warnings WHERE user_id = ?", userID)
	if err != nil {
		return 0, cerrors.NewStorage("countWarningsForUser", err)
	}
	return count, nil
}
