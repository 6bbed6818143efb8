package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/pkg/errors"

	cerrors "github.com/voidswithin/cipher/pkg/errors"
	"github.com/voidswithin/cipher/pkg/models"
)

// TemplateService is the persistent catalog of warning templates.
// Templates are created by moderators and only ever read afterwards.
type TemplateService struct {
	db DBTX
}

// NewTemplateService creates a TemplateService on the global connection
func NewTemplateService(d *Database) *TemplateService {
	return &TemplateService{db: d.DB()}
}

// CreateTemplate validates and stores a new template, returning its id.
// The command layer already bounds the input, but oversize values are
// rejected here again before they reach the driver.
func (s *TemplateService) CreateTemplate(ctx context.Context, title, description, createdBy string) (int64, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	switch {
	case title == "":
		return 0, cerrors.NewValidation("title", "must not be empty")
	case utf8.RuneCountInString(title) > models.TemplateTitleMaxLen:
		return 0, cerrors.NewValidation("title", "exceeds 100 characters")
	case description == "":
		return 0, cerrors.NewValidation("description", "must not be empty")
	case utf8.RuneCountInString(description) > models.TemplateDescriptionMaxLen:
		return 0, cerrors.NewValidation("description", "exceeds 1000 characters")
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO warning_templates (title, description, created_by) VALUES (?, ?, ?)",
		title, description, createdBy,
	)
	if err != nil {
		return 0, cerrors.NewStorage("createTemplate", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, cerrors.NewStorage("createTemplate", err)
	}
	return id, nil
}

// ListTemplates returns all templates ordered by id ascending. An empty
// catalog is a valid, non-error result.
func (s *TemplateService) ListTemplates(ctx context.Context) ([]models.WarningTemplate, error) {
	templates := make([]models.WarningTemplate, 0)
	err := s.db.SelectContext(ctx, &templates,
		"SELECT id, title, description, created_by, created_at FROM warning_templates ORDER BY id ASC")
	if err != nil {
		return nil, cerrors.NewStorage("listTemplates", err)
	}
	return templates, nil
}

// GetTemplate fetches a single template by id
func (s *TemplateService) GetTemplate(ctx context.Context, id int64) (*models.WarningTemplate, error) {
	var template models.WarningTemplate
	err := s.db.GetContext(ctx, &template,
		"SELECT id, title, description, created_by, created_at FROM warning_templates WHERE id = ?", id)
	if err != nil {
		if pkgerrors.Is(err, sql.ErrNoRows) {
			return nil, cerrors.NewReference("template", strconv.FormatInt(id, 10))
		}
		return nil, cerrors.NewStorage("getTemplate", err)
	}
	return &template, nil
}
