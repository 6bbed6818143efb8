package models

import "time"

// Length limits for template fields. The command layer enforces these on
// input, and the store rejects oversize values again before writing.
const (
	TemplateTitleMaxLen       = 100
	TemplateDescriptionMaxLen = 1000
)

// WarningTemplate is a reusable, named warning description moderators
// select when issuing a warning. Templates are immutable once created.
type WarningTemplate struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
