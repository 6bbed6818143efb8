package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Severity grades a warning. It is optional: the direct /warn path
// records warnings without one, in which case it stays unset.
type Severity string

const (
	SeverityUnset  Severity = ""
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity converts user input into a Severity. The empty string
// parses to SeverityUnset.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityUnset, SeverityLow, SeverityMedium, SeverityHigh:
		return Severity(s), nil
	}
	return SeverityUnset, fmt.Errorf("unknown severity %q", s)
}

// String implements fmt.Stringer
func (s Severity) String() string {
	if s == SeverityUnset {
		return "unset"
	}
	return string(s)
}

// Value implements driver.Valuer; unset severities are stored as NULL
func (s Severity) Value() (driver.Value, error) {
	if s == SeverityUnset {
		return nil, nil
	}
	return string(s), nil
}

// Scan implements sql.Scanner; NULL scans to SeverityUnset
func (s *Severity) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = SeverityUnset
	case []byte:
		*s = Severity(v)
	case string:
		*s = Severity(v)
	default:
		return fmt.Errorf("cannot scan %T into Severity", src)
	}
	return nil
}

// Warning is one issued warning. Rows are append-only: there is no edit
// or retraction operation anywhere in the system.
type Warning struct {
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	TemplateID int64     `db:"template_id" json:"templateId"`
	IssuedBy   string    `db:"issued_by" json:"issuedBy"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	Severity   Severity  `db:"severity" json:"severity,omitempty"`
	IssuedAt   time.Time `db:"issued_at" json:"issuedAt"`
}

// NotesOrDefault returns the free-text notes, or a placeholder when the
// moderator provided none.
func (w *Warning) NotesOrDefault() string {
	if w.Notes == nil || *w.Notes == "" {
		return "No additional notes provided"
	}
	return *w.Notes
}

// WarningDetail is a Warning joined with the template it was issued from
// and the display name of the issuing moderator, as used by history views.
type WarningDetail struct {
	Warning
	TemplateTitle       string `db:"template_title" json:"templateTitle"`
	TemplateDescription string `db:"template_description" json:"templateDescription"`
	IssuerName          string `db:"issuer_name" json:"issuerName"`
}
