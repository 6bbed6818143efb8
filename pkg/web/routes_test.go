package web

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	cerrors "github.com/voidswithin/cipher/pkg/errors"
)

// The template insert surfaces an unknown creator as MySQL error 1452
// wrapped in the storage error chain; the handler must recognize it
// through the wrapping and answer 422 instead of 500.
func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			"fk violation wrapped in storage error",
			cerrors.NewStorage("createTemplate", &mysql.MySQLError{
				Number:  1452,
				Message: "Cannot add or update a child row: a foreign key constraint fails",
			}),
			true,
		},
		{
			"bare fk violation",
			&mysql.MySQLError{Number: 1452},
			true,
		},
		{
			"other mysql error",
			cerrors.NewStorage("createTemplate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}),
			false,
		},
		{
			"non-mysql error",
			cerrors.NewStorage("createTemplate", errors.New("connection refused")),
			false,
		},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isForeignKeyViolation(tt.err); got != tt.want {
				t.Errorf("isForeignKeyViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
