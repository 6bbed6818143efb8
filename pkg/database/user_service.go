package database

import (
	"context"

	cerrors "github.com/voidswithin/cipher/pkg/errors"
)

// UserService maintains the user directory: an upsert-only mirror of
// Discord identities that warnings reference by foreign key.
type UserService struct {
	db DBTX
}

// NewUserService creates a UserService on the global connection
func NewUserService(d *Database) *UserService {
	return &UserService{db: d.DB()}
}

// UpsertUser inserts or refreshes a user row. The call is idempotent and
// last-write-wins; it must happen before any warning referencing the
// user is recorded.
func (s *UserService) UpsertUser(ctx context.Context, id, username, discriminator, avatar string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, discriminator, avatar) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE username = VALUES(username), discriminator = VALUES(discriminator), avatar = VALUES(avatar)`,
		id, username, discriminator, avatar,
	)
	if err != nil {
		return cerrors.NewStorage("upsertUser", err)
	}
	return nil
}
