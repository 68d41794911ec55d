package store

import (
	"context"

	"github.com/ayodele/storefront/auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id TEXT NOT NULL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	phone_number TEXT,
	password_hash TEXT NOT NULL,
	user_role TEXT NOT NULL DEFAULT 'user',
	banned BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	deleted_at TIMESTAMP
);`,
	`CREATE TABLE IF NOT EXISTS products (
	id TEXT NOT NULL PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users (id),
	name TEXT NOT NULL,
	description TEXT,
	quantity INTEGER NOT NULL DEFAULT 0,
	price INTEGER NOT NULL DEFAULT 0,
	media_urls TEXT,
	approved BOOLEAN,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	deleted_at TIMESTAMP
);`,
	`CREATE INDEX IF NOT EXISTS idx_products_user_id ON products (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_products_approved ON products (approved);`,
}

// Migrate applies the schema. Statements are idempotent so startup can
// run this unconditionally.
func Migrate(ctx context.Context, db *bun.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "migration failed")
		}
	}
	return nil
}

// SuperAdminSeed configures the bootstrap superadmin account
type SuperAdminSeed struct {
	Name     string
	Email    string
	Password string
}

func (s SuperAdminSeed) IsZero() bool {
	return s.Email == "" || s.Password == ""
}

// SeedSuperAdmin ensures the superadmin account exists. Re-running
// with the same seed is a no-op.
func SeedSuperAdmin(ctx context.Context, users Users, seed SuperAdminSeed) error {
	if seed.IsZero() {
		return nil
	}

	existing, err := users.GetByEmail(ctx, seed.Email)
	if err == nil && existing != nil {
		return nil
	}
	if err != nil && !goerrors.IsNotFound(err) {
		return err
	}

	hash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return err
	}

	name := seed.Name
	if name == "" {
		name = "Super Admin"
	}

	_, err = users.Register(ctx, &User{
		Name:         name,
		Email:        seed.Email,
		PasswordHash: hash,
		Role:         auth.RoleSuperAdmin,
	})
	return err
}
