package data

import (
	"context"
	"database/sql"
	"fmt"
)

const booksSchema = `
CREATE TABLE IF NOT EXISTS books (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(500) NOT NULL,
	author VARCHAR(300) NOT NULL,
	year INTEGER,
	genre VARCHAR(100),
	pages INTEGER,
	price NUMERIC(10, 2),
	isbn VARCHAR(20),
	description TEXT,
	created_at TIMESTAMP(0) WITH TIME ZONE NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP(0) WITH TIME ZONE NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the books table if it does not already exist.
// Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, booksSchema); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}
