package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateUploadedPosts, downCreateUploadedPosts)
}

func upCreateUploadedPosts(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE uploaded_posts (
		id SERIAL PRIMARY KEY,
		source_key VARCHAR NOT NULL UNIQUE,
		record_uri VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX idx_uploaded_posts_created_at ON uploaded_posts (created_at);
	`)
	return err
}

func downCreateUploadedPosts(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE uploaded_posts;
	`)
	return err
}
