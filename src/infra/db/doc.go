// Package db provides database connection management for PostgreSQL.
// It uses pgx as the database driver and goose for embedded schema
// migrations, applied at startup.
package db
