// Package repo contains the Postgres adapters for the storage ports defined
// in src/core/ports. Queries use pgx directly; row absence maps to
// domain.ErrNotFound and unique violations to domain.ErrAlreadyExists so the
// core never sees driver errors.
package repo
