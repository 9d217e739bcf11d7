package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"jokeboard/src/core/domain"
	"jokeboard/src/core/ports"
	"jokeboard/src/infra/db"
)

// PostgresRepository implements IdentityStore and JokeStore using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var (
	_ ports.IdentityStore = (*PostgresRepository)(nil)
	_ ports.JokeStore     = (*PostgresRepository)(nil)
)

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Users

func (r *PostgresRepository) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	const q = `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, created_at, updated_at
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, uuid.New(), username, passwordHash).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewAlreadyExistsError("username already taken")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	const q = `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, userID).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

// Jokes

func (r *PostgresRepository) CreateJoke(ctx context.Context, name, content string, ownerID uuid.UUID) (*domain.Joke, error) {
	const q = `
		INSERT INTO jokes (id, name, content, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, content, owner_id, created_at, updated_at
	`
	var j domain.Joke
	err := r.pool.QueryRow(ctx, q, uuid.New(), name, content, ownerID).Scan(
		&j.ID, &j.Name, &j.Content, &j.OwnerID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *PostgresRepository) GetJoke(ctx context.Context, jokeID uuid.UUID) (*domain.Joke, error) {
	const q = `
		SELECT id, name, content, owner_id, created_at, updated_at
		FROM jokes
		WHERE id = $1
	`
	var j domain.Joke
	if err := r.pool.QueryRow(ctx, q, jokeID).Scan(
		&j.ID, &j.Name, &j.Content, &j.OwnerID, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, err
	}
	return &j, nil
}

func (r *PostgresRepository) ListJokes(ctx context.Context, page, perPage int) ([]domain.Joke, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM jokes`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `
		SELECT id, name, content, owner_id, created_at, updated_at
		FROM jokes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jokes []domain.Joke
	for rows.Next() {
		var j domain.Joke
		if err := rows.Scan(&j.ID, &j.Name, &j.Content, &j.OwnerID, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, 0, err
		}
		jokes = append(jokes, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jokes, total, nil
}

func (r *PostgresRepository) RandomJoke(ctx context.Context) (*domain.Joke, error) {
	// ORDER BY random() is fine at this table size; revisit if jokes ever
	// number in the millions.
	const q = `
		SELECT id, name, content, owner_id, created_at, updated_at
		FROM jokes
		ORDER BY random()
		LIMIT 1
	`
	var j domain.Joke
	if err := r.pool.QueryRow(ctx, q).Scan(
		&j.ID, &j.Name, &j.Content, &j.OwnerID, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, err
	}
	return &j, nil
}

func (r *PostgresRepository) DeleteJoke(ctx context.Context, jokeID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jokes WHERE id = $1`, jokeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("joke")
	}
	return nil
}
