package book

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) Begin(ctx context.Context) (Session, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &postgresSession{tx: tx, timeout: r.timeout}, nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// EnsureSchema creates the books table and its indexes when missing.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, postgresSchema)
	return err
}

type postgresSession struct {
	tx      pgx.Tx
	timeout time.Duration
}

func (s *postgresSession) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *postgresSession) List(ctx context.Context, limit, offset int) ([]Book, error) {
	const query = `
		SELECT id, title, author, publication_year
		FROM books
		ORDER BY id
		LIMIT $1 OFFSET $2`

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.tx.Query(timeoutCtx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PublicationYear); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *postgresSession) Count(ctx context.Context) (int, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	var total int
	err := s.tx.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM books").Scan(&total)
	return total, err
}

func (s *postgresSession) FindByID(ctx context.Context, id int64) (Book, error) {
	const query = `
		SELECT id, title, author, publication_year
		FROM books
		WHERE id = $1`
	return s.findOne(ctx, query, id)
}

func (s *postgresSession) FindByTitleAuthor(ctx context.Context, title, author string) (Book, error) {
	const query = `
		SELECT id, title, author, publication_year
		FROM books
		WHERE title = $1 AND author = $2
		ORDER BY id
		LIMIT 1`
	return s.findOne(ctx, query, title, author)
}

func (s *postgresSession) findOne(ctx context.Context, query string, args ...any) (Book, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var b Book
	err := s.tx.QueryRow(timeoutCtx, query, args...).Scan(&b.ID, &b.Title, &b.Author, &b.PublicationYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (s *postgresSession) Insert(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (title, author, publication_year)
		VALUES ($1, $2, $3)
		RETURNING id`

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.tx.QueryRow(timeoutCtx, sql, b.Title, b.Author, b.PublicationYear).Scan(&b.ID)
}

func (s *postgresSession) Update(ctx context.Context, b Book) error {
	const sql = `
		UPDATE books
		SET title = $2, author = $3, publication_year = $4
		WHERE id = $1`

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	tag, err := s.tx.Exec(timeoutCtx, sql, b.ID, b.Title, b.Author, b.PublicationYear)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresSession) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	tag, err := s.tx.Exec(timeoutCtx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresSession) Commit(ctx context.Context) error {
	return s.tx.Commit(ctx)
}

func (s *postgresSession) Rollback(ctx context.Context) error {
	err := s.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}
