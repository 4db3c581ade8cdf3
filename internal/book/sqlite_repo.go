package book

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepo stores books in a SQLite database file.
type SQLiteRepo struct {
	db *sql.DB
}

// OpenSQLite opens (and creates, if needed) the database at path.
func OpenSQLite(path string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY between sessions.
	db.SetMaxOpenConns(1)
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Begin(ctx context.Context) (Session, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteSession{tx: tx}, nil
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, sqliteSchema)
	return err
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

type sqliteSession struct {
	tx *sql.Tx
}

func (s *sqliteSession) List(ctx context.Context, limit, offset int) ([]Book, error) {
	const query = `
		SELECT id, title, author, publication_year
		FROM books
		ORDER BY id
		LIMIT ? OFFSET ?`

	rows, err := s.tx.QueryContext(ctx, query, limit, offset)
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

func (s *sqliteSession) Count(ctx context.Context) (int, error) {
	var total int
	err := s.tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&total)
	return total, err
}

func (s *sqliteSession) FindByID(ctx context.Context, id int64) (Book, error) {
	const query = `
		SELECT id, title, author, publication_year
		FROM books
		WHERE id = ?`
	return s.findOne(ctx, query, id)
}

func (s *sqliteSession) FindByTitleAuthor(ctx context.Context, title, author string) (Book, error) {
	const query = `
		SELECT id, title, author, publication_year
		FROM books
		WHERE title = ? AND author = ?
		ORDER BY id
		LIMIT 1`
	return s.findOne(ctx, query, title, author)
}

func (s *sqliteSession) findOne(ctx context.Context, query string, args ...any) (Book, error) {
	var b Book
	err := s.tx.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.Title, &b.Author, &b.PublicationYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (s *sqliteSession) Insert(ctx context.Context, b *Book) error {
	res, err := s.tx.ExecContext(ctx,
		"INSERT INTO books (title, author, publication_year) VALUES (?, ?, ?)",
		b.Title, b.Author, b.PublicationYear,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (s *sqliteSession) Update(ctx context.Context, b Book) error {
	res, err := s.tx.ExecContext(ctx,
		"UPDATE books SET title = ?, author = ?, publication_year = ? WHERE id = ?",
		b.Title, b.Author, b.PublicationYear, b.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *sqliteSession) Delete(ctx context.Context, id int64) error {
	res, err := s.tx.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *sqliteSession) Commit(_ context.Context) error {
	return s.tx.Commit()
}

func (s *sqliteSession) Rollback(_ context.Context) error {
	err := s.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
