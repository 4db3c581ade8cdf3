package book

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog/internal/metrics"
)

// Service provides the catalog operations. Every call runs in its own session.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns up to limit books, skipping page-1 rows.
func (s *Service) List(ctx context.Context, page, limit int) (result Page, err error) {
	defer func() { metrics.IncBookOperation("list", outcome(err)) }()

	if page < 1 || limit < 1 {
		return Page{}, ErrInvalidPage
	}

	sess, err := s.repo.Begin(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("begin session: %w", err)
	}
	defer sess.Rollback(ctx)

	// The offset counts rows, not pages: page 2 skips a single row.
	books, err := sess.List(ctx, limit, page-1)
	if err != nil {
		return Page{}, fmt.Errorf("list books: %w", err)
	}
	total, err := sess.Count(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("count books: %w", err)
	}
	metrics.SetBooks(total)

	if len(books) == 0 {
		return Page{}, ErrNoBooks
	}
	if err := sess.Commit(ctx); err != nil {
		return Page{}, fmt.Errorf("commit: %w", err)
	}

	return Page{
		Page:       page,
		Limit:      limit,
		TotalBooks: total,
		Books:      books,
	}, nil
}

// Create stores a new book unless one with the same title and author exists.
func (s *Service) Create(ctx context.Context, in Input) (created Book, err error) {
	defer func() { metrics.IncBookOperation("create", outcome(err)) }()

	b, err := in.Book()
	if err != nil {
		return Book{}, err
	}

	sess, err := s.repo.Begin(ctx)
	if err != nil {
		return Book{}, fmt.Errorf("begin session: %w", err)
	}
	defer sess.Rollback(ctx)

	_, err = sess.FindByTitleAuthor(ctx, b.Title, b.Author)
	switch {
	case err == nil:
		return Book{}, ErrAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return Book{}, fmt.Errorf("find duplicate: %w", err)
	}

	if err := sess.Insert(ctx, &b); err != nil {
		return Book{}, fmt.Errorf("insert book: %w", err)
	}
	if err := sess.Commit(ctx); err != nil {
		return Book{}, fmt.Errorf("commit: %w", err)
	}
	return b, nil
}

// Update replaces title, author and publication year of the book with the given id.
func (s *Service) Update(ctx context.Context, id int64, in Input) (updated Book, err error) {
	defer func() { metrics.IncBookOperation("update", outcome(err)) }()

	b, err := in.Book()
	if err != nil {
		return Book{}, err
	}
	b.ID = id

	sess, err := s.repo.Begin(ctx)
	if err != nil {
		return Book{}, fmt.Errorf("begin session: %w", err)
	}
	defer sess.Rollback(ctx)

	if _, err := sess.FindByID(ctx, id); err != nil {
		return Book{}, err
	}
	if err := sess.Update(ctx, b); err != nil {
		return Book{}, fmt.Errorf("update book %d: %w", id, err)
	}
	if err := sess.Commit(ctx); err != nil {
		return Book{}, fmt.Errorf("commit: %w", err)
	}
	return b, nil
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { metrics.IncBookOperation("delete", outcome(err)) }()

	sess, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	defer sess.Rollback(ctx)

	if _, err := sess.FindByID(ctx, id); err != nil {
		return err
	}
	if err := sess.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if err := sess.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidPage), errors.Is(err, ErrIncompleteInput):
		return "invalid"
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoBooks):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "conflict"
	default:
		return "error"
	}
}
