package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository hands out storage sessions.
type Repository interface {
	Begin(ctx context.Context) (Session, error)
	Ping(ctx context.Context) error
}

// Session is a short-lived transactional handle scoped to one request.
// Rollback after a successful Commit is a no-op.
type Session interface {
	List(ctx context.Context, limit, offset int) ([]Book, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (Book, error)
	FindByTitleAuthor(ctx context.Context, title, author string) (Book, error)
	Insert(ctx context.Context, b *Book) error
	Update(ctx context.Context, b Book) error
	Delete(ctx context.Context, id int64) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
