package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/bloglist/internal/domain"
)

// UserRepository defines persistence access for users.
// Known failures come back as *util.Failure: NotFound, MalformattedID, DuplicateKey.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	AttachBlog(ctx context.Context, userID, blogID string) error
	DetachBlog(ctx context.Context, userID, blogID string) error
}

// BlogRepository defines persistence access for blog posts.
type BlogRepository interface {
	List(ctx context.Context) ([]domain.Blog, error)
	GetByID(ctx context.Context, id string) (*domain.Blog, error)
	Create(ctx context.Context, blog *domain.Blog) error
	// Update replaces the editable fields of an existing post and returns the stored result.
	// A missing post is NotFound and nothing is created.
	Update(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

// DBTX is the part of *pgxpool.Pool the Postgres repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
