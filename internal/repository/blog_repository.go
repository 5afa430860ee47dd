package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloglist/internal/domain"
)

type blogRepository struct {
	db DBTX
}

// NewBlogRepository returns a Postgres-backed implementation.
func NewBlogRepository(db DBTX) BlogRepository {
	return &blogRepository{db: db}
}

const blogColumns = `id::text, title, author, url, likes, COALESCE(user_id::text, '')`

func scanBlog(row pgx.Row) (*domain.Blog, error) {
	var blog domain.Blog
	if err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.UserID,
	); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context) ([]domain.Blog, error) {
	rows, err := r.db.Query(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := make([]domain.Blog, 0)
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}
	return blogs, rows.Err()
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	blog, err := scanBlog(r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id=$1`, id))
	if err != nil {
		return nil, mapPgError(err, "blog")
	}
	return blog, nil
}

func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	const query = `
        INSERT INTO blogs (title, author, url, likes, user_id)
        VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid)
        RETURNING id::text`

	if err := r.db.QueryRow(ctx, query,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.UserID,
	).Scan(&blog.ID); err != nil {
		return mapPgError(err, "blog")
	}
	return nil
}

func (r *blogRepository) Update(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	if err := checkUUID(blog.ID); err != nil {
		return nil, err
	}
	const query = `
        UPDATE blogs SET title=$1, author=$2, url=$3, likes=$4
        WHERE id=$5
        RETURNING ` + blogColumns

	updated, err := scanBlog(r.db.QueryRow(ctx, query,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.ID,
	))
	if err != nil {
		return nil, mapPgError(err, "blog")
	}
	return updated, nil
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err, "blog")
	}
	if cmd.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "blog")
	}
	return nil
}
