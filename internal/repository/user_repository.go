package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloglist/internal/domain"
)

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id::text, username, name, password_hash, blog_ids::text[]`

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash, &user.Blogs); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var user domain.User
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&user.Blogs,
	); err != nil {
		return nil, mapPgError(err, "user")
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, name, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id::text`

	if err := r.db.QueryRow(ctx, query,
		user.Username,
		user.Name,
		user.PasswordHash,
	).Scan(&user.ID); err != nil {
		return mapPgError(err, "user")
	}
	if user.Blogs == nil {
		user.Blogs = []string{}
	}
	return nil
}

func (r *userRepository) AttachBlog(ctx context.Context, userID, blogID string) error {
	return r.updateBlogs(ctx, `UPDATE users SET blog_ids = array_append(blog_ids, $2::uuid) WHERE id=$1`, userID, blogID)
}

func (r *userRepository) DetachBlog(ctx context.Context, userID, blogID string) error {
	return r.updateBlogs(ctx, `UPDATE users SET blog_ids = array_remove(blog_ids, $2::uuid) WHERE id=$1`, userID, blogID)
}

func (r *userRepository) updateBlogs(ctx context.Context, query, userID, blogID string) error {
	if err := checkUUID(userID); err != nil {
		return err
	}
	if err := checkUUID(blogID); err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, query, userID, blogID)
	if err != nil {
		return mapPgError(err, "user")
	}
	if cmd.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "user")
	}
	return nil
}
