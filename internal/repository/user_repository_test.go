package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bloglist/internal/domain"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

const testUserID = "0b8e7f2c-4d0a-4c55-8f3e-2a9d6c1b7e40"

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("root", "Superuser", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_username_key"})

	err = repo.Create(context.Background(), &domain.User{Username: "root", Name: "Superuser", PasswordHash: "hash"})
	require.Error(t, err)

	failure := apperrors.ToFailure(err)
	assert.Equal(t, apperrors.KindDuplicateKey, failure.Kind)
	assert.Equal(t, "username", failure.Field)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	rows := pgxmock.NewRows([]string{"id", "username", "name", "password_hash", "blog_ids"}).
		AddRow(testUserID, "root", "Superuser", "hash", []string{testBlogID})
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("root").
		WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)
	assert.Equal(t, []string{testBlogID}, user.Blogs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AttachBlogMissingUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	mock.ExpectExec("UPDATE users SET blog_ids").
		WithArgs(testUserID, testBlogID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.AttachBlog(context.Background(), testUserID, testBlogID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConstraintField(t *testing.T) {
	assert.Equal(t, "username", constraintField("users", "users_username_key"))
	assert.Equal(t, "email", constraintField("", "email_key"))
}
