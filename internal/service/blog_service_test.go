package service

import (
	"context"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bloglist/internal/events"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

func TestBlogService_CreateAttachesToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "root", "sekret")

	blog, err := f.blogs.Create(ctx, owner, BlogCreateInput{Title: "Go Proverbs", Author: "Rob Pike", URL: "https://go-proverbs.github.io"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, blog.UserID)
	assert.Equal(t, 0, blog.Likes)

	stored, err := f.store.Users().GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{blog.ID}, stored.Blogs)
	assert.Equal(t, []events.EventType{events.EventBlogCreated}, f.dispatcher.types())
}

func TestBlogService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	owner := f.seedUser(t, "root", "sekret")

	_, err := f.blogs.Create(context.Background(), owner, BlogCreateInput{Author: "nobody", URL: "https://example.com"})
	require.Error(t, err)
	failure := apperrors.ToFailure(err)
	assert.Equal(t, apperrors.KindValidationFailed, failure.Kind)
	assert.Equal(t, "Blog validation failed: title: Path `title` is required.", failure.Message)

	blogs, err := f.blogs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestBlogService_UpdateMissingCreatesNothing(t *testing.T) {
	f := newFixture(t)
	title := "ghost"

	_, err := f.blogs.Update(context.Background(), "5a3d5da59070081a82a3445b", BlogUpdateInput{Title: &title})
	require.Error(t, err)
	kind := apperrors.KindOf(err)
	assert.Contains(t, []apperrors.Kind{apperrors.KindNotFound, apperrors.KindMalformattedID}, kind)

	blogs, err := f.blogs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestBlogService_UpdateKeepsAbsentFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "root", "sekret")
	blog, err := f.blogs.Create(ctx, owner, BlogCreateInput{Title: "t", Author: "a", URL: "u", Likes: 3})
	require.NoError(t, err)

	likes := 10
	updated, err := f.blogs.Update(ctx, blog.ID, BlogUpdateInput{Likes: &likes})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Likes)
	assert.Equal(t, "t", updated.Title)
	assert.Equal(t, owner.ID, updated.UserID)
}

func TestBlogService_DeleteByOtherUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "root", "sekret")
	other := f.seedUser(t, "mallory", "sekret")
	blog, err := f.blogs.Create(ctx, owner, BlogCreateInput{Title: "t", URL: "u"})
	require.NoError(t, err)

	err = f.blogs.Delete(ctx, other, blog.ID)
	require.Error(t, err)
	status, body, handled := apperrors.Translate(err)
	require.True(t, handled)
	assert.Equal(t, 401, status)
	assert.Equal(t, "User unauthorized to delete blog", body.Error)

	_, err = f.blogs.Get(ctx, blog.ID)
	assert.NoError(t, err)
}

func TestBlogService_DeleteByOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "root", "sekret")
	blog, err := f.blogs.Create(ctx, owner, BlogCreateInput{Title: "t", URL: "u"})
	require.NoError(t, err)

	require.NoError(t, f.blogs.Delete(ctx, owner, blog.ID))

	_, err = f.blogs.Get(ctx, blog.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	stored, err := f.store.Users().GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Blogs)

	err = f.blogs.Delete(ctx, owner, blog.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestBlogService_DeleteEventUsesStoredID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "root", "sekret")
	blog, err := f.blogs.Create(ctx, owner, BlogCreateInput{Title: "t", URL: "u"})
	require.NoError(t, err)

	// the caller's id string is backed by a buffer it reuses afterwards
	raw := []byte(blog.ID)
	require.NoError(t, f.blogs.Delete(ctx, owner, utils.UnsafeString(raw)))
	copy(raw, strings.Repeat("z", len(raw)))

	last := f.dispatcher.events[len(f.dispatcher.events)-1]
	assert.Equal(t, events.EventBlogDeleted, last.Type)
	assert.Equal(t, blog.ID, last.SubjectID)
}
