package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/domain"
	"github.com/spec-kit/bloglist/internal/events"
	"github.com/spec-kit/bloglist/internal/repository"
	"github.com/spec-kit/bloglist/internal/validation"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

const unauthorizedDeleteMessage = "User unauthorized to delete blog"

// BlogCreateInput describes a new post.
type BlogCreateInput struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url" validate:"required"`
	Likes  int    `json:"likes"`
}

// BlogUpdateInput lists the fields a PUT may replace. Absent fields keep their stored value.
type BlogUpdateInput struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// BlogService coordinates blog workflows.
type BlogService struct {
	blogs      repository.BlogRepository
	users      repository.UserRepository
	validator  *validation.Validator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// BlogDependencies bundles collaborators for the blog service.
type BlogDependencies struct {
	BlogRepo   repository.BlogRepository
	UserRepo   repository.UserRepository
	Validator  *validation.Validator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewBlogService builds the service.
func NewBlogService(deps BlogDependencies) *BlogService {
	return &BlogService{
		blogs:      deps.BlogRepo,
		users:      deps.UserRepo,
		validator:  deps.Validator,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns every post.
func (s *BlogService) List(ctx context.Context) ([]domain.Blog, error) {
	return s.blogs.List(ctx)
}

// Get returns one post.
func (s *BlogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	return s.blogs.GetByID(ctx, id)
}

// Create stores a post owned by owner and appends it to the owner's list.
func (s *BlogService) Create(ctx context.Context, owner *domain.User, input BlogCreateInput) (*domain.Blog, error) {
	if err := s.validator.Struct("Blog", input); err != nil {
		return nil, err
	}

	blog := &domain.Blog{
		Title:  input.Title,
		Author: input.Author,
		URL:    input.URL,
		Likes:  input.Likes,
		UserID: owner.ID,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}

	if err := s.users.AttachBlog(ctx, owner.ID, blog.ID); err != nil {
		if delErr := s.blogs.Delete(ctx, blog.ID); delErr != nil {
			s.logger.Error("orphaned blog after attach failure", zap.String("blog_id", blog.ID), zap.Error(delErr))
		}
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventBlogCreated, blog.ID,
		events.Actor{UserID: owner.ID, Username: owner.Username}, blogPayload(blog)))
	return blog, nil
}

// Update replaces the supplied fields of an existing post. A missing post is NotFound and
// nothing is created.
func (s *BlogService) Update(ctx context.Context, id string, input BlogUpdateInput) (*domain.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Author != nil {
		blog.Author = *input.Author
	}
	if input.URL != nil {
		blog.URL = *input.URL
	}
	if input.Likes != nil {
		blog.Likes = *input.Likes
	}

	updated, err := s.blogs.Update(ctx, blog)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventBlogUpdated, updated.ID, events.Actor{}, blogPayload(updated)))
	return updated, nil
}

// Delete removes a post owned by caller. Anyone else gets Unauthorized and the post stays.
func (s *BlogService) Delete(ctx context.Context, caller *domain.User, id string) error {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !blog.OwnedBy(caller.ID) {
		return apperrors.NewUnauthorized(unauthorizedDeleteMessage)
	}

	if err := s.blogs.Delete(ctx, blog.ID); err != nil {
		return err
	}
	if err := s.users.DetachBlog(ctx, caller.ID, blog.ID); err != nil {
		s.logger.Warn("detach deleted blog from owner", zap.String("blog_id", blog.ID), zap.Error(err))
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventBlogDeleted, blog.ID,
		events.Actor{UserID: caller.ID, Username: caller.Username}, events.BlogDeletedPayload{OwnerID: blog.UserID}))
	return nil
}

func blogPayload(b *domain.Blog) events.BlogPayload {
	return events.BlogPayload{Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes}
}
