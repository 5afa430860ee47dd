package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/bloglist/internal/auth"
	"github.com/spec-kit/bloglist/internal/domain"
	"github.com/spec-kit/bloglist/internal/events"
	"github.com/spec-kit/bloglist/internal/repository"
	"github.com/spec-kit/bloglist/internal/validation"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordingDispatcher) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store      *repository.MemoryStore
	dispatcher *recordingDispatcher
	users      *UserService
	blogs      *BlogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	dispatcher := &recordingDispatcher{}
	v := validation.New()
	logger := zap.NewNop()

	return &fixture{
		store:      store,
		dispatcher: dispatcher,
		users: NewUserService(UserDependencies{
			UserRepo:   store.Users(),
			Validator:  v,
			Dispatcher: dispatcher,
			BcryptCost: bcrypt.MinCost,
			Logger:     logger,
		}),
		blogs: NewBlogService(BlogDependencies{
			BlogRepo:   store.Blogs(),
			UserRepo:   store.Users(),
			Validator:  v,
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
	}
}

func (f *fixture) seedUser(t *testing.T, username, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Username: username, Name: username, PasswordHash: hash, Blogs: []string{}}
	require.NoError(t, f.store.Users().Create(context.Background(), user))
	return user
}
