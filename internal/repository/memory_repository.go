package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/bloglist/internal/domain"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

// MemoryStore keeps users and blogs in process memory. It enforces the same id shape
// and username uniqueness as the real stores, so it can stand in for them in tests
// and local runs.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]domain.User
	userOrder []string
	blogs     map[string]domain.Blog
	blogOrder []string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]domain.User),
		blogs: make(map[string]domain.Blog),
	}
}

// Users exposes the store as a UserRepository.
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }

// Blogs exposes the store as a BlogRepository.
func (s *MemoryStore) Blogs() BlogRepository { return memoryBlogs{s} }

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) List(context.Context) ([]domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]domain.User, 0, len(m.s.userOrder))
	for _, id := range m.s.userOrder {
		out = append(out, copyUser(m.s.users[id]))
	}
	return out, nil
}

func (m memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	user, ok := m.s.users[id]
	if !ok {
		return nil, apperrors.NewNotFound("user")
	}
	out := copyUser(user)
	return &out, nil
}

func (m memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, id := range m.s.userOrder {
		if user := m.s.users[id]; user.Username == username {
			out := copyUser(user)
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFound("user")
}

func (m memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.users {
		if existing.Username == user.Username {
			return apperrors.NewDuplicateKey("username", nil)
		}
	}
	user.ID = uuid.NewString()
	if user.Blogs == nil {
		user.Blogs = []string{}
	}
	m.s.users[user.ID] = copyUser(*user)
	m.s.userOrder = append(m.s.userOrder, user.ID)
	return nil
}

func (m memoryUsers) AttachBlog(_ context.Context, userID, blogID string) error {
	return m.update(userID, blogID, func(u *domain.User) {
		u.Blogs = append(u.Blogs, blogID)
	})
}

func (m memoryUsers) DetachBlog(_ context.Context, userID, blogID string) error {
	return m.update(userID, blogID, func(u *domain.User) {
		kept := u.Blogs[:0]
		for _, id := range u.Blogs {
			if id != blogID {
				kept = append(kept, id)
			}
		}
		u.Blogs = kept
	})
}

func (m memoryUsers) update(userID, blogID string, fn func(*domain.User)) error {
	if err := checkUUID(userID); err != nil {
		return err
	}
	if err := checkUUID(blogID); err != nil {
		return err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	user, ok := m.s.users[userID]
	if !ok {
		return apperrors.NewNotFound("user")
	}
	user = copyUser(user)
	fn(&user)
	m.s.users[userID] = user
	return nil
}

type memoryBlogs struct{ s *MemoryStore }

func (m memoryBlogs) List(context.Context) ([]domain.Blog, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]domain.Blog, 0, len(m.s.blogOrder))
	for _, id := range m.s.blogOrder {
		out = append(out, m.s.blogs[id])
	}
	return out, nil
}

func (m memoryBlogs) GetByID(_ context.Context, id string) (*domain.Blog, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	blog, ok := m.s.blogs[id]
	if !ok {
		return nil, apperrors.NewNotFound("blog")
	}
	return &blog, nil
}

func (m memoryBlogs) Create(_ context.Context, blog *domain.Blog) error {
	if blog.UserID != "" {
		if err := checkUUID(blog.UserID); err != nil {
			return err
		}
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	blog.ID = uuid.NewString()
	m.s.blogs[blog.ID] = *blog
	m.s.blogOrder = append(m.s.blogOrder, blog.ID)
	return nil
}

func (m memoryBlogs) Update(_ context.Context, blog *domain.Blog) (*domain.Blog, error) {
	if err := checkUUID(blog.ID); err != nil {
		return nil, err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.blogs[blog.ID]
	if !ok {
		return nil, apperrors.NewNotFound("blog")
	}
	stored.Title = blog.Title
	stored.Author = blog.Author
	stored.URL = blog.URL
	stored.Likes = blog.Likes
	m.s.blogs[blog.ID] = stored
	return &stored, nil
}

func (m memoryBlogs) Delete(_ context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.blogs[id]; !ok {
		return apperrors.NewNotFound("blog")
	}
	delete(m.s.blogs, id)
	for i, existing := range m.s.blogOrder {
		if existing == id {
			m.s.blogOrder = append(m.s.blogOrder[:i], m.s.blogOrder[i+1:]...)
			break
		}
	}
	return nil
}

func copyUser(u domain.User) domain.User {
	u.Blogs = append([]string{}, u.Blogs...)
	return u
}
