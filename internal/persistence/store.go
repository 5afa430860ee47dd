package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/config"
	"github.com/spec-kit/bloglist/internal/repository"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the repository pair for the configured driver plus what is needed to probe and
// close it.
type Store struct {
	Users        repository.UserRepository
	Blogs        repository.BlogRepository
	Dependencies map[string]Pinger
	Postgres     *Postgres

	closers []func(context.Context)
}

// OpenStore connects the backend selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		m, err := NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return &Store{
			Users:        repository.NewMongoUserRepository(m.Collection(UsersCollection)),
			Blogs:        repository.NewMongoBlogRepository(m.Collection(BlogsCollection)),
			Dependencies: map[string]Pinger{"mongo": m},
			closers:      []func(context.Context){m.Close},
		}, nil

	case config.StorePostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return &Store{
			Users:        repository.NewUserRepository(pg.Pool),
			Blogs:        repository.NewBlogRepository(pg.Pool),
			Dependencies: map[string]Pinger{"postgres": pg},
			Postgres:     pg,
			closers:      []func(context.Context){func(context.Context) { pg.Close() }},
		}, nil

	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		mem := repository.NewMemoryStore()
		return &Store{Users: mem.Users(), Blogs: mem.Blogs(), Dependencies: map[string]Pinger{}}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// Close releases every connection the store opened.
func (s *Store) Close(ctx context.Context) {
	for _, closeFn := range s.closers {
		closeFn(ctx)
	}
}
