package repository

import (
	"fmt"

	"github.com/deppfellow/roundtrip/internal/config"
	"github.com/deppfellow/roundtrip/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	TestRecords TestRecordStore
}

// NewRepositories picks the TestRecord backend named by the store driver and
// binds it to the connection the server opened for it.
func NewRepositories(s *server.Server) (*Repositories, error) {
	var store TestRecordStore

	switch s.Config.Store.Driver {
	case config.StoreDriverPostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("store driver %q needs a database connection", s.Config.Store.Driver)
		}
		store = NewPostgresStore(s.DB.Pool)
	case config.StoreDriverRedis:
		if s.Redis == nil {
			return nil, fmt.Errorf("store driver %q needs a redis client", s.Config.Store.Driver)
		}
		store = NewRedisStore(s.Redis)
	case config.StoreDriverMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", s.Config.Store.Driver)
	}

	s.Logger.Info().Str("driver", s.Config.Store.Driver).Msg("test record store ready")

	return &Repositories{TestRecords: store}, nil
}
