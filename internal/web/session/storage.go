package session

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmemory "github.com/gofiber/storage/memory/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"

	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/db/dsn"
)

const defaultTable = "sessions"

// NewMemoryStorage returns a process local storage for development and tests.
// Expired entries are collected by the storage itself.
func NewMemoryStorage() *sessionmemory.Storage {
	return sessionmemory.New()
}

// NewStorage creates the session storage configured in cfg. The db storage
// shares the course database; on sqlite sessions stay in memory.
func NewStorage(cfg *config.Config) (fiber.Storage, error) {
	table := cfg.Webserver.Session.Table
	if table == "" {
		table = defaultTable
	}

	switch cfg.Webserver.Session.Storage {
	case config.SessionStorageRedis:
		return NewRedisStorage(cfg.Webserver.Session.RedisURL)
	case config.SessionStorageMemory:
		return NewMemoryStorage(), nil
	case config.SessionStorageDB:
	default:
		return nil, fmt.Errorf("unknown session storage %q", cfg.Webserver.Session.Storage)
	}

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         table,
		}), nil
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         table,
		}), nil
	default:
		log.Warn().Str("engine", cfg.DB.GormEngine).Msg("no db session storage for engine, sessions are kept in memory")

		return NewMemoryStorage(), nil
	}
}
