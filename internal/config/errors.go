package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormengine names no supported driver.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine must be mysql, postgres or sqlite")

	// ErrUnknownSessionStorage error if config webserver.session.storage is not supported.
	ErrUnknownSessionStorage = errors.New("toml config webserver.session.storage must be db, redis or memory")

	// ErrEmptyRedisURL error if redis session storage is selected without an url.
	ErrEmptyRedisURL = errors.New("toml config webserver.session.redisurl can not be empty for redis storage")

	// ErrUnknownFilesBackend error if config files.backend is not supported.
	ErrUnknownFilesBackend = errors.New("toml config files.backend must be local or minio")
)
