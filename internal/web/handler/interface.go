package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/files"
)

// Deps are the shared services handed to every handler.
type Deps struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Auth  *auth.Service
	Files files.Store
}

// Valid reports whether the mandatory dependencies are set.
func (d *Deps) Valid() bool {
	return d != nil && d.Cfg != nil && d.DB != nil && d.Auth != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}
