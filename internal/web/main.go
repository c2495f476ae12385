package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/files"
	"github.com/mkeenan750/snapcourse/internal/i18n"
	fiberlogger "github.com/mkeenan750/snapcourse/internal/logger/adapter/fiber"
	"github.com/mkeenan750/snapcourse/internal/web/handler"
	"github.com/mkeenan750/snapcourse/internal/web/handler/admin/theme"
	coursepage "github.com/mkeenan750/snapcourse/internal/web/handler/course"
	"github.com/mkeenan750/snapcourse/internal/web/handler/dashboard"
	"github.com/mkeenan750/snapcourse/internal/web/handler/login"
	"github.com/mkeenan750/snapcourse/internal/web/handler/logout"
	authmiddleware "github.com/mkeenan750/snapcourse/internal/web/middleware/auth"
	"github.com/mkeenan750/snapcourse/internal/web/middleware/locale"
	"github.com/mkeenan750/snapcourse/internal/web/session"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"

	csrfCookieName = "csrf_"
	csrfFormField  = "_csrf"
)

// ErrNoSessionStore is returned when the session store was not initialized.
var ErrNoSessionStore = errors.New("session store not initialized")

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Options are the services the web layer is built on.
type Options struct {
	Bundle *i18n.Bundle
	Files  files.Store
	// FastShutDown skips the load balancer grace period on shutdown.
	FastShutDown bool
}

// Start serves on addr until the server is shut down.
func (s *Service) Start(addr string) error {
	s.alive.Store(true)

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown stops the server once ctx is done. Unless fast shutdown is set,
// /checkalive fails for the configured grace period first so load balancers
// can remove this instance.
func (s *Service) Shutdown(ctx context.Context) error {
	<-ctx.Done()

	log.Info().Msg("shutdown request")

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		return err
	}

	log.Info().Msg("http server was stopped ... good bye...")

	return nil
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, opts Options) (*Service, error) {
	if cfg == nil || db == nil || opts.Bundle == nil {
		return nil, errors.New(handler.ErrNilACDFatalLogMsg)
	}

	if session.Store == nil {
		return nil, ErrNoSessionStore
	}

	service := &Service{
		cfg:          cfg,
		db:           db,
		fastShutDown: opts.FastShutDown,
		authService:  auth.NewService(db),
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          newTemplateEngine(cfg.DevMode),
			ErrorHandler:   service.errorHandler,
			BodyLimit:      64 << 20, //nolint:mnd
		},
	)
	service.App = app

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		SkipPrefixes:  []string{"/static/"},
		UserLocal:     auth.LocalUsername,
	}))

	app.Get(CheckAlivePath, service.checkAlive)

	if cfg.Webserver.Metrics {
		app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	if cfg.Webserver.CookieEncryptionKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{
			Key:    cfg.Webserver.CookieEncryptionKey,
			Except: []string{csrfCookieName},
		}))
	}

	app.Use(locale.New(opts.Bundle))
	app.Use(auth.AddPermissionsToLocals(service.authService))
	app.Use(authmiddleware.Middleware)
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:" + csrfFormField,
		CookieName:     csrfCookieName,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   !cfg.DevMode,
		CookieHTTPOnly: true,
		Expiration:     cfg.Webserver.Session.ExpiryTime,
		Storage:        session.Store.Storage,
		ContextKey:     handler.LocalCSRFToken,
	}))

	deps := &handler.Deps{
		Cfg:   cfg,
		DB:    db,
		Auth:  service.authService,
		Files: opts.Files,
	}

	// init handlers (they register their own routes with permission checks)
	handlers := []handler.Service{
		&login.Handler,
		&logout.Handler,
		&dashboard.Handler,
		&coursepage.Handler,
		&theme.Handler,
	}

	for _, h := range handlers {
		if err := h.Init(app, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}

// checkAlive reports 200 while serving and 503 during a graceful shutdown.
func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// errorHandler renders errors returned by handlers as html error pages.
func (s *Service) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := ""

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	if message == "" || message == utils.StatusMessage(code) {
		message = locale.FromContext(c).T(errorMessageID(code), nil)
	}

	if !strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML) {
		return c.Status(code).SendString(message)
	}

	if renderErr := handler.RenderError(c, s.cfg.Title, code, message); renderErr != nil {
		log.Error().Err(renderErr).Msg("failed to render error page")

		return c.Status(code).SendString(message)
	}

	return nil
}

func errorMessageID(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "errornotfound"
	case fiber.StatusForbidden:
		return "errorforbidden"
	case fiber.StatusBadRequest:
		return "errorbadrequest"
	case fiber.StatusUnauthorized:
		return "errorunauthorized"
	}

	return "errorinternal"
}

func newTemplateEngine(devMode bool) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if devMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.Reload(true)

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFuncMap(funcMap())

	return templateEngine
}
