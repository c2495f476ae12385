package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/web/handler"
	"github.com/mkeenan750/snapcourse/internal/web/middleware/locale"
	"github.com/mkeenan750/snapcourse/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the login page template.
	TemplateName = "login"

	// RedirectPath is where a successful login leads.
	RedirectPath = "/dashboard"
)

// Form is the submitted login form.
type Form struct {
	Username string `form:"username" validate:"required,max=100"`
	Password string `form:"password" validate:"required,max=200"`
}

// Service is the login handler service.
type Service struct {
	cfg       *config.Config
	local     *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return errors.New("app or deps is nil")
	}

	s.cfg = deps.Cfg
	s.local = auth.NewLocalProvider(deps.DB)
	s.validator = validator.New()

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, handler.View(c, s.cfg.Title, fiber.Map{}))
}

func (s *Service) renderError(c *fiber.Ctx, status int, form *Form, msgID string) error {
	return c.Status(status).Render(TemplateName, handler.View(c, s.cfg.Title, fiber.Map{
		"Form":  form,
		"Error": locale.FromContext(c).T(msgID, nil),
	}))
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg("failed to parse login form")

		return s.renderError(c, fiber.StatusBadRequest, form, ErrInvalidFormData.Error())
	}

	if err := s.validator.Struct(form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, form, ErrInvalidFormData.Error())
	}

	user, err := s.local.Authenticate(form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound),
			errors.Is(err, auth.ErrInvalidPassword),
			errors.Is(err, auth.ErrUserAccountDisabled):
			log.Info().Err(err).Str("username", form.Username).Msg("login failed")

			return s.renderError(c, fiber.StatusUnauthorized, form, ErrInvalidCredentials.Error())
		default:
			log.Error().Err(err).Msg("failed to authenticate user")

			return s.renderError(c, fiber.StatusInternalServerError, form, ErrInternalServerError.Error())
		}
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")

		return s.renderError(c, fiber.StatusInternalServerError, form, ErrInternalServerError.Error())
	}

	userSession := &session.Data{
		User: session.User{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName(),
		},
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.renderError(c, fiber.StatusInternalServerError, form, ErrInternalServerError.Error())
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	log.Info().Str("username", user.Username).Msg("user logged in")

	return c.Redirect(RedirectPath)
}
