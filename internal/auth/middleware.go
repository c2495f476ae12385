package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/mkeenan750/snapcourse/internal/web/session"
)

// Locals set by AddPermissionsToLocals.
const (
	LocalSession      = "session"
	LocalSessionID    = "sessionID"
	LocalCapabilities = "capabilities"
	LocalUsername     = "username"
)

// AddPermissionsToLocals loads the session and the capabilities of the
// signed in user into fiber.Locals. Requests without a valid session pass
// through without them.
func AddPermissionsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(session.CookieName)
		if sessionID == "" {
			return c.Next()
		}

		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error().Err(err).Msg("failed to read session")
			}

			return c.Next()
		}

		if sessionData.User.ID == 0 {
			return c.Next()
		}

		caps, err := authService.Capabilities(sessionData.User.ID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Msg("failed to get user permissions")

			return c.Next()
		}

		c.Locals(LocalSession, sessionData)
		c.Locals(LocalSessionID, sessionID)
		c.Locals(LocalCapabilities, caps)
		c.Locals(LocalUsername, sessionData.User.Username)

		return c.Next()
	}
}

// RequirePermission rejects requests of users lacking permission.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionData := SessionFromContext(c)
		if sessionData == nil {
			return fiber.ErrUnauthorized
		}

		if !CapabilitiesFromContext(c).Has(permission) {
			log.Warn().Uint64("user_id", sessionData.User.ID).Str("permission", permission).
				Msg("user lacks required permission")

			return fiber.ErrForbidden
		}

		return c.Next()
	}
}

// SessionFromContext returns the session of the signed in user, or nil.
func SessionFromContext(c *fiber.Ctx) *session.Data {
	sessionData, _ := c.Locals(LocalSession).(*session.Data)

	return sessionData
}

// SessionIDFromContext returns the session id of the signed in user.
func SessionIDFromContext(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)

	return id
}

// CapabilitiesFromContext returns the capabilities of the signed in user.
// Anonymous requests get an empty set.
func CapabilitiesFromContext(c *fiber.Ctx) Capabilities {
	caps, _ := c.Locals(LocalCapabilities).(Capabilities)

	return caps
}
