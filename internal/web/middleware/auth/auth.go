package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	coreauth "github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/web/handler/login"
	"github.com/mkeenan750/snapcourse/internal/web/navigation"
)

// LocalCurrentUser holds the signed in session user for templates.
const LocalCurrentUser = "CurrentUser"

// PublicPrefixes are reachable without a session.
var PublicPrefixes = []string{"/static", "/logout", "/checkalive", "/metrics"}

// Middleware is a Fiber middleware that checks for user authentication. It
// relies on coreauth.AddPermissionsToLocals running before it.
func Middleware(c *fiber.Ctx) error {
	if IsPublic(c) {
		return c.Next()
	}

	sess := coreauth.SessionFromContext(c)
	isLoginPage := IsLoginPage(c)

	if sess == nil {
		// If we're already on the login page, don't redirect (would cause loop)
		if isLoginPage {
			return c.Next()
		}

		return c.Redirect(login.Path)
	}

	c.Locals(LocalCurrentUser, sess.User)

	if isLoginPage {
		return c.Redirect(navigation.Home)
	}

	return c.Next()
}

// IsPublic reports whether the request targets a page without login.
func IsPublic(c *fiber.Ctx) bool {
	path := strings.ToLower(c.Path())

	for _, prefix := range PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), login.Path)
}
