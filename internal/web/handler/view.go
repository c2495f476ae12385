package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/web/middleware/locale"
	"github.com/mkeenan750/snapcourse/internal/web/navigation"
)

// View adds the data every page needs to data: the localizer, the signed in
// user with the capabilities, the csrf token and the site title.
func View(c *fiber.Ctx, title string, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	data["L"] = locale.FromContext(c)
	data["CSRF"] = CSRFToken(c)
	data["SiteTitle"] = title
	data["Caps"] = auth.CapabilitiesFromContext(c)

	if sess := auth.SessionFromContext(c); sess != nil {
		data["User"] = sess.User
		data["Editing"] = sess.Editing
	}

	return data
}

// CSRFToken returns the csrf token of the request.
func CSRFToken(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalCSRFToken).(string)

	return token
}

// Render renders template inside the base layout.
func Render(c *fiber.Ctx, title, template string, nav *navigation.Context, data fiber.Map) error {
	data = View(c, title, data)
	data["Navigation"] = nav

	return c.Render(template, data, BaseLayout)
}

// RenderError renders the error page with status.
func RenderError(c *fiber.Ctx, title string, status int, message string) error {
	return c.Status(status).Render(ErrorTemplate, View(c, title, fiber.Map{
		"Status":  status,
		"Message": message,
	}), BaseLayout)
}
