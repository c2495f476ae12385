// Package locale picks the interface language of a request and stores the
// matching localizer in fiber.Locals.
package locale

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkeenan750/snapcourse/internal/i18n"
)

// LocalLocalizer is the fiber.Locals key of the request localizer.
const LocalLocalizer = "localizer"

// New returns the middleware negotiating the language from Accept-Language.
func New(bundle *i18n.Bundle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := bundle.Localizer(bundle.Match(c.Get(fiber.HeaderAcceptLanguage)))

		c.Locals(LocalLocalizer, l)
		c.Set(fiber.HeaderContentLanguage, l.Lang())

		return c.Next()
	}
}

// FromContext returns the localizer of the request, nil outside the middleware.
func FromContext(c *fiber.Ctx) *i18n.Localizer {
	l, _ := c.Locals(LocalLocalizer).(*i18n.Localizer)

	return l
}
