package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the root of a fiber.Router group.
	RouterRootPath = ""

	// ErrorTemplate renders error pages.
	ErrorTemplate = "error"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// LocalCSRFToken is the fiber.Locals key of the csrf token.
	LocalCSRFToken = "csrf"
)
