// Package auth redirects requests without a signed in user to the login
// page and signed in users away from it.
//
// Usage:
//
//	app.Use(coreauth.AddPermissionsToLocals(authService))
//	app.Use(authmiddleware.Middleware)
package auth
