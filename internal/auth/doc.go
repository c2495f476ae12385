// Package auth provides local authentication and the role based
// capabilities of the course site.
//
// A user holds exactly one role and a role holds a set of capabilities in
// resource.action form. Capabilities are site wide:
//
//	authService := auth.NewService(db)
//	caps, err := authService.Capabilities(userID)
//	if caps.Has(auth.CapMoveSections) { ... }
//
// AddPermissionsToLocals loads the session and capabilities of a request
// once, RequirePermission guards routes on them:
//
//	app.Use(auth.AddPermissionsToLocals(authService))
//	app.Post("/course/:id/section/:n/move", auth.RequirePermission(auth.CapMoveSections), h)
package auth
