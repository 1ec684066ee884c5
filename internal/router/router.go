package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/places-api/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/places-api/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the static uploads route that
// serves stored images back to clients.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
	// Health endpoint for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)
	// Uploaded images are written below uploadDir and referenced in API
	// responses by their relative path, so serve that directory as-is.
	e.Static("/uploads/images", uploadDir)
}

// RegisterUsers registers the user and auth endpoints under /api/users.
// Signup, login, refresh and logout operate without a bearer token; /me
// requires one and demonstrates the injected identity.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/api/users")
	// List all users (passwords are never serialized).
	g.GET("", u.List)
	// Create an account; multipart body with a profile image.
	g.POST("/signup", u.Signup)
	// Exchange credentials for a token pair.
	g.POST("/login", u.Login)
	// Rotate a refresh token for a new pair.
	g.POST("/refresh", u.Refresh)
	// Revoke a refresh token.
	g.POST("/logout", u.Logout)

	// The /me endpoint is the only user route behind the JWT middleware.
	me := e.Group("/api/users/me")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("", u.Me)
}

// RegisterPlaces registers the five place endpoints under /api/places.
// Reads are public; create, update and delete require a valid bearer
// token, which the JWT middleware turns into a typed user ID in the
// request context before any handler runs.
func RegisterPlaces(e *echo.Echo, p *handler.PlaceHandler, jwtSecret string) {
	// Public reads.
	e.GET("/api/places/:pid", p.GetPlaceByID)
	e.GET("/api/places/user/:uid", p.GetPlacesByUserID)

	// Protected writes.
	g := e.Group("/api/places")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", p.CreatePlace)
	g.PATCH("/:pid", p.UpdatePlace)
	g.DELETE("/:pid", p.DeletePlace)
}
