package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/workspace-reservation/internal/config"
	"github.com/iliyamo/workspace-reservation/internal/handler"
	"github.com/iliyamo/workspace-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires all authenticated endpoints.  Every route under /v1
// runs the JWT middleware first; admin routes additionally require the
// ADMIN role.  When a Redis client is available, the booking routes are
// rate limited and the read-only map views are response-cached; with a
// nil client both middlewares are no-ops and the service still works.
func RegisterAPI(e *echo.Echo, b *handler.BookingHandler, m *handler.MapHandler, a *handler.AdminHandler, jwtSecret string, rdb *redis.Client) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Booking: cart checkout, cancellation, history.
	auth.POST("/bookings", b.Book)
	auth.DELETE("/reservations/:id", b.Cancel)
	auth.GET("/my-reservations", b.MyReservations)

	// Read-only availability views, fronted by the response cache.
	cached := auth.Group("", middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	cached.GET("/map", m.FloorMap)
	cached.GET("/restaurant/tables", m.RestaurantTables)

	// Catalog management and statistics are restricted to admins.
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/resources", a.CreateResource)
	admin.PUT("/resources/:id", a.UpdateResource)
	admin.PATCH("/resources/:id/enabled", a.SetResourceEnabled)
	admin.GET("/stats", a.Stats)
}
