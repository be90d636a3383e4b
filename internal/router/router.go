// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API routes, mapping
// specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/visited-countries/internal/handler"
	"github.com/deppfellow/visited-countries/internal/middleware"
	"github.com/deppfellow/visited-countries/internal/server"
)

// NewRouter builds the echo instance with the global middleware chain, the
// global error handler and every route.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// RequestID first so every later middleware can log it; the context
	// enhancer after tracing so the logger picks up trace ids.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, s, h)
	registerUserRoutes(router, h)

	return router
}

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")

	users.GET("", handler.Handle(h.Users.Handler, h.Users.ListUsers, http.StatusOK))
	users.GET("/id/:userId", handler.Handle(h.Users.Handler, h.Users.GetUserByID, http.StatusOK))
	users.GET("/name/:userName", handler.Handle(h.Users.Handler, h.Users.GetUserByName, http.StatusOK))
	users.POST("/newUser", handler.Handle(h.Users.Handler, h.Users.CreateUser, http.StatusCreated))
	users.PUT("/id/:userId", handler.Handle(h.Users.Handler, h.Users.RenameUser, http.StatusOK))
	users.PUT("/color/:userId", handler.Handle(h.Users.Handler, h.Users.ChangeColor, http.StatusOK))
	users.DELETE("/id/:userId", handler.HandleText(h.Users.Handler, h.Users.DeleteUser, http.StatusOK))

	users.GET("/countries/:userId", handler.Handle(h.Visited.Handler, h.Visited.ListVisited, http.StatusOK))
	users.POST("/newCountry", handler.Handle(h.Visited.Handler, h.Visited.AddVisited, http.StatusCreated))
	users.DELETE("/countries/:userId", handler.HandleText(h.Visited.Handler, h.Visited.RemoveVisited, http.StatusOK))
}
