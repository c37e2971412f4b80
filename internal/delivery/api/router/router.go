// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"phresh/config"
	"phresh/internal/delivery/api/middleware"
	"phresh/internal/delivery/api/router/handler"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	ProfileHandler  *handler.ProfileHandler
	CleaningHandler *handler.CleaningHandler
	OfferHandler    *handler.OfferHandler
	TestHandler     *handler.TestHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	profileHandler  *handler.ProfileHandler
	cleaningHandler *handler.CleaningHandler
	offerHandler    *handler.OfferHandler
	testHandler     *handler.TestHandler
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		profileHandler:  params.ProfileHandler,
		cleaningHandler: params.CleaningHandler,
		offerHandler:    params.OfferHandler,
		testHandler:     params.TestHandler,
		authMiddleware:  params.AuthMiddleware,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	authenticated := r.authMiddleware.Authenticate

	// Public user routes
	usersGroup := api.Group("/users")
	{
		usersGroup.POST("", r.userHandler.Register)
		usersGroup.POST("/login/token", r.userHandler.Login)
		usersGroup.GET("/me", r.userHandler.Me, authenticated)
		usersGroup.PUT("/me/password", r.userHandler.ChangePassword, authenticated)
	}

	profilesGroup := api.Group("/profiles", authenticated)
	{
		profilesGroup.PUT("/me", r.profileHandler.UpdateOwn)
		profilesGroup.GET("/:username", r.profileHandler.GetByUsername)
	}

	cleaningsGroup := api.Group("/cleanings", authenticated)
	{
		cleaningsGroup.POST("", r.cleaningHandler.Create)
		cleaningsGroup.GET("", r.cleaningHandler.ListMine)
		cleaningsGroup.GET("/:id", r.cleaningHandler.Get)
		cleaningsGroup.PUT("/:id", r.cleaningHandler.Update)
		cleaningsGroup.DELETE("/:id", r.cleaningHandler.Delete)

		// Offers are nested under their cleaning job
		cleaningsGroup.POST("/:id/offers", r.offerHandler.Create)
		cleaningsGroup.GET("/:id/offers", r.offerHandler.List)
		cleaningsGroup.PUT("/:id/offers", r.offerHandler.Cancel)
		cleaningsGroup.DELETE("/:id/offers", r.offerHandler.Rescind)
		cleaningsGroup.GET("/:id/offers/:username", r.offerHandler.Get)
		cleaningsGroup.PUT("/:id/offers/:username", r.offerHandler.Accept)
	}
}

func (r *router) RegisterTestRoutes(e *echo.Echo) {
	// Test routes - only enabled when configured
	if r.config.TestRoutes != nil && r.config.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.GET("/public", r.testHandler.TestPublicEndpoint)
		testGroup.GET("/auth", r.testHandler.TestAuthMiddleware, r.authMiddleware.Authenticate)
	}
}
