package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/konris39/TrainGymAppCalendar/internal/config"
	"github.com/konris39/TrainGymAppCalendar/internal/handler"
	"github.com/konris39/TrainGymAppCalendar/internal/middleware"
	"github.com/konris39/TrainGymAppCalendar/internal/utils"
)

// Handlers groups everything RegisterRoutes wires up.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Trainings   *handler.TrainingHandler
	Profiles    *handler.ProfileHandler
	Recommended *handler.RecommendedHandler
}

// RegisterRoutes attaches all routes. The session middleware runs globally
// so every handler can see the authenticated principal when one exists;
// it never rejects a request itself. Routes that demand authentication
// opt in via the Require* gates.
func RegisterRoutes(e *echo.Echo, h Handlers, tokens *utils.TokenIssuer, principals middleware.PrincipalStore, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.Use(middleware.Session(tokens, principals))

	e.GET("/healthz", handler.Health)

	// Credential endpoints are public and rate limited.
	auth := e.Group("/api/auth", middleware.RateLimit(rlCfg, rdb))
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	user := e.Group("/api/user", middleware.RequireAuth)
	user.GET("/me", h.Auth.Me)
	user.GET("/:id", h.Users.Get)
	user.PATCH("/update/:id", h.Users.UpdateSelf)
	user.POST("/joinGroup", h.Users.JoinGroup)
	user.GET("", h.Users.List, middleware.RequireAdmin)
	user.PATCH("/adm/:id", h.Users.UpdateRoles, middleware.RequireAdmin)
	user.DELETE("/adm/:id", h.Users.Delete, middleware.RequireAdmin)

	training := e.Group("/api/training", middleware.RequireAuth)
	training.POST("/add", h.Trainings.Create)
	training.GET("/my", h.Trainings.ListMine)
	training.GET("/:id", h.Trainings.Get)
	training.PATCH("/update/:id", h.Trainings.Update)
	training.PATCH("/complete/:id", h.Trainings.Complete)
	training.DELETE("/:id", h.Trainings.Delete)
	training.GET("/pending", h.Trainings.Pending, middleware.RequireTrainer)
	training.PATCH("/accept/:id", h.Trainings.Accept, middleware.RequireTrainer)
	training.DELETE("/decline/:id", h.Trainings.Decline, middleware.RequireTrainer)

	data := e.Group("/api/data", middleware.RequireAuth)
	data.GET("/my", h.Profiles.My)
	data.PATCH("/update", h.Profiles.Update)

	rec := e.Group("/api/recommended-trainings", middleware.RequireAuth)
	rec.GET("", h.Recommended.List)
	rec.GET("/:id", h.Recommended.Get)
	rec.POST("/:id/schedule", h.Recommended.Schedule)
}
