package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "taskdesk.com/taskdesk/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, authRateLimitPerMinute int) {
	api := e.Group("/api")

	auth := api.Group("/auth", middleware.RateLimiter(authRateLimitPerMinute, time.Minute))
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	tasks := api.Group("/tasks", middleware.Authenticate(h.secret))
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/search", h.SearchTasks)
	tasks.GET("/statistics", h.Statistics)
	tasks.GET("/categories", h.Categories)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)

	profile := api.Group("/profile", middleware.Authenticate(h.secret))
	profile.GET("", h.GetProfile)
	profile.PUT("", h.UpdateProfile)
}
