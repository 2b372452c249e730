package app

import (
	"github.com/gin-gonic/gin"
	"github.com/project-clarion/core/internal/modules/system/health"
	"github.com/project-clarion/core/internal/modules/verify/check"
	"github.com/project-clarion/core/internal/modules/verify/trending"
	"github.com/project-clarion/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	root := r.Group("")
	root.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Project Clarion API is running",
			"status":  "healthy",
			"version": "1.0.0",
		})
	})
	health.RegisterRoutes(root, a.cfg, a.rc, a.scheduler)

	api := r.Group("/api/v1")
	check.NewHandler(a.engine).RegisterRoutes(api)
	trending.NewHandler(a.trending).RegisterRoutes(api)
}
