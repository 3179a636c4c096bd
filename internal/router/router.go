package router

import (
	"github.com/blues/launchpad/internal/handler"
	"github.com/blues/launchpad/internal/observability"
	"github.com/gin-gonic/gin"
)

// Handlers 路由依赖的处理器
type Handlers struct {
	Project    *handler.ProjectHandler
	Contribute *handler.ContributeHandler
}

func Setup(h Handlers, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(accessLogMiddleware(metrics))
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "launchpad-service",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目相关路由
		projects := v1.Group("/projects")
		{
			projects.POST("", h.Project.CreateProject)
			projects.GET("", h.Project.GetProjects)
			projects.GET("/:id", h.Project.GetProject)
			projects.GET("/:id/investors", h.Project.GetProjectInvestors)
			projects.GET("/:id/stats", h.Project.GetProjectStats)
			projects.GET("/:id/share", h.Project.GetShareLinks)
			projects.POST("/:id/contribute", h.Contribute.Contribute)
		}

		v1.GET("/stats", h.Project.GetAllProjectStats)

		// 表单预校验
		validate := v1.Group("/validate")
		{
			validate.POST("/project", h.Project.ValidateProject)
			validate.POST("/contribution", h.Contribute.ValidateContribution)
		}
	}

	return r
}
