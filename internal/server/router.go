package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/studyloop/studyloop-backend/internal/handlers"
	"github.com/studyloop/studyloop-backend/internal/middleware"
)

type RouterConfig struct {
	RequestLogger  *middleware.RequestLogger
	ReportHandler  *handlers.ReportHandler
	StudentHandler *handlers.StudentHandler
	AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	if cfg.RequestLogger != nil {
		router.Use(cfg.RequestLogger.Log())
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/reports/weekly", cfg.ReportHandler.GenerateWeekly)
		api.GET("/students/:id", cfg.StudentHandler.GetProfile)
		api.GET("/students/:id/classes", cfg.StudentHandler.GetClasses)
	}

	return router
}
