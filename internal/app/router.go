package app

import (
	"github.com/gin-gonic/gin"

	"github.com/studyloop/studyloop-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		RequestLogger:  middlewareset.RequestLogger,
		ReportHandler:  handlerset.Report,
		StudentHandler: handlerset.Student,
		AllowOrigins:   cfg.AllowOrigins,
	})
}
