package app

import (
	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/middleware"
)

type Middleware struct {
	RequestLogger *middleware.RequestLogger
}

func wireMiddleware(log *logger.Logger) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		RequestLogger: middleware.NewRequestLogger(log),
	}
}
