package app

import (
	"github.com/studyloop/studyloop-backend/internal/handlers"
	"github.com/studyloop/studyloop-backend/internal/logger"
)

type Handlers struct {
	Report  *handlers.ReportHandler
	Student *handlers.StudentHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Report:  handlers.NewReportHandler(log, serviceset.WeeklyReport),
		Student: handlers.NewStudentHandler(log, serviceset.Student),
	}
}
