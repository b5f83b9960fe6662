package app

import (
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type Services struct {
	Aggregator   services.WeeklyDataAggregator
	Synthesizer  services.ReportSynthesizer
	Mailer       services.ReportMailer
	WeeklyReport services.WeeklyReportService
	Student      services.StudentService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	aggregator := services.NewWeeklyDataAggregator(
		db,
		log,
		reposet.Profile,
		reposet.Enrollment,
		reposet.ClassStaff,
		reposet.Assignment,
		reposet.Submission,
		reposet.GradeHistory,
		reposet.StudyPreference,
		reposet.ClassSession,
	)
	synthesizer := services.NewReportSynthesizer(log, clients.OpenAI, cfg.MaxBriefChars)
	mailer := services.NewReportMailer(log, clients.SendGrid)
	weeklyReport := services.NewWeeklyReportService(log, aggregator, synthesizer, mailer)
	student := services.NewStudentService(log, reposet.Profile, reposet.Enrollment, reposet.ClassStaff)

	return Services{
		Aggregator:   aggregator,
		Synthesizer:  synthesizer,
		Mailer:       mailer,
		WeeklyReport: weeklyReport,
		Student:      student,
	}
}
