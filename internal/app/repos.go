package app

import (
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/repos"
)

type Repos struct {
	Profile         repos.ProfileRepo
	Enrollment      repos.EnrollmentRepo
	ClassStaff      repos.ClassStaffRepo
	Assignment      repos.AssignmentRepo
	Submission      repos.SubmissionRepo
	GradeHistory    repos.GradeHistoryRepo
	StudyPreference repos.StudyPreferenceRepo
	ClassSession    repos.ClassSessionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile:         repos.NewProfileRepo(db, log),
		Enrollment:      repos.NewEnrollmentRepo(db, log),
		ClassStaff:      repos.NewClassStaffRepo(db, log),
		Assignment:      repos.NewAssignmentRepo(db, log),
		Submission:      repos.NewSubmissionRepo(db, log),
		GradeHistory:    repos.NewGradeHistoryRepo(db, log),
		StudyPreference: repos.NewStudyPreferenceRepo(db, log),
		ClassSession:    repos.NewClassSessionRepo(db, log),
	}
}
