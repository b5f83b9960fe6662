package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/apierr"
	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

// StudentWeekSnapshot is the aggregated view of one student's records for one
// reporting window. It is built once per report request and never mutated
// afterwards; everything downstream (brief, reconciler, mailer) reads from it.
type StudentWeekSnapshot struct {
	Profile         *types.Profile
	Enrollments     []*types.Enrollment
	ClassesByID     map[uuid.UUID]*types.Class
	TeachersByClass map[uuid.UUID][]string
	Assignments     []*types.Assignment
	Submissions     []*types.Submission
	GradeHistory    []*types.GradeHistory
	StudyPreference *types.StudyPreference
	ClassSessions   []*types.ClassSession
	WeekStart       time.Time
	WeekEnd         time.Time
}

// ClassName resolves a class id to its display name, falling back to
// "Unknown Class" for anything outside the student's enrollments.
func (s *StudentWeekSnapshot) ClassName(classID uuid.UUID) string {
	if c, ok := s.ClassesByID[classID]; ok && c != nil && c.Name != "" {
		return c.Name
	}
	return "Unknown Class"
}

type WeeklyDataAggregator interface {
	BuildStudentWeekSnapshot(ctx context.Context, studentID uuid.UUID, weekStart, weekEnd time.Time) (*StudentWeekSnapshot, error)
}

type weeklyDataAggregator struct {
	db  *gorm.DB
	log *logger.Logger

	profileRepo         repos.ProfileRepo
	enrollmentRepo      repos.EnrollmentRepo
	classStaffRepo      repos.ClassStaffRepo
	assignmentRepo      repos.AssignmentRepo
	submissionRepo      repos.SubmissionRepo
	gradeHistoryRepo    repos.GradeHistoryRepo
	studyPreferenceRepo repos.StudyPreferenceRepo
	classSessionRepo    repos.ClassSessionRepo
}

func NewWeeklyDataAggregator(
	db *gorm.DB,
	baseLog *logger.Logger,
	profileRepo repos.ProfileRepo,
	enrollmentRepo repos.EnrollmentRepo,
	classStaffRepo repos.ClassStaffRepo,
	assignmentRepo repos.AssignmentRepo,
	submissionRepo repos.SubmissionRepo,
	gradeHistoryRepo repos.GradeHistoryRepo,
	studyPreferenceRepo repos.StudyPreferenceRepo,
	classSessionRepo repos.ClassSessionRepo,
) WeeklyDataAggregator {
	return &weeklyDataAggregator{
		db:                  db,
		log:                 baseLog.With("service", "WeeklyDataAggregator"),
		profileRepo:         profileRepo,
		enrollmentRepo:      enrollmentRepo,
		classStaffRepo:      classStaffRepo,
		assignmentRepo:      assignmentRepo,
		submissionRepo:      submissionRepo,
		gradeHistoryRepo:    gradeHistoryRepo,
		studyPreferenceRepo: studyPreferenceRepo,
		classSessionRepo:    classSessionRepo,
	}
}

func (a *weeklyDataAggregator) BuildStudentWeekSnapshot(ctx context.Context, studentID uuid.UUID, weekStart, weekEnd time.Time) (*StudentWeekSnapshot, error) {
	// The window is inclusive of the last calendar day; timestamp columns are
	// compared against the following midnight.
	weekEndExcl := weekEnd.AddDate(0, 0, 1)

	profile, err := a.profileRepo.GetByID(ctx, nil, studentID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, apierr.CodeStudentNotFound, fmt.Errorf("no profile for student %s", studentID))
		}
		return nil, aggFailed("load profile", err)
	}

	enrollments, err := a.enrollmentRepo.GetByStudentID(ctx, nil, studentID)
	if err != nil {
		return nil, aggFailed("load enrollments", err)
	}

	classIDs := make([]uuid.UUID, 0, len(enrollments))
	classesByID := make(map[uuid.UUID]*types.Class, len(enrollments))
	for _, e := range enrollments {
		classIDs = append(classIDs, e.ClassID)
		if e.Class != nil {
			classesByID[e.ClassID] = e.Class
		}
	}

	// Staff tables carry no profile join, so teacher display names come from a
	// second lookup keyed by the collected teacher ids.
	staff, err := a.classStaffRepo.GetByClassIDs(ctx, nil, classIDs)
	if err != nil {
		return nil, aggFailed("load class staff", err)
	}
	teachersByClass, err := a.resolveTeacherNames(ctx, staff)
	if err != nil {
		return nil, aggFailed("resolve teacher names", err)
	}

	// The remaining window lookups are read-only and independent of each other.
	var (
		assignments  []*types.Assignment
		submissions  []*types.Submission
		gradeHistory []*types.GradeHistory
		studyPref    *types.StudyPreference
		sessions     []*types.ClassSession
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var gerr error
		assignments, gerr = a.assignmentRepo.GetWindowRelevant(gctx, nil, classIDs, weekStart, weekEndExcl)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		submissions, gerr = a.submissionRepo.GetByStudentInWindow(gctx, nil, studentID, weekStart, weekEndExcl)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		gradeHistory, gerr = a.gradeHistoryRepo.GetByStudentInWindow(gctx, nil, studentID, weekStart, weekEndExcl)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		studyPref, gerr = a.studyPreferenceRepo.GetByStudentID(gctx, nil, studentID)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		sessions, gerr = a.classSessionRepo.GetByClassIDs(gctx, nil, classIDs)
		return gerr
	})
	if err := g.Wait(); err != nil {
		return nil, aggFailed("load weekly records", err)
	}

	if err := a.attachAssignments(ctx, submissions); err != nil {
		return nil, aggFailed("resolve submission assignments", err)
	}

	return &StudentWeekSnapshot{
		Profile:         profile,
		Enrollments:     enrollments,
		ClassesByID:     classesByID,
		TeachersByClass: teachersByClass,
		Assignments:     assignments,
		Submissions:     submissions,
		GradeHistory:    gradeHistory,
		StudyPreference: studyPref,
		ClassSessions:   sessions,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
	}, nil
}

func (a *weeklyDataAggregator) resolveTeacherNames(ctx context.Context, staff []*types.ClassStaff) (map[uuid.UUID][]string, error) {
	out := make(map[uuid.UUID][]string)
	if len(staff) == 0 {
		return out, nil
	}

	seen := make(map[uuid.UUID]bool)
	teacherIDs := make([]uuid.UUID, 0, len(staff))
	for _, s := range staff {
		if !seen[s.TeacherID] {
			seen[s.TeacherID] = true
			teacherIDs = append(teacherIDs, s.TeacherID)
		}
	}

	profiles, err := a.profileRepo.GetByIDs(ctx, nil, teacherIDs)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uuid.UUID]string, len(profiles))
	for _, p := range profiles {
		nameByID[p.ID] = p.Name
	}

	for _, s := range staff {
		if name, ok := nameByID[s.TeacherID]; ok && name != "" {
			out[s.ClassID] = append(out[s.ClassID], name)
		}
	}
	return out, nil
}

// attachAssignments enriches submissions with their parent assignment through
// one batch lookup rather than a query per row.
func (a *weeklyDataAggregator) attachAssignments(ctx context.Context, submissions []*types.Submission) error {
	if len(submissions) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(submissions))
	for _, s := range submissions {
		if !seen[s.AssignmentID] {
			seen[s.AssignmentID] = true
			ids = append(ids, s.AssignmentID)
		}
	}

	assignments, err := a.assignmentRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*types.Assignment, len(assignments))
	for _, asg := range assignments {
		byID[asg.ID] = asg
	}

	for _, s := range submissions {
		s.Assignment = byID[s.AssignmentID]
	}
	return nil
}

func aggFailed(stage string, err error) *apierr.Error {
	wrapped := fmt.Errorf("%s: %w", stage, err)
	return apierr.WithDetails(http.StatusInternalServerError, apierr.CodeAggregationFailed, wrapped, err.Error())
}
