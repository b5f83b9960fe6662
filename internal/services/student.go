package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/apierr"
	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

// StudentClass is the read view of one enrollment with teacher names resolved.
type StudentClass struct {
	ClassID         uuid.UUID `json:"class_id"`
	Name            string    `json:"name"`
	Subject         string    `json:"subject"`
	ProgressPercent float64   `json:"progress_percent"`
	Teachers        []string  `json:"teachers"`
}

type StudentService interface {
	GetProfile(ctx context.Context, studentID uuid.UUID) (*types.Profile, error)
	GetClasses(ctx context.Context, studentID uuid.UUID) ([]StudentClass, error)
}

type studentService struct {
	log            *logger.Logger
	profileRepo    repos.ProfileRepo
	enrollmentRepo repos.EnrollmentRepo
	classStaffRepo repos.ClassStaffRepo
}

func NewStudentService(
	baseLog *logger.Logger,
	profileRepo repos.ProfileRepo,
	enrollmentRepo repos.EnrollmentRepo,
	classStaffRepo repos.ClassStaffRepo,
) StudentService {
	return &studentService{
		log:            baseLog.With("service", "StudentService"),
		profileRepo:    profileRepo,
		enrollmentRepo: enrollmentRepo,
		classStaffRepo: classStaffRepo,
	}
}

func (s *studentService) GetProfile(ctx context.Context, studentID uuid.UUID) (*types.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, nil, studentID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, apierr.CodeStudentNotFound, fmt.Errorf("no profile for student %s", studentID))
		}
		return nil, err
	}
	return profile, nil
}

func (s *studentService) GetClasses(ctx context.Context, studentID uuid.UUID) ([]StudentClass, error) {
	if _, err := s.GetProfile(ctx, studentID); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.GetByStudentID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}

	classIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		classIDs = append(classIDs, e.ClassID)
	}

	staff, err := s.classStaffRepo.GetByClassIDs(ctx, nil, classIDs)
	if err != nil {
		return nil, err
	}
	teachersByClass, err := s.resolveTeacherNames(ctx, staff)
	if err != nil {
		return nil, err
	}

	out := make([]StudentClass, 0, len(enrollments))
	for _, e := range enrollments {
		sc := StudentClass{
			ClassID:         e.ClassID,
			Name:            "Unknown Class",
			ProgressPercent: float64(e.Progress) / 100,
			Teachers:        []string{},
		}
		if e.Class != nil {
			sc.Name = e.Class.Name
			sc.Subject = e.Class.Subject
		}
		if teachers := teachersByClass[e.ClassID]; teachers != nil {
			sc.Teachers = teachers
		}
		out = append(out, sc)
	}
	return out, nil
}

func (s *studentService) resolveTeacherNames(ctx context.Context, staff []*types.ClassStaff) (map[uuid.UUID][]string, error) {
	out := make(map[uuid.UUID][]string)
	if len(staff) == 0 {
		return out, nil
	}

	seen := make(map[uuid.UUID]bool)
	teacherIDs := make([]uuid.UUID, 0, len(staff))
	for _, cs := range staff {
		if !seen[cs.TeacherID] {
			seen[cs.TeacherID] = true
			teacherIDs = append(teacherIDs, cs.TeacherID)
		}
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, nil, teacherIDs)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uuid.UUID]string, len(profiles))
	for _, p := range profiles {
		nameByID[p.ID] = p.Name
	}

	for _, cs := range staff {
		if name, ok := nameByID[cs.TeacherID]; ok && name != "" {
			out[cs.ClassID] = append(out[cs.ClassID], name)
		}
	}
	return out, nil
}
