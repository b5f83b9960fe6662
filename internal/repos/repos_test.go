package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

// The postgres schema leans on uuid_generate_v4() defaults, which sqlite has
// no equivalent for, so the test schema is created by hand and every row gets
// an explicit id.
var testSchema = []string{
	`CREATE TABLE profile (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'student',
		grade_level TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE class (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		subject TEXT,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE enrollment (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		progress INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE class_staff (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		teacher_id TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'teacher',
		created_at DATETIME
	)`,
	`CREATE TABLE assignment (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		total_points REAL NOT NULL DEFAULT 0,
		due_date DATETIME,
		posted_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE submission (
		id TEXT PRIMARY KEY,
		assignment_id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		submitted_at DATETIME NOT NULL,
		grade REAL,
		status TEXT NOT NULL DEFAULT 'submitted',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE grade_history (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		score REAL,
		max_score REAL,
		grade TEXT,
		feedback TEXT,
		created_at DATETIME
	)`,
	`CREATE TABLE study_preference (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		daily_study_hours REAL NOT NULL DEFAULT 0,
		preferred_subjects TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE class_session (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		weekday INTEGER NOT NULL,
		start_minute INTEGER NOT NULL,
		end_minute INTEGER NOT NULL,
		location TEXT,
		created_at DATETIME
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, ddl := range testSchema {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func dayUTC(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return parsed
}

func TestProfileRepo_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db, testLogger(t))

	id := uuid.New()
	mustCreate(t, db, &types.Profile{ID: id, Name: "Ada", Email: "ada@example.com", Role: types.RoleStudent})

	got, err := repo.GetByID(context.Background(), nil, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ada" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	_, err = repo.GetByID(context.Background(), nil, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileRepo_GetByIDsEmptyInput(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db, testLogger(t))

	got, err := repo.GetByIDs(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %d", len(got))
	}
}

func TestEnrollmentRepo_PreloadsClass(t *testing.T) {
	db := newTestDB(t)
	repo := NewEnrollmentRepo(db, testLogger(t))

	studentID := uuid.New()
	classID := uuid.New()
	mustCreate(t, db, &types.Class{ID: classID, Name: "Algebra II", Subject: "Math"})
	mustCreate(t, db, &types.Enrollment{ID: uuid.New(), StudentID: studentID, ClassID: classID, Progress: 7550})

	got, err := repo.GetByStudentID(context.Background(), nil, studentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one enrollment, got %d", len(got))
	}
	if got[0].Class == nil || got[0].Class.Name != "Algebra II" {
		t.Fatalf("class not preloaded: %+v", got[0])
	}
	if got[0].Progress != 7550 {
		t.Fatalf("progress not round-tripped: %d", got[0].Progress)
	}
}

func TestAssignmentRepo_WindowRelevance(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepo(db, testLogger(t))

	classID := uuid.New()
	weekStart := dayUTC(t, "2024-03-01")
	weekEndExcl := dayUTC(t, "2024-03-08")

	dueInWindow := dayUTC(t, "2024-03-05")
	dueAfter := dayUTC(t, "2024-03-20")
	dueBefore := dayUTC(t, "2024-02-20")
	postedInWindow := dayUTC(t, "2024-03-02")
	postedBefore := dayUTC(t, "2024-02-01")

	mustCreate(t, db, &types.Assignment{ID: uuid.New(), ClassID: classID, Title: "due in window", DueDate: &dueInWindow})
	mustCreate(t, db, &types.Assignment{ID: uuid.New(), ClassID: classID, Title: "upcoming", DueDate: &dueAfter})
	mustCreate(t, db, &types.Assignment{ID: uuid.New(), ClassID: classID, Title: "posted in window", PostedDate: &postedInWindow})
	mustCreate(t, db, &types.Assignment{ID: uuid.New(), ClassID: classID, Title: "old and done", DueDate: &dueBefore, PostedDate: &postedBefore})
	mustCreate(t, db, &types.Assignment{ID: uuid.New(), ClassID: classID, Title: "no dates at all"})
	mustCreate(t, db, &types.Assignment{ID: uuid.New(), ClassID: uuid.New(), Title: "other class", DueDate: &dueInWindow})

	got, err := repo.GetWindowRelevant(context.Background(), nil, []uuid.UUID{classID}, weekStart, weekEndExcl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	titles := make(map[string]bool, len(got))
	for _, a := range got {
		titles[a.Title] = true
	}
	for _, want := range []string{"due in window", "upcoming", "posted in window"} {
		if !titles[want] {
			t.Fatalf("expected %q in results, got %v", want, titles)
		}
	}
	for _, reject := range []string{"old and done", "no dates at all", "other class"} {
		if titles[reject] {
			t.Fatalf("did not expect %q in results, got %v", reject, titles)
		}
	}
}

func TestAssignmentRepo_EmptyClassList(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepo(db, testLogger(t))

	got, err := repo.GetWindowRelevant(context.Background(), nil, nil, dayUTC(t, "2024-03-01"), dayUTC(t, "2024-03-08"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows for empty class list")
	}
}

func TestSubmissionRepo_WindowBoundaries(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepo(db, testLogger(t))

	studentID := uuid.New()
	weekStart := dayUTC(t, "2024-03-01")
	weekEndExcl := dayUTC(t, "2024-03-08")

	mustCreate(t, db, &types.Submission{ID: uuid.New(), AssignmentID: uuid.New(), StudentID: studentID, SubmittedAt: weekStart})
	mustCreate(t, db, &types.Submission{ID: uuid.New(), AssignmentID: uuid.New(), StudentID: studentID, SubmittedAt: dayUTC(t, "2024-03-07").Add(23 * time.Hour)})
	mustCreate(t, db, &types.Submission{ID: uuid.New(), AssignmentID: uuid.New(), StudentID: studentID, SubmittedAt: weekEndExcl})
	mustCreate(t, db, &types.Submission{ID: uuid.New(), AssignmentID: uuid.New(), StudentID: studentID, SubmittedAt: weekStart.Add(-time.Second)})
	mustCreate(t, db, &types.Submission{ID: uuid.New(), AssignmentID: uuid.New(), StudentID: uuid.New(), SubmittedAt: dayUTC(t, "2024-03-04")})

	got, err := repo.GetByStudentInWindow(context.Background(), nil, studentID, weekStart, weekEndExcl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 submissions in window, got %d", len(got))
	}
	// Ordered by submitted_at: window start first, late 03-07 second.
	if !got[0].SubmittedAt.Equal(weekStart) {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestGradeHistoryRepo_Window(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeHistoryRepo(db, testLogger(t))

	studentID := uuid.New()
	classID := uuid.New()
	weekStart := dayUTC(t, "2024-03-01")
	weekEndExcl := dayUTC(t, "2024-03-08")

	score, maxScore := 8.0, 10.0
	mustCreate(t, db, &types.GradeHistory{ID: uuid.New(), StudentID: studentID, ClassID: classID, Score: &score, MaxScore: &maxScore, Grade: "B", CreatedAt: dayUTC(t, "2024-03-04")})
	mustCreate(t, db, &types.GradeHistory{ID: uuid.New(), StudentID: studentID, ClassID: classID, Grade: "A", CreatedAt: dayUTC(t, "2024-02-20")})

	got, err := repo.GetByStudentInWindow(context.Background(), nil, studentID, weekStart, weekEndExcl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 grade event, got %d", len(got))
	}
	if got[0].Grade != "B" || got[0].Score == nil || *got[0].Score != 8 {
		t.Fatalf("unexpected row: %+v", got[0])
	}
}

func TestStudyPreferenceRepo_MissingRowIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	repo := NewStudyPreferenceRepo(db, testLogger(t))

	got, err := repo.GetByStudentID(context.Background(), nil, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil preference, got %+v", got)
	}

	studentID := uuid.New()
	mustCreate(t, db, &types.StudyPreference{ID: uuid.New(), StudentID: studentID, DailyStudyHours: 1.5})

	got, err = repo.GetByStudentID(context.Background(), nil, studentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.DailyStudyHours != 1.5 {
		t.Fatalf("unexpected preference: %+v", got)
	}
}

func TestClassSessionRepo_OrderedBySchedule(t *testing.T) {
	db := newTestDB(t)
	repo := NewClassSessionRepo(db, testLogger(t))

	classID := uuid.New()
	mustCreate(t, db, &types.ClassSession{ID: uuid.New(), ClassID: classID, Weekday: 3, StartMinute: 540, EndMinute: 600})
	mustCreate(t, db, &types.ClassSession{ID: uuid.New(), ClassID: classID, Weekday: 1, StartMinute: 600, EndMinute: 660})
	mustCreate(t, db, &types.ClassSession{ID: uuid.New(), ClassID: classID, Weekday: 1, StartMinute: 480, EndMinute: 540})

	got, err := repo.GetByClassIDs(context.Background(), nil, []uuid.UUID{classID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(got))
	}
	if got[0].Weekday != 1 || got[0].StartMinute != 480 || got[2].Weekday != 3 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestClassStaffRepo_FiltersByClass(t *testing.T) {
	db := newTestDB(t)
	repo := NewClassStaffRepo(db, testLogger(t))

	classID := uuid.New()
	teacherID := uuid.New()
	mustCreate(t, db, &types.ClassStaff{ID: uuid.New(), ClassID: classID, TeacherID: teacherID, Role: types.RoleTeacher})
	mustCreate(t, db, &types.ClassStaff{ID: uuid.New(), ClassID: uuid.New(), TeacherID: uuid.New(), Role: types.RoleTeacher})

	got, err := repo.GetByClassIDs(context.Background(), nil, []uuid.UUID{classID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].TeacherID != teacherID {
		t.Fatalf("unexpected staff rows: %+v", got)
	}
}
