package types

// WeeklyReport is the report shape returned to callers and mailed out.
// Narrative sections come from the model; Assignments and GradeHistory are
// always rebuilt from stored data before the report leaves the pipeline.
type WeeklyReport struct {
	Summary               ReportSummary      `json:"summary"`
	StudyTimeSummary      StudyTimeSummary   `json:"study_time_summary"`
	Courses               []CourseReport     `json:"courses"`
	Assignments           ReportAssignments  `json:"assignments"`
	GradeHistory          []ReportGradeEntry `json:"grade_history"`
	TopFocusAreasNextWeek []string           `json:"top_3_focus_areas_next_week"`
	WeeklyInsight         WeeklyInsight      `json:"weekly_insight"`
	AIAnalysis            AIAnalysis         `json:"ai_analysis"`
}

type ReportSummary struct {
	AttendanceRate float64 `json:"attendance_rate"`
	AverageScore   float64 `json:"average_score"`
	ProgressChange string  `json:"progress_change"`
	Status         string  `json:"status"`
}

type StudyTimeSummary struct {
	TotalStudyHours    float64        `json:"total_study_hours"`
	AverageDailyHours  float64        `json:"average_daily_hours"`
	MostStudiedSubject string         `json:"most_studied_subject"`
	TimeBySubject      []SubjectHours `json:"time_by_subject"`
}

type SubjectHours struct {
	Subject string  `json:"subject"`
	Hours   float64 `json:"hours"`
}

type CourseReport struct {
	CourseName           string  `json:"course_name"`
	TeacherName          string  `json:"teacher_name"`
	Attendance           string  `json:"attendance"`
	WeeklyScore          float64 `json:"weekly_score"`
	WeeklyProgress       float64 `json:"weekly_progress"`
	AssignmentsSubmitted int     `json:"assignments_submitted"`
	Feedback             string  `json:"feedback"`
}

type ReportAssignments struct {
	CompletedThisWeek []CompletedAssignment `json:"completed_this_week"`
	UpcomingDeadlines []UpcomingDeadline    `json:"upcoming_deadlines"`
}

type CompletedAssignment struct {
	AssignmentID string   `json:"assignment_id"`
	CourseName   string   `json:"course_name"`
	Title        string   `json:"title"`
	SubmittedOn  string   `json:"submitted_on"`
	Score        *float64 `json:"score"`
}

type UpcomingDeadline struct {
	AssignmentID string `json:"assignment_id"`
	CourseName   string `json:"course_name"`
	Title        string `json:"title"`
	DueDate      string `json:"due_date"`
}

type ReportGradeEntry struct {
	CourseName string   `json:"course_name"`
	Score      *float64 `json:"score"`
	MaxScore   *float64 `json:"max_score"`
	Grade      string   `json:"grade"`
	Feedback   string   `json:"feedback"`
	CreatedAt  string   `json:"created_at"`
}

type WeeklyInsight struct {
	Summary        string `json:"summary"`
	Highlight      string `json:"highlight"`
	Recommendation string `json:"recommendation"`
}

type AIAnalysis struct {
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}

// Normalize defaults absent sections to empty values so downstream rendering
// never branches on nil.
func (r *WeeklyReport) Normalize() {
	if r.Courses == nil {
		r.Courses = []CourseReport{}
	}
	if r.StudyTimeSummary.TimeBySubject == nil {
		r.StudyTimeSummary.TimeBySubject = []SubjectHours{}
	}
	if r.Assignments.CompletedThisWeek == nil {
		r.Assignments.CompletedThisWeek = []CompletedAssignment{}
	}
	if r.Assignments.UpcomingDeadlines == nil {
		r.Assignments.UpcomingDeadlines = []UpcomingDeadline{}
	}
	if r.GradeHistory == nil {
		r.GradeHistory = []ReportGradeEntry{}
	}
	if r.TopFocusAreasNextWeek == nil {
		r.TopFocusAreasNextWeek = []string{}
	}
	if r.AIAnalysis.Strengths == nil {
		r.AIAnalysis.Strengths = []string{}
	}
	if r.AIAnalysis.AreasForImprovement == nil {
		r.AIAnalysis.AreasForImprovement = []string{}
	}
}

type EmailDispatchResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
