package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/types"
)

// ReconcileWeeklyReport rebuilds the assignments and grade_history sections
// of a model-produced report from the snapshot. Whatever the model wrote for
// those keys is discarded, not merged: the database is the only source of
// truth for grades and scores. Pure and synchronous.
func ReconcileWeeklyReport(raw *types.WeeklyReport, snap *StudentWeekSnapshot, weekEnd time.Time) *types.WeeklyReport {
	report := *raw
	report.Assignments = types.ReportAssignments{
		CompletedThisWeek: completedThisWeek(snap),
		UpcomingDeadlines: upcomingDeadlines(snap, weekEnd),
	}
	report.GradeHistory = reconciledGradeHistory(snap)
	report.Normalize()
	return &report
}

func completedThisWeek(snap *StudentWeekSnapshot) []types.CompletedAssignment {
	out := make([]types.CompletedAssignment, 0, len(snap.Submissions))
	for _, s := range snap.Submissions {
		entry := types.CompletedAssignment{
			AssignmentID: s.AssignmentID.String(),
			CourseName:   "Unknown Class",
			SubmittedOn:  s.SubmittedAt.Format("2006-01-02"),
		}
		if s.Assignment != nil {
			entry.Title = s.Assignment.Title
			entry.CourseName = snap.ClassName(s.Assignment.ClassID)
		}
		if s.Grade != nil {
			// Raw stored grade, never converted to a percentage here.
			grade := *s.Grade
			entry.Score = &grade
		}
		out = append(out, entry)
	}
	return out
}

func upcomingDeadlines(snap *StudentWeekSnapshot, weekEnd time.Time) []types.UpcomingDeadline {
	submitted := make(map[uuid.UUID]bool, len(snap.Submissions))
	for _, s := range snap.Submissions {
		submitted[s.AssignmentID] = true
	}

	// "Strictly after the window" means due on a later calendar day than the
	// window's last day.
	cutoff := weekEnd.AddDate(0, 0, 1)

	out := make([]types.UpcomingDeadline, 0)
	for _, a := range snap.Assignments {
		if a.DueDate == nil || a.DueDate.Before(cutoff) {
			continue
		}
		if submitted[a.ID] {
			continue
		}
		out = append(out, types.UpcomingDeadline{
			AssignmentID: a.ID.String(),
			CourseName:   snap.ClassName(a.ClassID),
			Title:        a.Title,
			DueDate:      a.DueDate.Format("2006-01-02"),
		})
	}
	return out
}

func reconciledGradeHistory(snap *StudentWeekSnapshot) []types.ReportGradeEntry {
	out := make([]types.ReportGradeEntry, 0, len(snap.GradeHistory))
	for _, g := range snap.GradeHistory {
		entry := types.ReportGradeEntry{
			CourseName: snap.ClassName(g.ClassID),
			Grade:      g.Grade,
			Feedback:   g.Feedback,
			CreatedAt:  g.CreatedAt.UTC().Format(time.RFC3339),
		}
		if g.Score != nil {
			score := *g.Score
			entry.Score = &score
		}
		if g.MaxScore != nil {
			maxScore := *g.MaxScore
			entry.MaxScore = &maxScore
		}
		out = append(out, entry)
	}
	return out
}
