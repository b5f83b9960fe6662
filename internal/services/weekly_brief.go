package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FormatWeeklyBrief renders a snapshot into the deterministic plain-text brief
// used as model input. Pure function: same snapshot, same output. Sections
// with no data are omitted entirely.
func FormatWeeklyBrief(snap *StudentWeekSnapshot, weekStart, weekEnd time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Weekly report data for %s (%s to %s)\n",
		snap.Profile.Name,
		weekStart.Format("2006-01-02"),
		weekEnd.Format("2006-01-02"),
	)

	writeClassList(&b, snap)
	writeAttendanceEstimate(&b, snap)
	writeAverageScores(&b, snap)
	writeClassProgress(&b, snap)
	writeStudyHours(&b, snap)
	writeGradeHistory(&b, snap)

	return b.String()
}

func writeClassList(b *strings.Builder, snap *StudentWeekSnapshot) {
	if len(snap.Enrollments) == 0 {
		return
	}
	b.WriteString("\nClasses:\n")
	for _, e := range snap.Enrollments {
		name := snap.ClassName(e.ClassID)
		teachers := snap.TeachersByClass[e.ClassID]
		if len(teachers) > 0 {
			fmt.Fprintf(b, "- %s (teachers: %s)\n", name, strings.Join(teachers, ", "))
		} else {
			fmt.Fprintf(b, "- %s\n", name)
		}
	}
}

// Attendance is a rough proxy: there is no attendance table, so activity
// (submissions plus half the grade events) is clamped to the scheduled
// session count.
func writeAttendanceEstimate(b *strings.Builder, snap *StudentWeekSnapshot) {
	total := len(snap.ClassSessions)
	if total == 0 {
		return
	}
	attended := len(snap.Submissions) + len(snap.GradeHistory)/2
	if attended > total {
		attended = total
	}
	fmt.Fprintf(b, "\nAttendance (estimated): %d of %d scheduled sessions\n", attended, total)
}

func writeAverageScores(b *strings.Builder, snap *StudentWeekSnapshot) {
	percentsByClass := make(map[uuid.UUID][]float64)

	for _, g := range snap.GradeHistory {
		if g.Score != nil && g.MaxScore != nil && *g.MaxScore > 0 {
			percentsByClass[g.ClassID] = append(percentsByClass[g.ClassID], *g.Score / *g.MaxScore*100)
		}
	}
	for _, s := range snap.Submissions {
		if s.Grade == nil || s.Assignment == nil || s.Assignment.TotalPoints <= 0 {
			continue
		}
		classID := s.Assignment.ClassID
		percentsByClass[classID] = append(percentsByClass[classID], *s.Grade/s.Assignment.TotalPoints*100)
	}

	if len(percentsByClass) == 0 {
		return
	}

	b.WriteString("\nAverage scores:\n")
	for _, classID := range sortedClassIDs(snap, percentsByClass) {
		percents := percentsByClass[classID]
		var sum float64
		for _, p := range percents {
			sum += p
		}
		avg := int(math.Round(sum / float64(len(percents))))
		fmt.Fprintf(b, "- %s: %d%%\n", snap.ClassName(classID), avg)
	}
}

func writeClassProgress(b *strings.Builder, snap *StudentWeekSnapshot) {
	if len(snap.Enrollments) == 0 {
		return
	}
	b.WriteString("\nClass progress:\n")
	for _, e := range snap.Enrollments {
		fmt.Fprintf(b, "- %s: %.2f%%\n", snap.ClassName(e.ClassID), float64(e.Progress)/100)
	}
}

func writeStudyHours(b *strings.Builder, snap *StudentWeekSnapshot) {
	if snap.StudyPreference != nil && snap.StudyPreference.DailyStudyHours > 0 {
		fmt.Fprintf(b, "\nStudy hours: %.1f this week (reported daily preference: %.1fh)\n",
			snap.StudyPreference.DailyStudyHours*7, snap.StudyPreference.DailyStudyHours)
		return
	}

	// No stored preference: estimate 2 hours per submission per class.
	submissionsByClass := make(map[uuid.UUID]int)
	for _, s := range snap.Submissions {
		if s.Assignment != nil {
			submissionsByClass[s.Assignment.ClassID]++
		}
	}
	if len(submissionsByClass) == 0 {
		return
	}

	b.WriteString("\nStudy hours (estimated from submissions):\n")
	for _, classID := range sortedClassIDs(snap, submissionsByClass) {
		fmt.Fprintf(b, "- %s: %.1fh\n", snap.ClassName(classID), float64(submissionsByClass[classID]*2))
	}
}

func writeGradeHistory(b *strings.Builder, snap *StudentWeekSnapshot) {
	if len(snap.GradeHistory) == 0 {
		return
	}
	b.WriteString("\nGrade history this week:\n")
	for _, g := range snap.GradeHistory {
		line := fmt.Sprintf("- [%s] %s", g.CreatedAt.Format("2006-01-02"), snap.ClassName(g.ClassID))
		if g.Score != nil && g.MaxScore != nil {
			line += fmt.Sprintf(": %.4g/%.4g", *g.Score, *g.MaxScore)
			if *g.MaxScore > 0 {
				line += fmt.Sprintf(" (%d%%)", int(math.Round(*g.Score / *g.MaxScore*100)))
			}
		}
		if g.Grade != "" {
			line += fmt.Sprintf(" grade %s", g.Grade)
		}
		if g.Feedback != "" {
			line += fmt.Sprintf(" feedback: %s", g.Feedback)
		}
		b.WriteString(line + "\n")
	}
}

// sortedClassIDs orders map keys by class display name so the brief stays
// deterministic across runs.
func sortedClassIDs[V any](snap *StudentWeekSnapshot, m map[uuid.UUID]V) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, nj := snap.ClassName(ids[i]), snap.ClassName(ids[j])
		if ni == nj {
			return ids[i].String() < ids[j].String()
		}
		return ni < nj
	})
	return ids
}
