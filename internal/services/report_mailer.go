package services

import (
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"github.com/studyloop/studyloop-backend/internal/clients/sendgrid"
	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

const noDataLine = "No data for this week."

type DispatchOptions struct {
	To            string
	Subject       string
	RecipientName string
	RecipientType string
}

// ReportMailer delivers a finished weekly report by email. Dispatch never
// returns an error: delivery problems are captured in the result so they can
// ride along on an otherwise successful response.
type ReportMailer interface {
	Dispatch(ctx context.Context, report *types.WeeklyReport, opts DispatchOptions) types.EmailDispatchResult
}

type reportMailer struct {
	log  *logger.Logger
	mail sendgrid.Client
}

func NewReportMailer(baseLog *logger.Logger, mailClient sendgrid.Client) ReportMailer {
	return &reportMailer{
		log:  baseLog.With("service", "ReportMailer"),
		mail: mailClient,
	}
}

func (rm *reportMailer) Dispatch(ctx context.Context, report *types.WeeklyReport, opts DispatchOptions) types.EmailDispatchResult {
	addr := strings.TrimSpace(opts.To)
	if _, err := mail.ParseAddress(addr); err != nil {
		rm.log.Warn("Report dispatch skipped: invalid recipient address", "error", err)
		return types.EmailDispatchResult{Success: false, Error: fmt.Sprintf("invalid recipient address: %v", err)}
	}
	if rm.mail == nil {
		return types.EmailDispatchResult{Success: false, Error: "email transport not configured"}
	}

	sections := buildEmailSections(report)

	htmlBody, err := renderReportHTML(opts.RecipientName, sections)
	if err != nil {
		rm.log.Error("Report email render failed", "error", err)
		return types.EmailDispatchResult{Success: false, Error: fmt.Sprintf("render report email: %v", err)}
	}
	textBody := renderReportText(opts.RecipientName, sections)

	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		subject = "Your weekly report"
	}

	res, err := rm.mail.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: addr, Name: opts.RecipientName}},
		Subject: subject,
		Text:    textBody,
		HTML:    htmlBody,
	})
	if err != nil {
		rm.log.Warn("Report email send failed", "recipient_type", opts.RecipientType, "error", err)
		return types.EmailDispatchResult{Success: false, Error: err.Error()}
	}

	rm.log.Info("Report email dispatched", "recipient_type", opts.RecipientType, "message_id", res.MessageID)
	return types.EmailDispatchResult{Success: true, MessageID: res.MessageID}
}

// emailSection is one titled block of the report email. Every section is
// always present; empty data renders as an explicit no-data line so the email
// stays self-explanatory for non-technical recipients.
type emailSection struct {
	Title string
	Lines []string
}

func buildEmailSections(r *types.WeeklyReport) []emailSection {
	sections := make([]emailSection, 0, 8)

	var summary []string
	if r.Summary != (types.ReportSummary{}) {
		summary = append(summary,
			fmt.Sprintf("Attendance rate: %.0f%%", r.Summary.AttendanceRate),
			fmt.Sprintf("Average score: %.0f%%", r.Summary.AverageScore),
		)
		if r.Summary.ProgressChange != "" {
			summary = append(summary, "Progress: "+r.Summary.ProgressChange)
		}
		if r.Summary.Status != "" {
			summary = append(summary, "Status: "+r.Summary.Status)
		}
	}
	sections = append(sections, section("Summary", summary))

	var study []string
	if r.StudyTimeSummary.TotalStudyHours > 0 || len(r.StudyTimeSummary.TimeBySubject) > 0 {
		study = append(study,
			fmt.Sprintf("Total study hours: %.1f", r.StudyTimeSummary.TotalStudyHours),
			fmt.Sprintf("Average daily hours: %.1f", r.StudyTimeSummary.AverageDailyHours),
		)
		if r.StudyTimeSummary.MostStudiedSubject != "" {
			study = append(study, "Most studied subject: "+r.StudyTimeSummary.MostStudiedSubject)
		}
		for _, ts := range r.StudyTimeSummary.TimeBySubject {
			study = append(study, fmt.Sprintf("%s: %.1fh", ts.Subject, ts.Hours))
		}
	}
	sections = append(sections, section("Study time", study))

	var courses []string
	for _, c := range r.Courses {
		line := c.CourseName
		if c.TeacherName != "" {
			line += " (" + c.TeacherName + ")"
		}
		line += fmt.Sprintf(" - score %.0f%%, %d assignment(s) submitted", c.WeeklyScore, c.AssignmentsSubmitted)
		if c.Feedback != "" {
			line += ". " + c.Feedback
		}
		courses = append(courses, line)
	}
	sections = append(sections, section("Courses", courses))

	var completed []string
	for _, a := range r.Assignments.CompletedThisWeek {
		line := fmt.Sprintf("%s - %s (submitted %s", a.CourseName, a.Title, a.SubmittedOn)
		if a.Score != nil {
			line += fmt.Sprintf(", score %.4g", *a.Score)
		}
		line += ")"
		completed = append(completed, line)
	}
	sections = append(sections, section("Completed assignments", completed))

	var upcoming []string
	for _, a := range r.Assignments.UpcomingDeadlines {
		upcoming = append(upcoming, fmt.Sprintf("%s - %s (due %s)", a.CourseName, a.Title, a.DueDate))
	}
	sections = append(sections, section("Upcoming deadlines", upcoming))

	var grades []string
	for _, g := range r.GradeHistory {
		line := g.CourseName
		if g.Score != nil && g.MaxScore != nil {
			line += fmt.Sprintf(": %.4g/%.4g", *g.Score, *g.MaxScore)
		}
		if g.Grade != "" {
			line += " (" + g.Grade + ")"
		}
		if g.Feedback != "" {
			line += " - " + g.Feedback
		}
		grades = append(grades, line)
	}
	sections = append(sections, section("Grade history", grades))

	var focus []string
	focus = append(focus, r.TopFocusAreasNextWeek...)
	sections = append(sections, section("Focus areas for next week", focus))

	var insight []string
	if r.WeeklyInsight.Summary != "" {
		insight = append(insight, r.WeeklyInsight.Summary)
	}
	if r.WeeklyInsight.Highlight != "" {
		insight = append(insight, "Highlight: "+r.WeeklyInsight.Highlight)
	}
	if r.WeeklyInsight.Recommendation != "" {
		insight = append(insight, "Recommendation: "+r.WeeklyInsight.Recommendation)
	}
	for _, s := range r.AIAnalysis.Strengths {
		insight = append(insight, "Strength: "+s)
	}
	for _, s := range r.AIAnalysis.AreasForImprovement {
		insight = append(insight, "To improve: "+s)
	}
	sections = append(sections, section("Insights", insight))

	return sections
}

func section(title string, lines []string) emailSection {
	if len(lines) == 0 {
		lines = []string{noDataLine}
	}
	return emailSection{Title: title, Lines: lines}
}

var reportEmailTmpl = template.Must(template.New("weekly_report_email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 640px; margin: 0 auto;">
	<h2>Weekly Report{{if .RecipientName}} for {{.RecipientName}}{{end}}</h2>
	{{range .Sections}}
	<h3 style="border-bottom: 1px solid #ddd; padding-bottom: 4px;">{{.Title}}</h3>
	<ul>
		{{range .Lines}}<li>{{.}}</li>
		{{end}}
	</ul>
	{{end}}
	<p style="color: #888; font-size: 12px;">This report was generated automatically from recorded academic data.</p>
</body>
</html>
`))

func renderReportHTML(recipientName string, sections []emailSection) (string, error) {
	var b strings.Builder
	err := reportEmailTmpl.Execute(&b, struct {
		RecipientName string
		Sections      []emailSection
	}{RecipientName: recipientName, Sections: sections})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderReportText(recipientName string, sections []emailSection) string {
	var b strings.Builder
	b.WriteString("Weekly Report")
	if recipientName != "" {
		b.WriteString(" for " + recipientName)
	}
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n" + s.Title + "\n")
		for _, line := range s.Lines {
			b.WriteString("- " + line + "\n")
		}
	}
	return b.String()
}
