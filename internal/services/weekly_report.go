package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/apierr"
	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

const (
	reportDateLayout   = "2006-01-02"
	defaultReportModel = "gpt-5"
)

type WeeklyReportRequest struct {
	StudentID       string
	ReportWeekStart string
	ReportWeekEnd   string
	Model           string
	Email           string
	SendEmail       bool
}

type WeeklyReportResult struct {
	Report       *types.WeeklyReport
	EmailSent    bool
	EmailDetails *types.EmailDispatchResult
}

// WeeklyReportService runs the full pipeline: aggregate the student's week,
// format the brief, call the model, reconcile numeric sections from stored
// data, then optionally dispatch the report by email. Email failures never
// fail the request.
type WeeklyReportService interface {
	Generate(ctx context.Context, req WeeklyReportRequest) (*WeeklyReportResult, error)
}

type weeklyReportService struct {
	log         *logger.Logger
	aggregator  WeeklyDataAggregator
	synthesizer ReportSynthesizer
	mailer      ReportMailer
}

func NewWeeklyReportService(
	baseLog *logger.Logger,
	aggregator WeeklyDataAggregator,
	synthesizer ReportSynthesizer,
	mailer ReportMailer,
) WeeklyReportService {
	return &weeklyReportService{
		log:         baseLog.With("service", "WeeklyReportService"),
		aggregator:  aggregator,
		synthesizer: synthesizer,
		mailer:      mailer,
	}
}

func (s *weeklyReportService) Generate(ctx context.Context, req WeeklyReportRequest) (*WeeklyReportResult, error) {
	studentID, weekStart, weekEnd, err := validateReportRequest(req)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = defaultReportModel
	}

	started := time.Now()
	s.log.Info("Weekly report generation started",
		"student_id", studentID.String(),
		"week_start", weekStart.Format(reportDateLayout),
		"week_end", weekEnd.Format(reportDateLayout),
		"model", model,
	)

	snap, err := s.aggregator.BuildStudentWeekSnapshot(ctx, studentID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	brief := FormatWeeklyBrief(snap, weekStart, weekEnd)

	raw, err := s.synthesizer.Synthesize(ctx, model, brief)
	if err != nil {
		return nil, err
	}

	report := ReconcileWeeklyReport(raw, snap, weekEnd)

	result := &WeeklyReportResult{Report: report}

	if req.SendEmail && req.Email != "" {
		dispatch := s.mailer.Dispatch(ctx, report, DispatchOptions{
			To:            req.Email,
			Subject:       fmt.Sprintf("Weekly Report %s to %s", weekStart.Format(reportDateLayout), weekEnd.Format(reportDateLayout)),
			RecipientName: snap.Profile.Name,
			RecipientType: types.RoleStudent,
		})
		result.EmailSent = dispatch.Success
		result.EmailDetails = &dispatch
	}

	s.log.Info("Weekly report generation finished",
		"student_id", studentID.String(),
		"email_sent", result.EmailSent,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, nil
}

func validateReportRequest(req WeeklyReportRequest) (uuid.UUID, time.Time, time.Time, error) {
	var zero time.Time

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return uuid.Nil, zero, zero, apierr.WithDetails(http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid student_id: %w", err), "student_id must be a UUID")
	}

	weekStart, err := time.ParseInLocation(reportDateLayout, req.ReportWeekStart, time.UTC)
	if err != nil {
		return uuid.Nil, zero, zero, apierr.WithDetails(http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid report_week_start: %w", err), "report_week_start must be YYYY-MM-DD")
	}
	weekEnd, err := time.ParseInLocation(reportDateLayout, req.ReportWeekEnd, time.UTC)
	if err != nil {
		return uuid.Nil, zero, zero, apierr.WithDetails(http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid report_week_end: %w", err), "report_week_end must be YYYY-MM-DD")
	}
	if weekEnd.Before(weekStart) {
		return uuid.Nil, zero, zero, apierr.WithDetails(http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("report window ends before it starts"), "report_week_end must not precede report_week_start")
	}

	return studentID, weekStart, weekEnd, nil
}
