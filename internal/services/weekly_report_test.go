package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/apierr"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type fakeAggregator struct {
	snap *StudentWeekSnapshot
	err  error
}

func (f *fakeAggregator) BuildStudentWeekSnapshot(ctx context.Context, studentID uuid.UUID, weekStart, weekEnd time.Time) (*StudentWeekSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.snap.WeekStart = weekStart
	f.snap.WeekEnd = weekEnd
	return f.snap, nil
}

type fakeSynthesizer struct {
	report    *types.WeeklyReport
	err       error
	lastModel string
	lastBrief string
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, model, brief string) (*types.WeeklyReport, error) {
	f.lastModel = model
	f.lastBrief = brief
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fakeMailer struct {
	result   types.EmailDispatchResult
	lastOpts DispatchOptions
	calls    int
}

func (f *fakeMailer) Dispatch(ctx context.Context, report *types.WeeklyReport, opts DispatchOptions) types.EmailDispatchResult {
	f.calls++
	f.lastOpts = opts
	return f.result
}

func newOrchestratorFixture(t *testing.T) (*fakeAggregator, *fakeSynthesizer, *fakeMailer, WeeklyReportService) {
	t.Helper()
	agg := &fakeAggregator{snap: newTestSnapshot()}
	synth := &fakeSynthesizer{report: &types.WeeklyReport{WeeklyInsight: types.WeeklyInsight{Summary: "ok"}}}
	mailer := &fakeMailer{result: types.EmailDispatchResult{Success: true, MessageID: "m-1"}}
	svc := NewWeeklyReportService(testLogger(t), agg, synth, mailer)
	return agg, synth, mailer, svc
}

func validRequest() WeeklyReportRequest {
	return WeeklyReportRequest{
		StudentID:       uuid.NewString(),
		ReportWeekStart: "2024-03-01",
		ReportWeekEnd:   "2024-03-07",
	}
}

func TestGenerate_RejectsBadStudentID(t *testing.T) {
	_, _, _, svc := newOrchestratorFixture(t)

	req := validRequest()
	req.StudentID = "not-a-uuid"

	_, err := svc.Generate(context.Background(), req)
	assertAPIError(t, err, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestGenerate_RejectsBadDates(t *testing.T) {
	_, _, _, svc := newOrchestratorFixture(t)

	req := validRequest()
	req.ReportWeekStart = "03/01/2024"
	_, err := svc.Generate(context.Background(), req)
	assertAPIError(t, err, http.StatusBadRequest, apierr.CodeInvalidRequest)

	req = validRequest()
	req.ReportWeekEnd = "2024-13-40"
	_, err = svc.Generate(context.Background(), req)
	assertAPIError(t, err, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestGenerate_RejectsInvertedWindow(t *testing.T) {
	_, _, _, svc := newOrchestratorFixture(t)

	req := validRequest()
	req.ReportWeekStart = "2024-03-07"
	req.ReportWeekEnd = "2024-03-01"

	_, err := svc.Generate(context.Background(), req)
	assertAPIError(t, err, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestGenerate_SingleDayWindowAllowed(t *testing.T) {
	_, _, _, svc := newOrchestratorFixture(t)

	req := validRequest()
	req.ReportWeekStart = "2024-03-04"
	req.ReportWeekEnd = "2024-03-04"

	if _, err := svc.Generate(context.Background(), req); err != nil {
		t.Fatalf("single-day window should be valid: %v", err)
	}
}

func TestGenerate_DefaultsModel(t *testing.T) {
	_, synth, _, svc := newOrchestratorFixture(t)

	if _, err := svc.Generate(context.Background(), validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synth.lastModel != "gpt-5" {
		t.Fatalf("expected default model, got %q", synth.lastModel)
	}

	req := validRequest()
	req.Model = "gpt-5-mini"
	if _, err := svc.Generate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synth.lastModel != "gpt-5-mini" {
		t.Fatalf("explicit model not forwarded, got %q", synth.lastModel)
	}
}

func TestGenerate_PipesBriefToSynthesizer(t *testing.T) {
	_, synth, _, svc := newOrchestratorFixture(t)

	if _, err := svc.Generate(context.Background(), validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(synth.lastBrief, "Ada Lovelace") {
		t.Fatalf("brief missing student name:\n%s", synth.lastBrief)
	}
	if !strings.Contains(synth.lastBrief, "2024-03-01 to 2024-03-07") {
		t.Fatalf("brief missing window:\n%s", synth.lastBrief)
	}
}

func TestGenerate_NoEmailByDefault(t *testing.T) {
	_, _, mailer, svc := newOrchestratorFixture(t)

	result, err := svc.Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.calls != 0 {
		t.Fatalf("mailer invoked without send_email")
	}
	if result.EmailSent || result.EmailDetails != nil {
		t.Fatalf("unexpected email state: %+v", result)
	}
	if result.Report == nil || result.Report.Assignments.CompletedThisWeek == nil {
		t.Fatalf("expected reconciled report, got %+v", result.Report)
	}
}

func TestGenerate_SendEmailWithoutAddressSkipsDispatch(t *testing.T) {
	_, _, mailer, svc := newOrchestratorFixture(t)

	req := validRequest()
	req.SendEmail = true

	result, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.calls != 0 || result.EmailSent {
		t.Fatalf("dispatch attempted without an address")
	}
}

func TestGenerate_EmailDispatched(t *testing.T) {
	_, _, mailer, svc := newOrchestratorFixture(t)

	req := validRequest()
	req.SendEmail = true
	req.Email = "student@example.com"

	result, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.calls != 1 {
		t.Fatalf("expected one dispatch, got %d", mailer.calls)
	}
	if !result.EmailSent || result.EmailDetails == nil || result.EmailDetails.MessageID != "m-1" {
		t.Fatalf("unexpected email state: %+v", result)
	}
	if mailer.lastOpts.To != "student@example.com" {
		t.Fatalf("recipient not forwarded: %+v", mailer.lastOpts)
	}
	if !strings.Contains(mailer.lastOpts.Subject, "2024-03-01") || !strings.Contains(mailer.lastOpts.Subject, "2024-03-07") {
		t.Fatalf("subject missing window: %q", mailer.lastOpts.Subject)
	}
	if mailer.lastOpts.RecipientName != "Ada Lovelace" {
		t.Fatalf("recipient name not taken from profile: %q", mailer.lastOpts.RecipientName)
	}
	if mailer.lastOpts.RecipientType != types.RoleStudent {
		t.Fatalf("expected recipient type %q, got %q", types.RoleStudent, mailer.lastOpts.RecipientType)
	}
}

func TestGenerate_EmailFailureDoesNotFailRequest(t *testing.T) {
	_, _, mailer, svc := newOrchestratorFixture(t)
	mailer.result = types.EmailDispatchResult{Success: false, Error: "invalid recipient address"}

	req := validRequest()
	req.SendEmail = true
	req.Email = "broken@@example.com"

	result, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("email failure must not fail the request: %v", err)
	}
	if result.EmailSent {
		t.Fatalf("expected email_sent=false")
	}
	if result.EmailDetails == nil || result.EmailDetails.Error == "" {
		t.Fatalf("expected dispatch failure details, got %+v", result.EmailDetails)
	}
	if result.Report == nil {
		t.Fatalf("report must still be returned")
	}
}

func TestGenerate_AggregatorErrorPropagates(t *testing.T) {
	agg, _, _, svc := newOrchestratorFixture(t)
	agg.err = apierr.New(http.StatusNotFound, apierr.CodeStudentNotFound, errors.New("no profile"))

	_, err := svc.Generate(context.Background(), validRequest())
	assertAPIError(t, err, http.StatusNotFound, apierr.CodeStudentNotFound)
}

func TestGenerate_SynthesizerErrorPropagates(t *testing.T) {
	_, synth, _, svc := newOrchestratorFixture(t)
	synth.err = apierr.New(http.StatusInternalServerError, apierr.CodeUpstreamEmptyResponse, errors.New("empty"))

	_, err := svc.Generate(context.Background(), validRequest())
	assertAPIError(t, err, http.StatusInternalServerError, apierr.CodeUpstreamEmptyResponse)
}

func assertAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T (%v)", err, err)
	}
	if apiErr.Status != status || apiErr.Code != code {
		t.Fatalf("expected %d/%s, got %d/%s", status, code, apiErr.Status, apiErr.Code)
	}
}
