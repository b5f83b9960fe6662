package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/studyloop/studyloop-backend/internal/apierr"
	"github.com/studyloop/studyloop-backend/internal/clients/openai"
	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

const (
	// DefaultMaxBriefChars caps model input size; longer briefs are truncated
	// with a visible marker.
	DefaultMaxBriefChars = 50000

	truncationMarker = "\n...[input truncated]"
)

const weeklyReportInstructions = `You are an academic advisor writing a weekly progress report for a student.
You receive a plain-text data brief and respond with a single JSON object, nothing else.
The JSON object uses these keys:
  "summary": {"attendance_rate": number (0-100), "average_score": number (0-100), "progress_change": string, "status": string},
  "study_time_summary": {"total_study_hours": number, "average_daily_hours": number, "most_studied_subject": string, "time_by_subject": [{"subject": string, "hours": number}]},
  "courses": [{"course_name": string, "teacher_name": string, "attendance": string, "weekly_score": number, "weekly_progress": number, "assignments_submitted": number, "feedback": string}],
  "assignments": {"completed_this_week": [], "upcoming_deadlines": []},
  "grade_history": [],
  "top_3_focus_areas_next_week": [string, string, string],
  "weekly_insight": {"summary": string, "highlight": string, "recommendation": string},
  "ai_analysis": {"strengths": [string], "areas_for_improvement": [string]}
Leave "assignments" and "grade_history" as empty placeholders; they are filled in from records later.
Numeric values must be JSON numbers, not strings. Be encouraging but factual; do not invent scores.`

type ReportSynthesizer interface {
	Synthesize(ctx context.Context, model string, brief string) (*types.WeeklyReport, error)
}

type reportSynthesizer struct {
	log           *logger.Logger
	ai            openai.Client
	maxBriefChars int
}

func NewReportSynthesizer(baseLog *logger.Logger, ai openai.Client, maxBriefChars int) ReportSynthesizer {
	if maxBriefChars <= 0 {
		maxBriefChars = DefaultMaxBriefChars
	}
	return &reportSynthesizer{
		log:           baseLog.With("service", "ReportSynthesizer"),
		ai:            ai,
		maxBriefChars: maxBriefChars,
	}
}

func (rs *reportSynthesizer) Synthesize(ctx context.Context, model string, brief string) (*types.WeeklyReport, error) {
	input := SanitizeModelInput(brief, rs.maxBriefChars)

	text, err := rs.ai.Generate(ctx, model, weeklyReportInstructions, input)
	if err != nil {
		return nil, apierr.WithDetails(http.StatusInternalServerError, apierr.CodeUpstreamTransport,
			fmt.Errorf("model call failed: %w", err), err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return nil, apierr.WithDetails(http.StatusInternalServerError, apierr.CodeUpstreamEmptyResponse,
			fmt.Errorf("model returned no text output"), "empty model response")
	}

	// The raw model text is never attached to errors; only its length.
	ext := extractJSONPayload(text)
	if ext.Kind == extractionFailed {
		return nil, apierr.WithDetails(http.StatusInternalServerError, apierr.CodeMalformedModelPayload,
			fmt.Errorf("no parseable JSON object in model output"),
			fmt.Sprintf("model output length %d", len(text)))
	}

	var report types.WeeklyReport
	if err := json.Unmarshal([]byte(ext.JSON), &report); err != nil {
		return nil, apierr.WithDetails(http.StatusInternalServerError, apierr.CodeMalformedModelPayload,
			fmt.Errorf("decode model JSON: %w", err),
			fmt.Sprintf("model output length %d: %v", len(text), err))
	}

	report.Normalize()
	return &report, nil
}

// SanitizeModelInput strips control characters (newline and tab survive),
// normalizes CRLF line endings, trims trailing whitespace, and enforces the
// input ceiling. Truncation always leaves a visible marker.
func SanitizeModelInput(s string, maxChars int) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimRight(b.String(), " \t\n")

	if maxChars > 0 && len(out) > maxChars {
		// Back the cut up to a rune boundary so multi-byte characters are
		// never split.
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut] + truncationMarker
	}
	return out
}
