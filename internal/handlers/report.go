package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyloop/studyloop-backend/internal/apierr"
	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/services"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type ReportHandler struct {
	log       *logger.Logger
	reportSvc services.WeeklyReportService
}

func NewReportHandler(log *logger.Logger, reportSvc services.WeeklyReportService) *ReportHandler {
	return &ReportHandler{
		log:       log.With("handler", "ReportHandler"),
		reportSvc: reportSvc,
	}
}

type generateWeeklyReportRequest struct {
	StudentID       string `json:"student_id" binding:"required"`
	ReportWeekStart string `json:"report_week_start" binding:"required"`
	ReportWeekEnd   string `json:"report_week_end" binding:"required"`
	Model           string `json:"model"`
	Email           string `json:"email"`
	SendEmail       bool   `json:"send_email"`
}

type generateWeeklyReportData struct {
	WeeklyReport *types.WeeklyReport        `json:"weekly_report"`
	EmailSent    bool                       `json:"email_sent"`
	EmailDetails *types.EmailDispatchResult `json:"email_details"`
}

type generateWeeklyReportResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Data    generateWeeklyReportData `json:"data"`
}

// POST /api/reports/weekly
func (h *ReportHandler) GenerateWeekly(c *gin.Context) {
	var req generateWeeklyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}

	result, err := h.reportSvc.Generate(c.Request.Context(), services.WeeklyReportRequest{
		StudentID:       req.StudentID,
		ReportWeekStart: req.ReportWeekStart,
		ReportWeekEnd:   req.ReportWeekEnd,
		Model:           req.Model,
		Email:           req.Email,
		SendEmail:       req.SendEmail,
	})
	if err != nil {
		h.log.Warn("Weekly report generation failed", "error", err)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, generateWeeklyReportResponse{
		Success: true,
		Message: "Weekly report generated",
		Data: generateWeeklyReportData{
			WeeklyReport: result.Report,
			EmailSent:    result.EmailSent,
			EmailDetails: result.EmailDetails,
		},
	})
}
