package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/apierr"
	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type StudentHandler struct {
	log        *logger.Logger
	studentSvc services.StudentService
}

func NewStudentHandler(log *logger.Logger, studentSvc services.StudentService) *StudentHandler {
	return &StudentHandler{
		log:        log.With("handler", "StudentHandler"),
		studentSvc: studentSvc,
	}
}

// GET /api/students/:id
func (h *StudentHandler) GetProfile(c *gin.Context) {
	studentID, ok := parseStudentID(c)
	if !ok {
		return
	}

	profile, err := h.studentSvc.GetProfile(c.Request.Context(), studentID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, profile)
}

// GET /api/students/:id/classes
func (h *StudentHandler) GetClasses(c *gin.Context) {
	studentID, ok := parseStudentID(c)
	if !ok {
		return
	}

	classes, err := h.studentSvc.GetClasses(c.Request.Context(), studentID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"classes": classes})
}

func parseStudentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, fmt.Errorf("invalid student id: %w", err))
		return uuid.Nil, false
	}
	return id, true
}
