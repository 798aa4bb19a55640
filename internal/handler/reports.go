package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mattendance/internal/reports"
)

// Shortage lists (student, subject) groups strictly below the threshold.
func (h *Handler) Shortage(c *gin.Context) {
	rows, err := h.reports.Shortage(c.Request.Context(), reports.ShortageFilter{
		SubjectID: queryInt(c, "subject_id"),
		ProgramID: queryInt(c, "program_id"),
		Month:     c.Query("month"),
		Semester:  c.Query("semester"),
		Threshold: queryFloat(c, "threshold"),
	})
	if err != nil {
		serverError(c, err)
		return
	}
	if rows == nil {
		rows = []reports.ShortageRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// StudentReport returns a student's per-subject summary plus their record.
func (h *Handler) StudentReport(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	student, err := h.catalog.GetStudent(c.Request.Context(), id)
	if err != nil {
		serverError(c, err)
		return
	}
	if student == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	subjects, err := h.reports.StudentSummary(c.Request.Context(), id, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		serverError(c, err)
		return
	}
	if subjects == nil {
		subjects = []reports.StudentSubjectRow{}
	}
	c.JSON(http.StatusOK, gin.H{"student": student, "subjects": subjects})
}

// Monthly returns per-month percentages for a year.
func (h *Handler) Monthly(c *gin.Context) {
	rows, err := h.reports.Monthly(c.Request.Context(),
		queryInt(c, "year"), queryInt(c, "subject_id"), queryInt(c, "program_id"))
	if err != nil {
		serverError(c, err)
		return
	}
	if rows == nil {
		rows = []reports.MonthlyRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// SubjectComparison returns per-subject percentages ordered by paper code.
func (h *Handler) SubjectComparison(c *gin.Context) {
	rows, err := h.reports.SubjectComparison(c.Request.Context(), queryInt(c, "program_id"))
	if err != nil {
		serverError(c, err)
		return
	}
	if rows == nil {
		rows = []reports.ComparisonRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// ClassTypeDistribution returns session/record counts per class type.
func (h *Handler) ClassTypeDistribution(c *gin.Context) {
	rows, err := h.reports.ClassTypeDistribution(c.Request.Context(),
		queryInt(c, "subject_id"), queryInt(c, "program_id"))
	if err != nil {
		serverError(c, err)
		return
	}
	if rows == nil {
		rows = []reports.ClassTypeRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// Predictive returns groups in the warning band with projected percentages.
func (h *Handler) Predictive(c *gin.Context) {
	rows, err := h.reports.Predictive(c.Request.Context(), queryFloat(c, "threshold"))
	if err != nil {
		serverError(c, err)
		return
	}
	if rows == nil {
		rows = []reports.PredictiveRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// Consistency returns the streak-based regularity score for one student.
func (h *Handler) Consistency(c *gin.Context) {
	id, ok := paramID(c, "studentId")
	if !ok {
		return
	}
	result, err := h.reports.Consistency(c.Request.Context(), id)
	if err != nil {
		serverError(c, err)
		return
	}
	if result.TotalDays == 0 {
		c.JSON(http.StatusOK, gin.H{"score": 0, "streak": 0, "total": 0})
		return
	}
	c.JSON(http.StatusOK, result)
}
