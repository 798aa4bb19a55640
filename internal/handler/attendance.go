package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mattendance/internal/attendance"
	"mattendance/internal/auth"
)

// MarkAttendance persists one session as an atomic batch.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var req attendance.MarkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := attendance.ValidateMark(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := auth.FromContext(c)
	sessionID, count, err := h.marking.Mark(c.Request.Context(), req, claims.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session_id": sessionID, "count": count})
}

// ListAttendance returns records matching the query filters. Faculty callers
// only see subjects assigned to them.
func (h *Handler) ListAttendance(c *gin.Context) {
	records, err := h.records.ListRecords(c.Request.Context(), attendance.Filter{
		SubjectID: queryInt(c, "subject_id"),
		StudentID: queryInt(c, "student_id"),
		Date:      c.Query("date"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		ClassType: c.Query("class_type"),
		SessionID: c.Query("session_id"),
	}, facultyScope(c))
	if err != nil {
		serverError(c, err)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	c.JSON(http.StatusOK, records)
}

// ListSessions returns session summaries. Faculty callers only see sessions
// they marked.
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.records.ListSessions(c.Request.Context(),
		queryInt(c, "subject_id"), c.Query("date_from"), c.Query("date_to"), facultyScope(c))
	if err != nil {
		serverError(c, err)
		return
	}
	if sessions == nil {
		sessions = []attendance.SessionSummary{}
	}
	c.JSON(http.StatusOK, sessions)
}

type recordUpdateRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

// UpdateAttendance edits status/remarks of a single record.
func (h *Handler) UpdateAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req recordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
		return
	}
	claims := auth.FromContext(c)
	if err := h.marking.EditRecord(c.Request.Context(), id, req.Status, req.Remarks, claims.ID); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type sessionUpdateRequest struct {
	Records []attendance.EditEntry `json:"records" binding:"required"`
}

// UpdateSession edits a batch of records within one session atomically.
func (h *Handler) UpdateSession(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req sessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "records required"})
		return
	}
	claims := auth.FromContext(c)
	if err := h.marking.EditSession(c.Request.Context(), sessionID, req.Records, claims.ID); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportAttendance streams the filtered records as a CSV attachment.
func (h *Handler) ExportAttendance(c *gin.Context) {
	rows, err := h.records.ExportRows(c.Request.Context(),
		queryInt(c, "subject_id"), c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		serverError(c, err)
		return
	}
	csv := attendance.BuildCSV(rows)
	c.Header("Content-Disposition", "attachment; filename=attendance_export.csv")
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}
