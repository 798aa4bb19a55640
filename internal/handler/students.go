package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mattendance/internal/catalog"
	"mattendance/internal/roster"
)

type studentRequest struct {
	Name      string `json:"name" binding:"required"`
	RegNumber string `json:"reg_number" binding:"required"`
	ProgramID int    `json:"program_id" binding:"required"`
	Year      int    `json:"year"`
}

func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.catalog.ListStudents(c.Request.Context(), catalog.StudentFilter{
		ProgramID: queryInt(c, "program_id"),
		Year:      queryInt(c, "year"),
		Search:    c.Query("search"),
	})
	if err != nil {
		serverError(c, err)
		return
	}
	if students == nil {
		students = []catalog.Student{}
	}
	c.JSON(http.StatusOK, students)
}

func (h *Handler) GetStudent(c *gin.Context) {
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
	c.JSON(http.StatusOK, student)
}

func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, registration number, and program required"})
		return
	}
	if req.Year == 0 {
		req.Year = 1
	}
	id, err := h.catalog.CreateStudent(c.Request.Context(), req.Name, req.RegNumber, req.ProgramID, req.Year)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "name": req.Name, "reg_number": req.RegNumber, "program_id": req.ProgramID, "year": req.Year})
}

func (h *Handler) UpdateStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, registration number, and program required"})
		return
	}
	if req.Year == 0 {
		req.Year = 1
	}
	if err := h.catalog.UpdateStudent(c.Request.Context(), id, req.Name, req.RegNumber, req.ProgramID, req.Year); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteStudent(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ImportStudents accepts a multipart CSV file and bulk-inserts students.
func (h *Handler) ImportStudents(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	result, err := h.importer.Import(c.Request.Context(), file)
	if err == roster.ErrTooShort || err == roster.ErrMissingColumns {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
