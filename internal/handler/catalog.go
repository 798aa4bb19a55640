package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mattendance/internal/catalog"
)

// ---------- Programs ----------

type programRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) ListPrograms(c *gin.Context) {
	programs, err := h.catalog.ListPrograms(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	if programs == nil {
		programs = []catalog.Program{}
	}
	c.JSON(http.StatusOK, programs)
}

func (h *Handler) CreateProgram(c *gin.Context) {
	var req programRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Program name required"})
		return
	}
	id, err := h.catalog.CreateProgram(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "name": req.Name, "description": req.Description})
}

func (h *Handler) UpdateProgram(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req programRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Program name required"})
		return
	}
	if err := h.catalog.UpdateProgram(c.Request.Context(), id, req.Name, req.Description); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteProgram(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProgram(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---------- Subjects ----------

type subjectRequest struct {
	PaperID   string `json:"paper_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ProgramID int    `json:"program_id" binding:"required"`
	Year      int    `json:"year"`
}

func (h *Handler) ListSubjects(c *gin.Context) {
	subjects, err := h.catalog.ListSubjects(c.Request.Context(), catalog.SubjectFilter{
		ProgramID: queryInt(c, "program_id"),
		Year:      queryInt(c, "year"),
	})
	if err != nil {
		serverError(c, err)
		return
	}
	if subjects == nil {
		subjects = []catalog.Subject{}
	}
	c.JSON(http.StatusOK, subjects)
}

func (h *Handler) GetSubject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	subject, err := h.catalog.GetSubject(c.Request.Context(), id)
	if err != nil {
		serverError(c, err)
		return
	}
	if subject == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (h *Handler) CreateSubject(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paper ID, name, and program required"})
		return
	}
	if req.Year == 0 {
		req.Year = 1
	}
	id, err := h.catalog.CreateSubject(c.Request.Context(), req.PaperID, req.Name, req.ProgramID, req.Year)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "paper_id": req.PaperID, "name": req.Name, "program_id": req.ProgramID, "year": req.Year})
}

func (h *Handler) UpdateSubject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paper ID, name, and program required"})
		return
	}
	if req.Year == 0 {
		req.Year = 1
	}
	if err := h.catalog.UpdateSubject(c.Request.Context(), id, req.PaperID, req.Name, req.ProgramID, req.Year); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteSubject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteSubject(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---------- Faculty ----------

type facultyRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

func (h *Handler) ListFaculty(c *gin.Context) {
	faculty, err := h.catalog.ListFaculty(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	if faculty == nil {
		faculty = []catalog.Faculty{}
	}
	c.JSON(http.StatusOK, faculty)
}

func (h *Handler) GetFaculty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	f, err := h.catalog.GetFaculty(c.Request.Context(), id)
	if err != nil {
		serverError(c, err)
		return
	}
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Faculty not found"})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) CreateFaculty(c *gin.Context) {
	var req facultyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and password required"})
		return
	}
	id, err := h.catalog.CreateFaculty(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "name": req.Name, "email": req.Email})
}

func (h *Handler) UpdateFaculty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req facultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email required"})
		return
	}
	if err := h.catalog.UpdateFaculty(c.Request.Context(), id, req.Name, req.Email, req.Password); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteFaculty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteFaculty(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type assignRequest struct {
	SubjectID int `json:"subject_id" binding:"required"`
}

func (h *Handler) AssignSubject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject_id required"})
		return
	}
	if err := h.catalog.AssignSubject(c.Request.Context(), id, req.SubjectID); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) UnassignSubject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	subjectID, ok := paramID(c, "subjectId")
	if !ok {
		return
	}
	if err := h.catalog.UnassignSubject(c.Request.Context(), id, subjectID); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) FacultyActivity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	entries, err := h.catalog.FacultyActivity(c.Request.Context(), id, 50)
	if err != nil {
		serverError(c, err)
		return
	}
	if entries == nil {
		entries = []catalog.ActivityEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
