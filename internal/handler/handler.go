package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mattendance/internal/attendance"
	"mattendance/internal/auth"
	"mattendance/internal/catalog"
	"mattendance/internal/dashboard"
	"mattendance/internal/reports"
	"mattendance/internal/roster"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	auth      *auth.Service
	catalog   *catalog.Repository
	marking   *attendance.Service
	records   *attendance.Repository
	reports   *reports.Service
	dashboard *dashboard.Service
	importer  *roster.Importer
}

// New creates a handler.
func New(
	authSvc *auth.Service,
	cat *catalog.Repository,
	marking *attendance.Service,
	records *attendance.Repository,
	rep *reports.Service,
	dash *dashboard.Service,
	importer *roster.Importer,
) *Handler {
	return &Handler{
		auth:      authSvc,
		catalog:   cat,
		marking:   marking,
		records:   records,
		reports:   rep,
		dashboard: dash,
		importer:  importer,
	}
}

// paramID parses the named path parameter as a positive integer.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query value; absent or malformed
// values yield zero.
func queryInt(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

// queryFloat parses an optional float query value; absent or malformed
// values yield zero.
func queryFloat(c *gin.Context, name string) float64 {
	v, _ := strconv.ParseFloat(c.Query(name), 64)
	return v
}

// facultyScope returns the caller's faculty id when the token role is
// faculty, zero otherwise. Repositories treat zero as "no scoping".
func facultyScope(c *gin.Context) int {
	claims := auth.FromContext(c)
	if claims.Role == auth.RoleFaculty {
		return claims.ID
	}
	return 0
}

func serverError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func storeError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
