package handler

import (
	"github.com/gin-gonic/gin"

	"mattendance/internal/auth"
)

// Register mounts the API routes on the engine. All routes except the two
// logins require a bearer token; admin-only write surfaces are gated with
// the role middleware.
func (h *Handler) Register(r *gin.Engine, signingKey, issuer string) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/admin/login", h.AdminLogin)
	authGroup.POST("/faculty/login", h.FacultyLogin)
	authGroup.GET("/me", auth.RequireAuth(signingKey, issuer), h.Me)

	secured := api.Group("", auth.RequireAuth(signingKey, issuer))
	admin := auth.AdminOnly()

	programs := secured.Group("/programs")
	programs.GET("", h.ListPrograms)
	programs.POST("", admin, h.CreateProgram)
	programs.PUT("/:id", admin, h.UpdateProgram)
	programs.DELETE("/:id", admin, h.DeleteProgram)

	subjects := secured.Group("/subjects")
	subjects.GET("", h.ListSubjects)
	subjects.GET("/:id", h.GetSubject)
	subjects.POST("", admin, h.CreateSubject)
	subjects.PUT("/:id", admin, h.UpdateSubject)
	subjects.DELETE("/:id", admin, h.DeleteSubject)

	students := secured.Group("/students")
	students.GET("", h.ListStudents)
	students.GET("/:id", h.GetStudent)
	students.POST("", admin, h.CreateStudent)
	students.POST("/import", admin, h.ImportStudents)
	students.PUT("/:id", admin, h.UpdateStudent)
	students.DELETE("/:id", admin, h.DeleteStudent)

	faculty := secured.Group("/faculty")
	faculty.GET("", h.ListFaculty)
	faculty.GET("/:id", h.GetFaculty)
	faculty.GET("/:id/activity", h.FacultyActivity)
	faculty.POST("", admin, h.CreateFaculty)
	faculty.PUT("/:id", admin, h.UpdateFaculty)
	faculty.DELETE("/:id", admin, h.DeleteFaculty)
	faculty.POST("/:id/subjects", admin, h.AssignSubject)
	faculty.DELETE("/:id/subjects/:subjectId", admin, h.UnassignSubject)

	att := secured.Group("/attendance")
	att.POST("", h.MarkAttendance)
	att.GET("", h.ListAttendance)
	att.GET("/sessions", h.ListSessions)
	att.GET("/export", h.ExportAttendance)
	att.PUT("/session/:sessionId", h.UpdateSession)
	att.PUT("/:id", h.UpdateAttendance)

	rep := secured.Group("/reports")
	rep.GET("/shortage", h.Shortage)
	rep.GET("/student/:id", h.StudentReport)
	rep.GET("/monthly", h.Monthly)
	rep.GET("/subject-comparison", h.SubjectComparison)
	rep.GET("/class-type-distribution", h.ClassTypeDistribution)
	rep.GET("/predictive", h.Predictive)
	rep.GET("/consistency/:studentId", h.Consistency)

	dash := secured.Group("/dashboard")
	dash.GET("/summary", h.DashboardSummary)
	dash.GET("/today", h.DashboardToday)
	dash.GET("/heatmap", h.DashboardHeatmap)
	dash.GET("/activity", h.DashboardActivity)
}
