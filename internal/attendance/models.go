package attendance

import "time"

// Attendance statuses. Half-day counts as half weight in percentage math.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusHalfDay = "Half-day"
)

// Class types tagged on a session.
const (
	ClassTheory    = "Theory"
	ClassPractical = "Practical"
	ClassSeminar   = "Seminar"
	ClassProject   = "Project Presentation"
)

// ValidStatus reports whether s is an accepted attendance status.
func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusHalfDay
}

// ValidClassType reports whether t is an accepted class type.
func ValidClassType(t string) bool {
	return t == ClassTheory || t == ClassPractical || t == ClassSeminar || t == ClassProject
}

// Record is one attendance row, joined with student and subject names for reads.
type Record struct {
	ID             int       `json:"id"`
	StudentID      int       `json:"student_id"`
	StudentName    string    `json:"student_name,omitempty"`
	RegNumber      string    `json:"reg_number,omitempty"`
	SubjectID      int       `json:"subject_id"`
	SubjectName    string    `json:"subject_name,omitempty"`
	SubjectPaperID string    `json:"subject_paper_id,omitempty"`
	PaperID        string    `json:"paper_id"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	ClassType      string    `json:"class_type"`
	Status         string    `json:"status"`
	Remarks        string    `json:"remarks"`
	MarkedBy       int       `json:"marked_by"`
	SessionID      string    `json:"session_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// SessionSummary aggregates one session's records.
type SessionSummary struct {
	SessionID   string `json:"session_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ClassType   string `json:"class_type"`
	SubjectID   int    `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	PaperID     string `json:"paper_id"`
	Total       int    `json:"total"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
}

// Filter narrows record listings. Zero values mean unfiltered.
type Filter struct {
	SubjectID int
	StudentID int
	Date      string
	DateFrom  string
	DateTo    string
	ClassType string
	SessionID string
}

// StudentEntry is one per-student line in a batch mark request.
type StudentEntry struct {
	StudentID int    `json:"student_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
	Remarks   string `json:"remarks"`
}

// MarkInput is one whole session submission.
type MarkInput struct {
	SubjectID int            `json:"subject_id"`
	PaperID   string         `json:"paper_id"`
	Date      string         `json:"date"`
	Time      string         `json:"time"`
	ClassType string         `json:"class_type"`
	Records   []StudentEntry `json:"records"`
	Remarks   string         `json:"remarks"`
}

// EditEntry is one record update within a session edit.
type EditEntry struct {
	ID      int    `json:"id" binding:"required"`
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}
