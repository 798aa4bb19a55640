package reports

// ShortageRow is one (student, subject) group below the threshold.
type ShortageRow struct {
	StudentID    int     `json:"student_id"`
	Name         string  `json:"name"`
	RegNumber    string  `json:"reg_number"`
	Year         int     `json:"year"`
	ProgramName  string  `json:"program_name"`
	PaperID      string  `json:"paper_id"`
	SubjectName  string  `json:"subject_name"`
	TotalClasses int     `json:"total_classes"`
	Attended     float64 `json:"attended"`
	Percentage   float64 `json:"percentage"`
}

// StudentSubjectRow is one per-subject line of a student summary.
type StudentSubjectRow struct {
	SubjectID    int     `json:"subject_id"`
	PaperID      string  `json:"paper_id"`
	SubjectName  string  `json:"subject_name"`
	TotalClasses int     `json:"total_classes"`
	Attended     float64 `json:"attended"`
	Percentage   float64 `json:"percentage"`
}

// MonthlyRow is one calendar month's aggregate.
type MonthlyRow struct {
	Month      string  `json:"month"`
	Total      int     `json:"total"`
	Attended   float64 `json:"attended"`
	Percentage float64 `json:"percentage"`
}

// ComparisonRow is one subject's aggregate.
type ComparisonRow struct {
	SubjectID   int     `json:"id"`
	PaperID     string  `json:"paper_id"`
	SubjectName string  `json:"subject_name"`
	Total       int     `json:"total"`
	Percentage  float64 `json:"percentage"`
}

// ClassTypeRow is one class type's aggregate.
type ClassTypeRow struct {
	ClassType     string  `json:"class_type"`
	Sessions      int     `json:"sessions"`
	TotalRecords  int     `json:"total_records"`
	AttendancePct float64 `json:"attendance_pct"`
}

// PredictiveRow is one (student, subject) group in the warning band.
type PredictiveRow struct {
	StudentID         int     `json:"student_id"`
	Name              string  `json:"name"`
	RegNumber         string  `json:"reg_number"`
	ProgramName       string  `json:"program_name"`
	PaperID           string  `json:"paper_id"`
	SubjectName       string  `json:"subject_name"`
	TotalClasses      int     `json:"total_classes"`
	CurrentPct        float64 `json:"current_pct"`
	ProjectedPctIfAbs float64 `json:"projected_pct_if_absent"`
	Risk              string  `json:"risk"`
}

// ConsistencyResult scores how unbroken a student's attendance is.
type ConsistencyResult struct {
	Score         int `json:"score"`
	CurrentStreak int `json:"current_streak"`
	MaxStreak     int `json:"max_streak"`
	TotalDays     int `json:"total_days"`
	PresentDays   int `json:"present_days"`
}

// ShortageFilter narrows the shortage report.
type ShortageFilter struct {
	SubjectID int
	ProgramID int
	Month     string // YYYY-MM
	Semester  string // "1" = Jan-Jun, "2" = Jul-Dec of the current year
	Threshold float64
}
