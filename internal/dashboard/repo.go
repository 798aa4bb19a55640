package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mattendance/internal/catalog"
)

// TodayStats aggregates the current date's records.
type TodayStats struct {
	StudentsMarked int `json:"students_marked"`
	Present        int `json:"present"`
	Absent         int `json:"absent"`
	HalfDay        int `json:"half_day"`
	Sessions       int `json:"sessions"`
}

// Summary is the admin dashboard headline block.
type Summary struct {
	TotalStudents     int        `json:"totalStudents"`
	TotalFaculty      int        `json:"totalFaculty"`
	TotalSubjects     int        `json:"totalSubjects"`
	TotalPrograms     int        `json:"totalPrograms"`
	Today             TodayStats `json:"today"`
	ShortageCount     int        `json:"shortageCount"`
	OverallAttendance float64    `json:"overallAttendance"`
}

// TodayRow is one record of today's snapshot with the student's overall
// percentage across all history.
type TodayRow struct {
	StudentID  int     `json:"student_id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	ClassType  string  `json:"class_type"`
	OverallPct float64 `json:"overall_pct"`
}

// HeatmapRow is one calendar day's aggregate within the lookback window.
type HeatmapRow struct {
	Date       string  `json:"date"`
	Total      int     `json:"total"`
	Present    float64 `json:"present"`
	Percentage float64 `json:"percentage"`
}

// Service computes dashboard aggregates on read.
type Service struct {
	db  *sql.DB
	now func() time.Time
}

// NewService creates a dashboard service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db, now: time.Now}
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

// Summary returns entity counts, today's tallies, the count of shortage
// groups below 75%, and the overall historical percentage.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var out Summary

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM students`, &out.TotalStudents},
		{`SELECT COUNT(*) FROM faculty`, &out.TotalFaculty},
		{`SELECT COUNT(*) FROM subjects`, &out.TotalSubjects},
		{`SELECT COUNT(*) FROM programs`, &out.TotalPrograms},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Summary{}, err
		}
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT a.student_id),
		       COALESCE(SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN a.status = 'Absent' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN a.status = 'Half-day' THEN 1 ELSE 0 END), 0),
		       COUNT(DISTINCT a.session_id)
		FROM attendance a WHERE a.date = $1
	`, s.today()).Scan(&out.Today.StudentsMarked, &out.Today.Present, &out.Today.Absent, &out.Today.HalfDay, &out.Today.Sessions)
	if err != nil {
		return Summary{}, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT grp.student_id) FROM (
			SELECT a.student_id,
			       ROUND(SUM(CASE WHEN a.status = 'Present' THEN 1.0 WHEN a.status = 'Half-day' THEN 0.5 ELSE 0 END) * 100.0 / COUNT(*), 1) AS pct
			FROM attendance a
			GROUP BY a.student_id, a.subject_id
			HAVING ROUND(SUM(CASE WHEN a.status = 'Present' THEN 1.0 WHEN a.status = 'Half-day' THEN 0.5 ELSE 0 END) * 100.0 / COUNT(*), 1) < 75
		) grp
	`).Scan(&out.ShortageCount)
	if err != nil {
		return Summary{}, err
	}

	var overall sql.NullFloat64
	err = s.db.QueryRowContext(ctx, `
		SELECT ROUND(
			SUM(CASE WHEN status = 'Present' THEN 1.0 WHEN status = 'Half-day' THEN 0.5 ELSE 0 END) * 100.0 / NULLIF(COUNT(*), 0), 1
		) FROM attendance
	`).Scan(&overall)
	if err != nil {
		return Summary{}, err
	}
	if overall.Valid {
		out.OverallAttendance = overall.Float64
	}

	return out, nil
}

// Today returns one row per attendance record for the current date, each with
// the student's overall percentage computed independently of the day filter.
func (s *Service) Today(ctx context.Context, subjectID int) ([]TodayRow, error) {
	query := `
		SELECT a.student_id, s.name, a.status, a.class_type,
		       (SELECT ROUND(SUM(CASE WHEN a2.status = 'Present' THEN 1.0 WHEN a2.status = 'Half-day' THEN 0.5 ELSE 0 END) * 100.0 / COUNT(*), 1)
		        FROM attendance a2 WHERE a2.student_id = a.student_id) AS overall_pct
		FROM attendance a JOIN students s ON a.student_id = s.id
		WHERE a.date = $1`
	args := []any{s.today()}
	if subjectID > 0 {
		query += fmt.Sprintf(` AND a.subject_id = $%d`, len(args)+1)
		args = append(args, subjectID)
	}
	query += ` ORDER BY s.name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []TodayRow
	for rows.Next() {
		var row TodayRow
		if err := rows.Scan(&row.StudentID, &row.Name, &row.Status, &row.ClassType, &row.OverallPct); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// Heatmap returns one aggregate per calendar date with records inside the
// lookback window. Months defaults to 6.
func (s *Service) Heatmap(ctx context.Context, months, subjectID, programID int) ([]HeatmapRow, error) {
	if months <= 0 {
		months = 6
	}
	start := s.now().AddDate(0, -months, 0).Format("2006-01-02")

	query := `
		SELECT a.date::text,
		       COUNT(*) AS total,
		       SUM(CASE WHEN a.status = 'Present' THEN 1 WHEN a.status = 'Half-day' THEN 0.5 ELSE 0 END) AS present,
		       ROUND(SUM(CASE WHEN a.status = 'Present' THEN 1.0 WHEN a.status = 'Half-day' THEN 0.5 ELSE 0 END) * 100.0 / COUNT(*), 1) AS percentage
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE a.date >= $1`
	args := []any{start}
	if subjectID > 0 {
		query += fmt.Sprintf(` AND a.subject_id = $%d`, len(args)+1)
		args = append(args, subjectID)
	}
	if programID > 0 {
		query += fmt.Sprintf(` AND s.program_id = $%d`, len(args)+1)
		args = append(args, programID)
	}
	query += `
		GROUP BY a.date
		ORDER BY a.date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []HeatmapRow
	for rows.Next() {
		var row HeatmapRow
		if err := rows.Scan(&row.Date, &row.Total, &row.Present, &row.Percentage); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// RecentActivity returns the newest faculty activity entries with names.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]catalog.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.faculty_id, f.name, l.action, l.details, l.timestamp
		FROM faculty_activity_log l
		JOIN faculty f ON l.faculty_id = f.id
		ORDER BY l.timestamp DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []catalog.ActivityEntry
	for rows.Next() {
		var e catalog.ActivityEntry
		if err := rows.Scan(&e.ID, &e.FacultyID, &e.FacultyName, &e.Action, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
