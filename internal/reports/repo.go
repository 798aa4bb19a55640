package reports

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// attendedExpr is the weighted present numerator shared by every report:
// Present counts 1, Half-day counts 0.5, Absent counts 0.
const attendedExpr = `SUM(CASE WHEN a.status = 'Present' THEN 1.0 WHEN a.status = 'Half-day' THEN 0.5 ELSE 0 END)`

// pctExpr rounds the weighted percentage to one decimal.
const pctExpr = `ROUND(` + attendedExpr + ` * 100.0 / COUNT(*), 1)`

// Service computes derived attendance figures on read. Nothing here
// persists a derived value.
type Service struct {
	db  *sql.DB
	now func() time.Time
}

// NewService creates a reporting service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Shortage returns (student, subject) groups strictly below the threshold,
// worst first. Threshold defaults to 75.
func (s *Service) Shortage(ctx context.Context, f ShortageFilter) ([]ShortageRow, error) {
	if f.Threshold <= 0 {
		f.Threshold = 75
	}

	filters := ""
	args := []any{}
	idx := 1
	next := func() string { n := fmt.Sprintf("$%d", idx); idx++; return n }

	if f.Month != "" {
		filters += ` AND TO_CHAR(a.date, 'YYYY-MM') = ` + next()
		args = append(args, f.Month)
	}
	if f.Semester == "1" || f.Semester == "2" {
		year := s.now().Year()
		from, to := fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-06-30", year)
		if f.Semester == "2" {
			from, to = fmt.Sprintf("%d-07-01", year), fmt.Sprintf("%d-12-31", year)
		}
		filters += ` AND a.date >= ` + next() + ` AND a.date <= ` + next()
		args = append(args, from, to)
	}
	if f.SubjectID > 0 {
		filters += ` AND a.subject_id = ` + next()
		args = append(args, f.SubjectID)
	}
	if f.ProgramID > 0 {
		filters += ` AND s.program_id = ` + next()
		args = append(args, f.ProgramID)
	}
	thresholdParam := next()
	args = append(args, f.Threshold)

	query := `
		SELECT s.id, s.name, s.reg_number, s.year,
		       p.name, sub.paper_id, sub.name,
		       COUNT(*) AS total_classes,
		       ` + attendedExpr + ` AS attended,
		       ` + pctExpr + ` AS percentage
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		JOIN programs p ON s.program_id = p.id
		JOIN subjects sub ON a.subject_id = sub.id
		WHERE 1=1` + filters + `
		GROUP BY s.id, s.name, s.reg_number, s.year, p.name, sub.paper_id, sub.name, a.subject_id
		HAVING ` + pctExpr + ` < ` + thresholdParam + `
		ORDER BY percentage ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ShortageRow
	for rows.Next() {
		var row ShortageRow
		if err := rows.Scan(&row.StudentID, &row.Name, &row.RegNumber, &row.Year,
			&row.ProgramName, &row.PaperID, &row.SubjectName,
			&row.TotalClasses, &row.Attended, &row.Percentage); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// StudentSummary returns per-subject aggregates for one student within an
// optional date window.
func (s *Service) StudentSummary(ctx context.Context, studentID int, dateFrom, dateTo string) ([]StudentSubjectRow, error) {
	filters := ""
	args := []any{studentID}
	if dateFrom != "" {
		filters += fmt.Sprintf(` AND a.date >= $%d`, len(args)+1)
		args = append(args, dateFrom)
	}
	if dateTo != "" {
		filters += fmt.Sprintf(` AND a.date <= $%d`, len(args)+1)
		args = append(args, dateTo)
	}

	query := `
		SELECT sub.id, sub.paper_id, sub.name,
		       COUNT(*) AS total_classes,
		       ` + attendedExpr + ` AS attended,
		       ` + pctExpr + ` AS percentage
		FROM attendance a
		JOIN subjects sub ON a.subject_id = sub.id
		WHERE a.student_id = $1` + filters + `
		GROUP BY sub.id, sub.paper_id, sub.name, a.subject_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []StudentSubjectRow
	for rows.Next() {
		var row StudentSubjectRow
		if err := rows.Scan(&row.SubjectID, &row.PaperID, &row.SubjectName,
			&row.TotalClasses, &row.Attended, &row.Percentage); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// Monthly returns one aggregate per calendar month of the given year,
// chronological. Year defaults to the current year.
func (s *Service) Monthly(ctx context.Context, year, subjectID, programID int) ([]MonthlyRow, error) {
	if year <= 0 {
		year = s.now().Year()
	}
	filters := ""
	args := []any{year}
	if subjectID > 0 {
		filters += fmt.Sprintf(` AND a.subject_id = $%d`, len(args)+1)
		args = append(args, subjectID)
	}
	if programID > 0 {
		filters += fmt.Sprintf(` AND s.program_id = $%d`, len(args)+1)
		args = append(args, programID)
	}

	query := `
		SELECT TO_CHAR(a.date, 'YYYY-MM') AS month,
		       COUNT(*) AS total,
		       ` + attendedExpr + ` AS attended,
		       ` + pctExpr + ` AS percentage
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE EXTRACT(YEAR FROM a.date) = $1` + filters + `
		GROUP BY month
		ORDER BY month`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []MonthlyRow
	for rows.Next() {
		var row MonthlyRow
		if err := rows.Scan(&row.Month, &row.Total, &row.Attended, &row.Percentage); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// SubjectComparison returns one aggregate per subject, ordered by paper code.
func (s *Service) SubjectComparison(ctx context.Context, programID int) ([]ComparisonRow, error) {
	filters := ""
	args := []any{}
	if programID > 0 {
		filters = ` AND s.program_id = $1`
		args = append(args, programID)
	}

	query := `
		SELECT sub.id, sub.paper_id, sub.name,
		       COUNT(*) AS total,
		       ` + pctExpr + ` AS percentage
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		JOIN subjects sub ON a.subject_id = sub.id
		WHERE 1=1` + filters + `
		GROUP BY sub.id, sub.paper_id, sub.name, a.subject_id
		ORDER BY sub.paper_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ComparisonRow
	for rows.Next() {
		var row ComparisonRow
		if err := rows.Scan(&row.SubjectID, &row.PaperID, &row.SubjectName, &row.Total, &row.Percentage); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// ClassTypeDistribution returns distinct-session and record counts plus the
// weighted percentage per class type.
func (s *Service) ClassTypeDistribution(ctx context.Context, subjectID, programID int) ([]ClassTypeRow, error) {
	filters := ""
	args := []any{}
	if subjectID > 0 {
		filters += fmt.Sprintf(` AND a.subject_id = $%d`, len(args)+1)
		args = append(args, subjectID)
	}
	if programID > 0 {
		filters += fmt.Sprintf(` AND s.program_id = $%d`, len(args)+1)
		args = append(args, programID)
	}

	query := `
		SELECT a.class_type,
		       COUNT(DISTINCT a.session_id) AS sessions,
		       COUNT(*) AS total_records,
		       ` + pctExpr + ` AS attendance_pct
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE 1=1` + filters + `
		GROUP BY a.class_type`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ClassTypeRow
	for rows.Next() {
		var row ClassTypeRow
		if err := rows.Scan(&row.ClassType, &row.Sessions, &row.TotalRecords, &row.AttendancePct); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// Predictive returns (student, subject) groups whose current percentage sits
// in the warning band [threshold, threshold+10], together with the projected
// percentage after five hypothetical absences (same numerator, denominator
// grown by 5). No subject or program filters apply here.
func (s *Service) Predictive(ctx context.Context, threshold float64) ([]PredictiveRow, error) {
	if threshold <= 0 {
		threshold = 75
	}
	warningZone := threshold + 10

	query := `
		SELECT s.id, s.name, s.reg_number,
		       p.name, sub.paper_id, sub.name,
		       COUNT(*) AS total_classes,
		       ` + pctExpr + ` AS current_pct,
		       ROUND(` + attendedExpr + ` * 100.0 / (COUNT(*) + 5), 1) AS projected_pct_if_absent
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		JOIN programs p ON s.program_id = p.id
		JOIN subjects sub ON a.subject_id = sub.id
		GROUP BY s.id, s.name, s.reg_number, p.name, sub.paper_id, sub.name, a.subject_id
		HAVING ` + pctExpr + ` <= $1 AND ` + pctExpr + ` >= $2
		ORDER BY current_pct ASC`

	rows, err := s.db.QueryContext(ctx, query, warningZone, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []PredictiveRow
	for rows.Next() {
		var row PredictiveRow
		if err := rows.Scan(&row.StudentID, &row.Name, &row.RegNumber,
			&row.ProgramName, &row.PaperID, &row.SubjectName,
			&row.TotalClasses, &row.CurrentPct, &row.ProjectedPctIfAbs); err != nil {
			return nil, err
		}
		row.Risk = RiskLabel(row.ProjectedPctIfAbs, threshold)
		res = append(res, row)
	}
	return res, rows.Err()
}

// Consistency scores one student's attendance regularity from a
// chronological scan of their records.
func (s *Service) Consistency(ctx context.Context, studentID int) (ConsistencyResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.status FROM attendance a WHERE a.student_id = $1 ORDER BY a.date
	`, studentID)
	if err != nil {
		return ConsistencyResult{}, err
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var st string
		if err := rows.Scan(&st); err != nil {
			return ConsistencyResult{}, err
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return ConsistencyResult{}, err
	}
	return ComputeConsistency(statuses), nil
}
