package attendance

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository persists attendance data in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertSession writes one attendance row per record plus one activity-log
// entry, all in a single transaction. Either every row exists afterwards or
// none do.
func (r *Repository) InsertSession(ctx context.Context, in MarkInput, markedBy int, sessionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range in.Records {
		remarks := rec.Remarks
		if remarks == "" {
			remarks = in.Remarks
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO attendance (student_id, subject_id, paper_id, date, time, class_type, status, remarks, marked_by, session_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, rec.StudentID, in.SubjectID, in.PaperID, in.Date, in.Time, in.ClassType, rec.Status, remarks, markedBy, sessionID); err != nil {
			return err
		}
	}

	details := fmt.Sprintf("Marked attendance for %d students in %s (%s) on %s", len(in.Records), in.PaperID, in.ClassType, in.Date)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO faculty_activity_log (faculty_id, action, details) VALUES ($1, $2, $3)
	`, markedBy, "MARK_ATTENDANCE", details); err != nil {
		return err
	}

	return tx.Commit()
}

// ListRecords returns attendance rows matching the filter, newest first.
// When scopeFacultyID is non-zero, results are restricted to subjects
// assigned to that faculty member.
func (r *Repository) ListRecords(ctx context.Context, f Filter, scopeFacultyID int) ([]Record, error) {
	query := `
		SELECT a.id, a.student_id, s.name, s.reg_number,
		       a.subject_id, sub.name, sub.paper_id,
		       a.paper_id, a.date::text, a.time, a.class_type, a.status, a.remarks,
		       a.marked_by, a.session_id, a.created_at
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		JOIN subjects sub ON a.subject_id = sub.id`
	args := []any{}
	clauses := []string{}
	add := func(clause string, val any) {
		clauses = append(clauses, fmt.Sprintf(clause, len(args)+1))
		args = append(args, val)
	}
	if f.SubjectID > 0 {
		add("a.subject_id = $%d", f.SubjectID)
	}
	if f.StudentID > 0 {
		add("a.student_id = $%d", f.StudentID)
	}
	if f.Date != "" {
		add("a.date = $%d", f.Date)
	}
	if f.DateFrom != "" {
		add("a.date >= $%d", f.DateFrom)
	}
	if f.DateTo != "" {
		add("a.date <= $%d", f.DateTo)
	}
	if f.ClassType != "" {
		add("a.class_type = $%d", f.ClassType)
	}
	if f.SessionID != "" {
		add("a.session_id = $%d", f.SessionID)
	}
	if scopeFacultyID > 0 {
		add("a.subject_id IN (SELECT subject_id FROM faculty_subjects WHERE faculty_id = $%d)", scopeFacultyID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + joinClauses(clauses, " AND ")
	}
	query += " ORDER BY a.date DESC, a.time DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.StudentID, &rec.StudentName, &rec.RegNumber,
			&rec.SubjectID, &rec.SubjectName, &rec.SubjectPaperID,
			&rec.PaperID, &rec.Date, &rec.Time, &rec.ClassType, &rec.Status, &rec.Remarks,
			&rec.MarkedBy, &rec.SessionID, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// ListSessions returns per-session summaries, newest first. When
// scopeFacultyID is non-zero, only sessions marked by that faculty member
// are returned.
func (r *Repository) ListSessions(ctx context.Context, subjectID int, dateFrom, dateTo string, scopeFacultyID int) ([]SessionSummary, error) {
	query := `
		SELECT a.session_id, a.date::text, a.time, a.class_type, a.subject_id, sub.name, sub.paper_id,
		       COUNT(*) AS total,
		       SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END) AS present,
		       SUM(CASE WHEN a.status = 'Absent' THEN 1 ELSE 0 END) AS absent
		FROM attendance a JOIN subjects sub ON a.subject_id = sub.id`
	args := []any{}
	clauses := []string{}
	add := func(clause string, val any) {
		clauses = append(clauses, fmt.Sprintf(clause, len(args)+1))
		args = append(args, val)
	}
	if subjectID > 0 {
		add("a.subject_id = $%d", subjectID)
	}
	if dateFrom != "" {
		add("a.date >= $%d", dateFrom)
	}
	if dateTo != "" {
		add("a.date <= $%d", dateTo)
	}
	if scopeFacultyID > 0 {
		add("a.marked_by = $%d", scopeFacultyID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + joinClauses(clauses, " AND ")
	}
	query += `
		GROUP BY a.session_id, a.date, a.time, a.class_type, a.subject_id, sub.name, sub.paper_id
		ORDER BY a.date DESC, a.time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.SessionID, &s.Date, &s.Time, &s.ClassType, &s.SubjectID, &s.SubjectName, &s.PaperID, &s.Total, &s.Present, &s.Absent); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// UpdateRecord updates status and remarks of one row and logs the edit.
func (r *Repository) UpdateRecord(ctx context.Context, id int, status, remarks string, editorID int) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE attendance SET status = $1, remarks = $2 WHERE id = $3
	`, status, remarks, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO faculty_activity_log (faculty_id, action, details) VALUES ($1, $2, $3)
	`, editorID, "EDIT_ATTENDANCE", fmt.Sprintf("Updated attendance record #%d to %s", id, status))
	return err
}

// UpdateSession applies per-record edits within one session as a single
// transaction and logs one entry for the whole batch.
func (r *Repository) UpdateSession(ctx context.Context, sessionID string, edits []EditEntry, editorID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range edits {
		if _, err := tx.ExecContext(ctx, `
			UPDATE attendance SET status = $1, remarks = $2 WHERE id = $3 AND session_id = $4
		`, e.Status, e.Remarks, e.ID, sessionID); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO faculty_activity_log (faculty_id, action, details) VALUES ($1, $2, $3)
	`, editorID, "EDIT_SESSION", fmt.Sprintf("Updated session %s", sessionID)); err != nil {
		return err
	}

	return tx.Commit()
}

// ExportRow is one flattened line of the CSV export.
type ExportRow struct {
	Date        string
	Time        string
	StudentName string
	RegNumber   string
	SubjectName string
	PaperID     string
	ClassType   string
	Status      string
	Remarks     string
}

// ExportRows returns rows for the CSV export, ordered by date then student name.
func (r *Repository) ExportRows(ctx context.Context, subjectID int, dateFrom, dateTo string) ([]ExportRow, error) {
	query := `
		SELECT a.date::text, a.time, a.class_type, a.status, a.remarks,
		       s.name, s.reg_number, sub.paper_id, sub.name
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		JOIN subjects sub ON a.subject_id = sub.id`
	args := []any{}
	clauses := []string{}
	add := func(clause string, val any) {
		clauses = append(clauses, fmt.Sprintf(clause, len(args)+1))
		args = append(args, val)
	}
	if subjectID > 0 {
		add("a.subject_id = $%d", subjectID)
	}
	if dateFrom != "" {
		add("a.date >= $%d", dateFrom)
	}
	if dateTo != "" {
		add("a.date <= $%d", dateTo)
	}
	if len(clauses) > 0 {
		query += " WHERE " + joinClauses(clauses, " AND ")
	}
	query += " ORDER BY a.date, s.name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ExportRow
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(&row.Date, &row.Time, &row.ClassType, &row.Status, &row.Remarks,
			&row.StudentName, &row.RegNumber, &row.PaperID, &row.SubjectName); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

func joinClauses(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for i := 1; i < len(parts); i++ {
		out += sep + parts[i]
	}
	return out
}
