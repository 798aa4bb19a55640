package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Repository persists the department catalog in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ---------- Programs ----------

// ListPrograms returns all programs ordered by name.
func (r *Repository) ListPrograms(ctx context.Context) ([]Program, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, created_at FROM programs ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// CreateProgram inserts a program and returns its id.
func (r *Repository) CreateProgram(ctx context.Context, name, description string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO programs (name, description) VALUES ($1, $2) RETURNING id
	`, name, description).Scan(&id)
	return id, err
}

// UpdateProgram updates a program in place.
func (r *Repository) UpdateProgram(ctx context.Context, id int, name, description string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE programs SET name = $1, description = $2 WHERE id = $3
	`, name, description, id)
	return err
}

// DeleteProgram removes a program; subjects and students cascade.
func (r *Repository) DeleteProgram(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = $1`, id)
	return err
}

// ---------- Subjects ----------

// ListSubjects returns subjects with program names, optionally filtered,
// ordered by paper code.
func (r *Repository) ListSubjects(ctx context.Context, f SubjectFilter) ([]Subject, error) {
	query := `
		SELECT s.id, s.paper_id, s.name, s.program_id, p.name, s.year, s.created_at
		FROM subjects s JOIN programs p ON s.program_id = p.id`
	args := []any{}
	clauses := []string{}
	if f.ProgramID > 0 {
		clauses = append(clauses, "s.program_id = $"+itoa(len(args)+1))
		args = append(args, f.ProgramID)
	}
	if f.Year > 0 {
		clauses = append(clauses, "s.year = $"+itoa(len(args)+1))
		args = append(args, f.Year)
	}
	if len(clauses) > 0 {
		query += " WHERE " + joinClauses(clauses, " AND ")
	}
	query += " ORDER BY s.paper_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Subject
	for rows.Next() {
		var s Subject
		if err := rows.Scan(&s.ID, &s.PaperID, &s.Name, &s.ProgramID, &s.ProgramName, &s.Year, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// GetSubject returns one subject or nil when absent.
func (r *Repository) GetSubject(ctx context.Context, id int) (*Subject, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.paper_id, s.name, s.program_id, p.name, s.year, s.created_at
		FROM subjects s JOIN programs p ON s.program_id = p.id WHERE s.id = $1
	`, id)
	var s Subject
	if err := row.Scan(&s.ID, &s.PaperID, &s.Name, &s.ProgramID, &s.ProgramName, &s.Year, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// CreateSubject inserts a subject and returns its id.
func (r *Repository) CreateSubject(ctx context.Context, paperID, name string, programID, year int) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO subjects (paper_id, name, program_id, year) VALUES ($1, $2, $3, $4) RETURNING id
	`, paperID, name, programID, year).Scan(&id)
	return id, err
}

// UpdateSubject updates a subject in place.
func (r *Repository) UpdateSubject(ctx context.Context, id int, paperID, name string, programID, year int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE subjects SET paper_id = $1, name = $2, program_id = $3, year = $4 WHERE id = $5
	`, paperID, name, programID, year, id)
	return err
}

// DeleteSubject removes a subject; attendance rows and assignments cascade.
func (r *Repository) DeleteSubject(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	return err
}

// ---------- Students ----------

// ListStudents returns students with program names, optionally filtered,
// ordered by name.
func (r *Repository) ListStudents(ctx context.Context, f StudentFilter) ([]Student, error) {
	query := `
		SELECT s.id, s.name, s.reg_number, s.program_id, p.name, s.year, s.created_at
		FROM students s JOIN programs p ON s.program_id = p.id`
	args := []any{}
	clauses := []string{}
	if f.ProgramID > 0 {
		clauses = append(clauses, "s.program_id = $"+itoa(len(args)+1))
		args = append(args, f.ProgramID)
	}
	if f.Year > 0 {
		clauses = append(clauses, "s.year = $"+itoa(len(args)+1))
		args = append(args, f.Year)
	}
	if f.Search != "" {
		n := itoa(len(args) + 1)
		clauses = append(clauses, "(s.name ILIKE $"+n+" OR s.reg_number ILIKE $"+n+")")
		args = append(args, "%"+f.Search+"%")
	}
	if len(clauses) > 0 {
		query += " WHERE " + joinClauses(clauses, " AND ")
	}
	query += " ORDER BY s.name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Name, &s.RegNumber, &s.ProgramID, &s.ProgramName, &s.Year, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// GetStudent returns one student or nil when absent.
func (r *Repository) GetStudent(ctx context.Context, id int) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.name, s.reg_number, s.program_id, p.name, s.year, s.created_at
		FROM students s JOIN programs p ON s.program_id = p.id WHERE s.id = $1
	`, id)
	var s Student
	if err := row.Scan(&s.ID, &s.Name, &s.RegNumber, &s.ProgramID, &s.ProgramName, &s.Year, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// CreateStudent inserts a student and returns its id. Duplicate registration
// numbers surface as a store error.
func (r *Repository) CreateStudent(ctx context.Context, name, regNumber string, programID, year int) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO students (name, reg_number, program_id, year) VALUES ($1, $2, $3, $4) RETURNING id
	`, name, regNumber, programID, year).Scan(&id)
	return id, err
}

// UpdateStudent updates a student in place.
func (r *Repository) UpdateStudent(ctx context.Context, id int, name, regNumber string, programID, year int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE students SET name = $1, reg_number = $2, program_id = $3, year = $4 WHERE id = $5
	`, name, regNumber, programID, year, id)
	return err
}

// DeleteStudent removes a student; attendance rows cascade.
func (r *Repository) DeleteStudent(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}

// ---------- Faculty ----------

// ListFaculty returns all faculty with their subject assignments embedded.
func (r *Repository) ListFaculty(ctx context.Context) ([]Faculty, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, created_at FROM faculty ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Faculty
	for rows.Next() {
		var f Faculty
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range res {
		subjects, err := r.AssignedSubjects(ctx, res[i].ID)
		if err != nil {
			return nil, err
		}
		res[i].Subjects = subjects
	}
	return res, nil
}

// GetFaculty returns one faculty member with assignments, or nil when absent.
func (r *Repository) GetFaculty(ctx context.Context, id int) (*Faculty, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, created_at FROM faculty WHERE id = $1
	`, id)
	var f Faculty
	if err := row.Scan(&f.ID, &f.Name, &f.Email, &f.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	subjects, err := r.AssignedSubjects(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	f.Subjects = subjects
	return &f, nil
}

// AssignedSubjects returns the subjects assigned to a faculty member.
func (r *Repository) AssignedSubjects(ctx context.Context, facultyID int) ([]Subject, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.paper_id, s.name, s.program_id, p.name, s.year, s.created_at
		FROM faculty_subjects fs
		JOIN subjects s ON fs.subject_id = s.id
		JOIN programs p ON s.program_id = p.id
		WHERE fs.faculty_id = $1
		ORDER BY s.paper_id
	`, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []Subject{}
	for rows.Next() {
		var s Subject
		if err := rows.Scan(&s.ID, &s.PaperID, &s.Name, &s.ProgramID, &s.ProgramName, &s.Year, &s.CreatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// CreateFaculty inserts a faculty member with a bcrypt password hash.
func (r *Repository) CreateFaculty(ctx context.Context, name, email, password string) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return 0, err
	}
	var id int
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO faculty (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id
	`, name, email, string(hash)).Scan(&id)
	return id, err
}

// UpdateFaculty updates name/email; password is rehashed only when non-empty.
func (r *Repository) UpdateFaculty(ctx context.Context, id int, name, email, password string) error {
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, `
			UPDATE faculty SET name = $1, email = $2, password_hash = $3 WHERE id = $4
		`, name, email, string(hash), id)
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE faculty SET name = $1, email = $2 WHERE id = $3
	`, name, email, id)
	return err
}

// DeleteFaculty removes a faculty member; assignments and log entries cascade.
func (r *Repository) DeleteFaculty(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	return err
}

// AssignSubject links a subject to a faculty member. Re-assigning an
// existing pair is a no-op.
func (r *Repository) AssignSubject(ctx context.Context, facultyID, subjectID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO faculty_subjects (faculty_id, subject_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, facultyID, subjectID)
	return err
}

// UnassignSubject removes a faculty-subject link.
func (r *Repository) UnassignSubject(ctx context.Context, facultyID, subjectID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM faculty_subjects WHERE faculty_id = $1 AND subject_id = $2
	`, facultyID, subjectID)
	return err
}

// FacultyActivity returns the most recent log entries for one faculty member.
func (r *Repository) FacultyActivity(ctx context.Context, facultyID, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, faculty_id, action, details, timestamp
		FROM faculty_activity_log WHERE faculty_id = $1
		ORDER BY timestamp DESC LIMIT $2
	`, facultyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.FacultyID, &e.Action, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func itoa(i int) string { return fmt.Sprintf("%d", i) }

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
