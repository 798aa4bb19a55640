package roster

import (
	"context"
	"database/sql"
	"io"
	"strings"
)

// Result tallies one import run. Imported + Skipped == Total.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// Importer inserts parsed roster rows into the students table.
type Importer struct {
	db *sql.DB
}

// NewImporter creates an importer.
func NewImporter(db *sql.DB) *Importer {
	return &Importer{db: db}
}

// Import parses the roster and inserts students in a single transaction.
// Unresolvable program names fall back to the first program; rows whose
// registration number already exists are skipped, not errors.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Result{}, err
	}
	rows, skipped, total, err := Parse(string(content))
	if err != nil {
		return Result{}, err
	}

	programs, fallbackID, err := im.programMap(ctx)
	if err != nil {
		return Result{}, err
	}

	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, err
	}
	defer tx.Rollback()

	imported := 0
	for _, row := range rows {
		programID := fallbackID
		if row.Program != "" {
			if id, ok := programs[strings.ToLower(row.Program)]; ok {
				programID = id
			}
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO students (name, reg_number, program_id, year)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (reg_number) DO NOTHING
		`, row.Name, row.RegNumber, programID, row.Year)
		if err != nil {
			return Result{}, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			imported++
		} else {
			skipped++
		}
	}
	if err := tx.Commit(); err != nil {
		return Result{}, err
	}

	return Result{Imported: imported, Skipped: skipped, Total: total}, nil
}

// programMap returns lowercased program names to ids, plus the fallback id
// (the first program by id, or 1 when none exist yet).
func (im *Importer) programMap(ctx context.Context) (map[string]int, int, error) {
	rows, err := im.db.QueryContext(ctx, `SELECT id, name FROM programs ORDER BY id`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	m := map[string]int{}
	fallback := 0
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, 0, err
		}
		if fallback == 0 {
			fallback = id
		}
		m[strings.ToLower(name)] = id
	}
	if fallback == 0 {
		fallback = 1
	}
	return m, fallback, rows.Err()
}
