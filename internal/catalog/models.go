package catalog

import "time"

// Program is a degree program; parent of subjects and students.
type Program struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Subject is one taught paper within a program.
type Subject struct {
	ID          int       `json:"id"`
	PaperID     string    `json:"paper_id"`
	Name        string    `json:"name"`
	ProgramID   int       `json:"program_id"`
	ProgramName string    `json:"program_name,omitempty"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"created_at"`
}

// Student is an enrolled student.
type Student struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	RegNumber   string    `json:"reg_number"`
	ProgramID   int       `json:"program_id"`
	ProgramName string    `json:"program_name,omitempty"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"created_at"`
}

// Faculty is a teaching staff member; Subjects holds their assignments.
type Faculty struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subjects  []Subject `json:"subjects"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityEntry is one row of the append-only faculty audit log.
type ActivityEntry struct {
	ID          int       `json:"id"`
	FacultyID   int       `json:"faculty_id"`
	FacultyName string    `json:"faculty_name,omitempty"`
	Action      string    `json:"action"`
	Details     string    `json:"details"`
	Timestamp   time.Time `json:"timestamp"`
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	ProgramID int
	Year      int
	Search    string
}

// SubjectFilter narrows subject listings.
type SubjectFilter struct {
	ProgramID int
	Year      int
}
