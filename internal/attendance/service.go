package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service coordinates attendance session writes and edits.
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewSessionID generates a session identifier for one batch submission.
// The id is date plus a uniqueness token, deliberately not derived from
// subject/time/class-type: two submissions for the same class on the same
// day stay two distinct sessions.
func NewSessionID(date string) string {
	return fmt.Sprintf("sess_%s_%s", date, uuid.NewString())
}

// ValidateMark checks a mark submission before any write begins.
func ValidateMark(in MarkInput) error {
	switch {
	case in.SubjectID <= 0:
		return errors.New("subject_id required")
	case in.PaperID == "":
		return errors.New("paper_id required")
	case in.Date == "":
		return errors.New("date required")
	case in.ClassType == "":
		return errors.New("class_type required")
	case len(in.Records) == 0:
		return errors.New("records required")
	}
	if !ValidClassType(in.ClassType) {
		return fmt.Errorf("invalid class_type %q", in.ClassType)
	}
	for _, rec := range in.Records {
		if rec.StudentID <= 0 {
			return errors.New("student_id required for every record")
		}
		if !ValidStatus(rec.Status) {
			return fmt.Errorf("invalid status %q", rec.Status)
		}
	}
	return nil
}

// Mark persists one session as an all-or-nothing batch and returns the
// generated session id and record count.
func (s *Service) Mark(ctx context.Context, in MarkInput, markedBy int) (string, int, error) {
	if err := ValidateMark(in); err != nil {
		return "", 0, err
	}
	if in.Time == "" {
		in.Time = s.now().Format("15:04")
	}
	sessionID := NewSessionID(in.Date)
	if err := s.repo.InsertSession(ctx, in, markedBy, sessionID); err != nil {
		return "", 0, err
	}
	return sessionID, len(in.Records), nil
}

// EditRecord updates status/remarks of a single record.
func (s *Service) EditRecord(ctx context.Context, id int, status, remarks string, editorID int) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.repo.UpdateRecord(ctx, id, status, remarks, editorID)
}

// EditSession applies a batch of record edits within one session.
func (s *Service) EditSession(ctx context.Context, sessionID string, edits []EditEntry, editorID int) error {
	if len(edits) == 0 {
		return errors.New("records required")
	}
	for _, e := range edits {
		if !ValidStatus(e.Status) {
			return fmt.Errorf("invalid status %q", e.Status)
		}
	}
	return s.repo.UpdateSession(ctx, sessionID, edits, editorID)
}

// BuildCSV renders export rows into the attendance export document.
func BuildCSV(rows []ExportRow) string {
	var b strings.Builder
	b.WriteString("Date,Time,Student Name,Reg Number,Subject,Paper ID,Class Type,Status,Remarks\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%s,%q,%s,%q,%s,%s,%s,%q\n",
			r.Date, r.Time, r.StudentName, r.RegNumber, r.SubjectName, r.PaperID, r.ClassType, r.Status, r.Remarks)
	}
	return b.String()
}
