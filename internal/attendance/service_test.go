package attendance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validMark() MarkInput {
	return MarkInput{
		SubjectID: 3,
		PaperID:   "BMS101",
		Date:      "2026-09-01",
		ClassType: ClassTheory,
		Records: []StudentEntry{
			{StudentID: 1, Status: StatusPresent},
			{StudentID: 2, Status: StatusHalfDay, Remarks: "left early"},
		},
	}
}

func TestValidateMark(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MarkInput)
		wantErr string
	}{
		{name: "valid", mutate: func(*MarkInput) {}},
		{name: "missing subject", mutate: func(in *MarkInput) { in.SubjectID = 0 }, wantErr: "subject_id required"},
		{name: "missing paper", mutate: func(in *MarkInput) { in.PaperID = "" }, wantErr: "paper_id required"},
		{name: "missing date", mutate: func(in *MarkInput) { in.Date = "" }, wantErr: "date required"},
		{name: "missing class type", mutate: func(in *MarkInput) { in.ClassType = "" }, wantErr: "class_type required"},
		{name: "empty records", mutate: func(in *MarkInput) { in.Records = nil }, wantErr: "records required"},
		{name: "unknown class type", mutate: func(in *MarkInput) { in.ClassType = "Lecture" }, wantErr: `invalid class_type "Lecture"`},
		{name: "unknown status", mutate: func(in *MarkInput) { in.Records[0].Status = "Late" }, wantErr: `invalid status "Late"`},
		{name: "record without student", mutate: func(in *MarkInput) { in.Records[1].StudentID = 0 }, wantErr: "student_id required for every record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validMark()
			tt.mutate(&in)
			err := ValidateMark(in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewSessionID(t *testing.T) {
	a := NewSessionID("2026-09-01")
	b := NewSessionID("2026-09-01")

	assert.True(t, strings.HasPrefix(a, "sess_2026-09-01_"))
	// two submissions for the same date never share a session
	assert.NotEqual(t, a, b)
}

func TestValidStatusAndClassType(t *testing.T) {
	for _, s := range []string{StatusPresent, StatusAbsent, StatusHalfDay} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("present"))

	for _, ct := range []string{ClassTheory, ClassPractical, ClassSeminar, ClassProject} {
		assert.True(t, ValidClassType(ct), ct)
	}
	assert.False(t, ValidClassType("Tutorial"))
}

func TestBuildCSV(t *testing.T) {
	rows := []ExportRow{
		{
			Date: "2026-09-01", Time: "09:00",
			StudentName: "Aarav Patel", RegNumber: "BMS2024001",
			SubjectName: "Molecular Biology", PaperID: "BMS101",
			ClassType: ClassTheory, Status: StatusPresent, Remarks: "",
		},
	}
	csv := BuildCSV(rows)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	assert.Equal(t, "Date,Time,Student Name,Reg Number,Subject,Paper ID,Class Type,Status,Remarks", lines[0])
	assert.Equal(t, `2026-09-01,09:00,"Aarav Patel",BMS2024001,"Molecular Biology",BMS101,Theory,Present,""`, lines[1])
}

func TestBuildCSVEmpty(t *testing.T) {
	csv := BuildCSV(nil)
	assert.Equal(t, "Date,Time,Student Name,Reg Number,Subject,Paper ID,Class Type,Status,Remarks\n", csv)
}
