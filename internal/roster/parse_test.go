package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	content := "Student Name,Reg Number,Program,Year\n" +
		"Aarav Patel,BMS2024001,Biomedical Science,1\n" +
		"\"Ishita Gupta\",BMS2024002,Human Genetics,2\n" +
		",BMS2024003,Biomedical Science,1\n" +
		"Rohan Iyer,,Biomedical Science,1\n" +
		"Meera Nair,HG2024004,,notanumber\n"

	rows, skipped, total, err := Parse(content)
	require.NoError(t, err)

	assert.Equal(t, 5, total)
	assert.Equal(t, 2, skipped) // missing name, missing reg
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Name: "Aarav Patel", RegNumber: "BMS2024001", Program: "Biomedical Science", Year: 1}, rows[0])
	// surrounding quotes stripped
	assert.Equal(t, "Ishita Gupta", rows[1].Name)
	assert.Equal(t, 2, rows[1].Year)
	// unparseable year defaults to 1, empty program stays empty
	assert.Equal(t, Row{Name: "Meera Nair", RegNumber: "HG2024004", Program: "", Year: 1}, rows[2])
}

func TestParseTallyInvariant(t *testing.T) {
	content := "name,reg\nA,1\n,2\nB,\nC,3\n"
	rows, skipped, total, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, total, len(rows)+skipped)
}

func TestParseStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "empty file", content: "", wantErr: ErrTooShort},
		{name: "header only", content: "name,reg\n", wantErr: ErrTooShort},
		{name: "no name column", content: "reg,program\n1,X\n", wantErr: ErrMissingColumns},
		{name: "no reg column", content: "name,program\nA,X\n", wantErr: ErrMissingColumns},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Parse(tt.content)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSniffHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   [4]int // name, reg, prog, year
	}{
		{name: "canonical", header: "Name,Reg Number,Program,Year", want: [4]int{0, 1, 2, 3}},
		{name: "id matches reg", header: "Student ID,Full Name", want: [4]int{1, 0, -1, -1}},
		{name: "program name does not shadow student name", header: "Program Name,Name,Number", want: [4]int{1, 2, 0, -1}},
		{name: "nothing usable", header: "foo,bar", want: [4]int{-1, -1, -1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, r, p, y := sniffHeaders(tt.header)
			assert.Equal(t, tt.want, [4]int{n, r, p, y})
		})
	}
}
