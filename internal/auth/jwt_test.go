package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	claims := Claims{ID: 7, Role: RoleFaculty, Name: "Dr. Priya Sharma", Email: "priya@university.edu"}

	token, err := Issue(claims, "mattendance", "secret", time.Hour)
	require.NoError(t, err)

	parsed, err := Parse(token, "secret", "mattendance")
	require.NoError(t, err)
	assert.Equal(t, 7, parsed.ID)
	assert.Equal(t, RoleFaculty, parsed.Role)
	assert.Equal(t, "Dr. Priya Sharma", parsed.Name)
	assert.Equal(t, "priya@university.edu", parsed.Email)
}

func TestParseRejections(t *testing.T) {
	claims := Claims{ID: 1, Role: RoleAdmin, Username: "admin"}

	valid, err := Issue(claims, "mattendance", "secret", time.Hour)
	require.NoError(t, err)
	expired, err := Issue(claims, "mattendance", "secret", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{name: "garbage token", token: "not.a.token", key: "secret", issuer: "mattendance"},
		{name: "wrong key", token: valid, key: "other-secret", issuer: "mattendance"},
		{name: "expired", token: expired, key: "secret", issuer: "mattendance"},
		{name: "issuer mismatch", token: valid, key: "secret", issuer: "someone-else"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}
