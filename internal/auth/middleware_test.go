package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(role string) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	secured := r.Group("", RequireAuth("secret", "mattendance"))
	secured.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": FromContext(c).ID})
	})
	secured.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	secured.GET("/faculty", FacultyOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	token, err := Issue(Claims{ID: 42, Role: role}, "mattendance", "secret", time.Hour)
	if err != nil {
		panic(err)
	}
	return r, token
}

func do(r *gin.Engine, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	r, token := newRouter(RoleFaculty)

	tests := []struct {
		name       string
		authz      string
		wantStatus int
	}{
		{name: "no header", authz: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", authz: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "bad token", authz: "Bearer garbage", wantStatus: http.StatusUnauthorized},
		{name: "valid", authz: "Bearer " + token, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, "/open", tt.authz)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	r, _ := newRouter(RoleFaculty)
	expired, err := Issue(Claims{ID: 42, Role: RoleFaculty}, "mattendance", "secret", -time.Minute)
	require.NoError(t, err)

	rec := do(r, "/open", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleGates(t *testing.T) {
	adminRouter, adminToken := newRouter(RoleAdmin)
	facultyRouter, facultyToken := newRouter(RoleFaculty)

	assert.Equal(t, http.StatusOK, do(adminRouter, "/admin", "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusForbidden, do(adminRouter, "/faculty", "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusOK, do(facultyRouter, "/faculty", "Bearer "+facultyToken).Code)
	assert.Equal(t, http.StatusForbidden, do(facultyRouter, "/admin", "Bearer "+facultyToken).Code)
}
