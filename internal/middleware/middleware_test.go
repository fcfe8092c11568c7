package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func testToken(t *testing.T, roles, perms []string) string {
	t.Helper()
	claims := &JWTClaims{
		UserID:      "u-1",
		Name:        "テスト",
		Roles:       roles,
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func testRouter(guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret))
	r.DELETE("/targets/:id", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0})
	})
	return r
}

func do(r *gin.Engine, token string) int {
	req := httptest.NewRequest(http.MethodDelete, "/targets/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestJWTAuthMissingToken(t *testing.T) {
	r := testRouter(RequireRole("admin"))
	if code := do(r, ""); code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestRequireRole(t *testing.T) {
	r := testRouter(RequireRole("admin"))

	if code := do(r, testToken(t, []string{"admin"}, nil)); code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", code)
	}
	if code := do(r, testToken(t, []string{"sales"}, nil)); code != http.StatusForbidden {
		t.Errorf("sales: status = %d, want 403", code)
	}
	if code := do(r, testToken(t, nil, nil)); code != http.StatusForbidden {
		t.Errorf("no roles: status = %d, want 403", code)
	}
}

func TestRequirePermission(t *testing.T) {
	r := testRouter(RequirePermission("order:send"))

	if code := do(r, testToken(t, nil, []string{"order:send"})); code != http.StatusOK {
		t.Errorf("exact permission: status = %d, want 200", code)
	}
	if code := do(r, testToken(t, nil, []string{"*"})); code != http.StatusOK {
		t.Errorf("wildcard: status = %d, want 200", code)
	}
	if code := do(r, testToken(t, nil, []string{"order:generate"})); code != http.StatusForbidden {
		t.Errorf("other permission: status = %d, want 403", code)
	}
}

func TestJWTAuthQueryParamToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret))
	r.GET("/files/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/files/x?token="+testToken(t, nil, nil), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
