package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type stubUserRepo struct {
	users map[uint]*models.User
}

func (r *stubUserRepo) GetByEmail(string) (*models.User, error) { return nil, nil }
func (r *stubUserRepo) GetByID(id uint) (*models.User, error)   { return r.users[id], nil }
func (r *stubUserRepo) Create(*models.User) error               { return nil }
func (r *stubUserRepo) Update(*models.User) error               { return nil }

func signUserToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	claims := service.UserJWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

// serveEnvelope 返回 HTTP 状态与信封里的业务码
func serveEnvelope(t *testing.T, r *gin.Engine, req *http.Request) (int, int, string) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return w.Code, body.StatusCode, w.Body.String()
}

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		name        string
		origin      string
		allowed     []string
		credentials bool
		want        string
	}{
		{"wildcard", "https://shop.example", []string{"*"}, false, "*"},
		{"wildcard with credentials echoes origin", "https://shop.example", []string{"*"}, true, "https://shop.example"},
		{"allow list hit", "https://b.example", []string{"https://a.example", "https://b.example"}, false, "https://b.example"},
		{"allow list miss", "https://evil.example", []string{"https://a.example"}, false, ""},
	}
	for _, tc := range cases {
		if got := resolveAllowedOrigin(tc.origin, tc.allowed, tc.credentials); got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.name, tc.want, got)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, getRequestID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "  req-123 ")
	r.ServeHTTP(w, req)
	if w.Body.String() != "req-123" || w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("incoming request id should be trimmed and echoed, body=%q header=%q", w.Body.String(), w.Header().Get(requestIDHeader))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(requestIDHeader)
	if generated == "" || generated != w.Body.String() {
		t.Fatalf("generated request id should be set on context and header, body=%q header=%q", w.Body.String(), generated)
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	code, statusCode, _ := serveEnvelope(t, r, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	if code != http.StatusOK || statusCode != 401 {
		t.Fatalf("want http 200 with status_code 401, got %d/%d", code, statusCode)
	}
}

func TestUserAuthMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "user-secret"
	repo := &stubUserRepo{users: map[uint]*models.User{
		1: {ID: 1, Email: "a@example.com", Status: constants.UserStatusActive},
		2: {ID: 2, Email: "b@example.com", Status: "disabled"},
	}}

	r := gin.New()
	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "user_id": c.GetUint("user_id")})
	}
	r.GET("/optional", OptionalUserJWTMiddleware(secret, repo), whoami)
	r.GET("/required", UserJWTAuthMiddleware(secret, repo), whoami)

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"guest passes optional", "/optional", "", 0},
		{"guest blocked on required", "/required", "", 401},
		{"malformed header rejected on optional", "/optional", "Token abc", 401},
		{"active user accepted", "/required", "Bearer " + signUserToken(t, secret, 1), 0},
		{"disabled user rejected", "/required", "Bearer " + signUserToken(t, secret, 2), 401},
		{"unknown user rejected", "/required", "Bearer " + signUserToken(t, secret, 9), 401},
		{"wrong secret rejected", "/optional", "Bearer " + signUserToken(t, "other", 1), 401},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		_, statusCode, body := serveEnvelope(t, r, req)
		if statusCode != tc.want {
			t.Fatalf("%s: status_code want %d got %d body=%s", tc.name, tc.want, statusCode, body)
		}
	}
}
