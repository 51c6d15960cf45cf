package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateVerifyRoundtrip(t *testing.T) {
	tok, err := GenerateToken(42, "personnel")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	userID, role, err := VerifyToken(tok)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != 42 || role != "personnel" {
		t.Fatalf("claims mismatch: id=%d role=%s", userID, role)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": float64(1),
		"role":    "patient",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := VerifyToken(tok); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	if _, _, err := VerifyToken("not-a-token"); err != ErrTokenMalformed {
		t.Fatalf("garbage token: expected ErrTokenMalformed, got %v", err)
	}

	// Wrong key
	claims := jwt.MapClaims{"user_id": float64(1), "role": "patient", "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := VerifyToken(tok); err != ErrTokenMalformed {
		t.Fatalf("wrong key: expected ErrTokenMalformed, got %v", err)
	}

	// Missing role claim
	claims = jwt.MapClaims{"user_id": float64(1), "exp": time.Now().Add(time.Hour).Unix()}
	tok, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := VerifyToken(tok); err != ErrTokenMalformed {
		t.Fatalf("missing role: expected ErrTokenMalformed, got %v", err)
	}
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RequireAuth(), func(c *gin.Context) {
		id := c.MustGet("user_id").(uint)
		role := c.MustGet("role").(string)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})

	// No header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", w.Code)
	}

	// Bad scheme
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad scheme: expected 401, got %d", w.Code)
	}

	// Valid token
	tok, err := GenerateToken(7, "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}
