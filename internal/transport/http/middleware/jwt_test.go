package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gopherpress/internal/pkg/jwtutil"
)

const testSecret = "middleware-test-secret"

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthJWT(testSecret), func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.String(http.StatusInternalServerError, "identity missing")
			return
		}
		c.String(http.StatusOK, userID)
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec := doRequest(newProtectedRouter(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
}

func TestAuthJWT_WrongScheme(t *testing.T) {
	rec := doRequest(newProtectedRouter(), "Basic abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
}

func TestAuthJWT_InvalidToken(t *testing.T) {
	rec := doRequest(newProtectedRouter(), "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	tok, err := jwtutil.GenerateToken(testSecret, -1*time.Minute, "user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := doRequest(newProtectedRouter(), "Bearer "+tok)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
}

func TestAuthJWT_ValidTokenExposesIdentity(t *testing.T) {
	tok, err := jwtutil.GenerateToken(testSecret, time.Hour, "user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := doRequest(newProtectedRouter(), "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if rec.Body.String() != "user-1" {
		t.Fatalf("resolved identity = %q; want %q", rec.Body.String(), "user-1")
	}
}
