package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rubsun/film-catalog/internal/utils"
)

const testSecret = "middleware-test-secret"

func callWithAuth(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/actors", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, c
}

func TestJWTAuth_ValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "EDITOR", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	rec, c := callWithAuth(t, JWTAuth(testSecret), "Bearer "+at.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if role, _ := c.Get("role").(string); role != "EDITOR" {
		t.Errorf("role in context = %v, want EDITOR", c.Get("role"))
	}
	if sub, _ := c.Get("user_id").(float64); uint64(sub) != 7 {
		t.Errorf("user_id in context = %v, want 7", c.Get("user_id"))
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec, _ := callWithAuth(t, JWTAuth(testSecret), "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "EDITOR", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, _ := callWithAuth(t, JWTAuth(testSecret), "Bearer "+at.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "EDITOR", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, _ := callWithAuth(t, JWTAuth(testSecret), "Bearer "+at.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	rec, _ := callWithAuth(t, JWTAuth(testSecret), "Bearer not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
