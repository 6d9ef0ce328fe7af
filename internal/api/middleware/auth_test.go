package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func sign(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth("secret")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := sign(t, jwt.MapClaims{
		"sub":  "carer_1",
		"role": "carer",
		"name": "Cath",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "carer_1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxRole) != "carer" {
			t.Fatalf("role not set")
		}
		if c.Get(CtxName) != "Cath" {
			t.Fatalf("name not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := sign(t, jwt.MapClaims{"sub": "u", "role": "admin", "exp": time.Now().Add(-time.Minute).Unix()}, jwt.SigningMethodHS256)
	noExp := sign(t, jwt.MapClaims{"sub": "u", "role": "admin"}, jwt.SigningMethodHS256)
	noRole := sign(t, jwt.MapClaims{"sub": "u", "exp": time.Now().Add(time.Hour).Unix()}, jwt.SigningMethodHS256)
	wrongAlg := sign(t, jwt.MapClaims{"sub": "u", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}, jwt.SigningMethodHS512)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"garbage":        "Bearer not-a-token",
		"expired":        "Bearer " + expired,
		"no expiry":      "Bearer " + noExp,
		"no role":        "Bearer " + noRole,
		"wrong alg":      "Bearer " + wrongAlg,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			if rec := runAuth(t, header); rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
