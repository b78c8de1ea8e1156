package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Logistica-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Logistica-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUsername  = "ana"
	testIssuer    = "logistica-api-test"
	testExpMin    = 60
)

// buildMiddlewareApp monta dos rutas dummy: /protected con AuthMiddleware y /optional con OptionalAuth.
// Ambas devuelven el usuario cargado en locals.
func buildMiddlewareApp() *fiber.App {
	app := fiber.New()
	whoami := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
		})
	}
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), whoami)
	app.Get("/optional", apphttp.OptionalAuth(testJWTSecret), whoami)
	return app
}

func bearer(t *testing.T, secret string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testUserID, testUsername, testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoCargaUsuario(t *testing.T) {
	resp, body := get(t, buildMiddlewareApp(), "/protected", bearer(t, testJWTSecret, testExpMin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUsername, body["username"])
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	resp, body := get(t, buildMiddlewareApp(), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	resp, body := get(t, buildMiddlewareApp(), "/protected", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	resp, body := get(t, buildMiddlewareApp(), "/protected", bearer(t, "otro-secreto", testExpMin))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	resp, _ := get(t, buildMiddlewareApp(), "/protected", bearer(t, testJWTSecret, -5))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// OptionalAuth
// ──────────────────────────────────────────────────────────────────────────────

func TestOptionalAuth_AnonimoPasa(t *testing.T) {
	resp, body := get(t, buildMiddlewareApp(), "/optional", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", body["user_id"])
}

func TestOptionalAuth_ConTokenCargaUsuario(t *testing.T) {
	resp, body := get(t, buildMiddlewareApp(), "/optional", bearer(t, testJWTSecret, testExpMin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["user_id"])
}

func TestOptionalAuth_TokenInvalidoSigueSiendo401(t *testing.T) {
	resp, _ := get(t, buildMiddlewareApp(), "/optional", "Bearer basura")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
