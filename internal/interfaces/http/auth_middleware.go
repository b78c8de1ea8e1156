package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/pkg/jwt"
)

// Locals keys para UserID y Username en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Username a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		if ok, err := authenticate(c, jwtSecret, authHeader); !ok {
			return err
		}
		return c.Next()
	}
}

// OptionalAuth carga el usuario si viene un token; sin header deja pasar la petición anónima.
// Un token presente pero inválido sigue siendo 401.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		if ok, err := authenticate(c, jwtSecret, authHeader); !ok {
			return err
		}
		return c.Next()
	}
}

// authenticate carga los locals del token. Si el header no es válido escribe el 401 y devuelve ok=false.
func authenticate(c *fiber.Ctx, jwtSecret, authHeader string) (ok bool, err error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return false, unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return false, unauthorized(c, "MISSING_TOKEN", "token vacío")
	}
	userID, username, err := jwt.Parse(jwtSecret, tokenString)
	if err != nil {
		return false, unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
	}
	c.Locals(LocalUserID, userID)
	c.Locals(LocalUsername, username)
	return true, nil
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUsername devuelve el Username del contexto.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}
