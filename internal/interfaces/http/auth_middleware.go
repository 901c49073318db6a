package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/facturaec/emision-api/internal/application/dto"
)

// Local key para el bearer token en Fiber.
const LocalAccessToken = "access_token"

// AuthMiddleware extrae el bearer token y lo deja en c.Locals para adjuntarlo
// a las llamadas salientes. No lo valida: el proveedor de identidad es externo
// y el backend responde 401 si el token no sirve.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		c.Locals(LocalAccessToken, token)
		return c.Next()
	}
}

// GetAccessToken devuelve el bearer token del contexto (después del middleware).
func GetAccessToken(c *fiber.Ctx) string {
	v := c.Locals(LocalAccessToken)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
