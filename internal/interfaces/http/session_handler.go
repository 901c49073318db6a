package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturaec/emision-api/internal/application/dto"
	"github.com/facturaec/emision-api/internal/application/session"
)

// SessionHandler login/logout contra el proveedor de identidad del backend.
type SessionHandler struct {
	sess *session.Session
}

// NewSessionHandler construye el handler.
func NewSessionHandler(sess *session.Session) *SessionHandler {
	return &SessionHandler{sess: sess}
}

// Login autentica y retiene la sesión del proceso.
// POST /api/auth/login
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.sess.Login(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// Logout limpia la sesión del proceso.
// POST /api/auth/logout
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.sess.Logout()
	return c.SendStatus(fiber.StatusNoContent)
}
