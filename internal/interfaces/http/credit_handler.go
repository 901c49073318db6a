package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturaec/emision-api/internal/application/credits"
)

// CreditHandler expone el saldo de créditos del monitor (protegido).
type CreditHandler struct {
	monitor *credits.Monitor
}

// NewCreditHandler construye el handler.
func NewCreditHandler(monitor *credits.Monitor) *CreditHandler {
	return &CreditHandler{monitor: monitor}
}

// Get devuelve el último saldo conocido y su clasificación (NORMAL/LOW).
// No dispara una lectura al backend: eso lo hace el monitor a su ritmo.
// GET /api/credits
func (h *CreditHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.monitor.Snapshot())
}

// Refresh fuerza una lectura inmediata del saldo y devuelve el resultado.
// POST /api/credits/refresh
func (h *CreditHandler) Refresh(c *fiber.Ctx) error {
	h.monitor.Refresh(c.Context())
	return c.JSON(h.monitor.Snapshot())
}
