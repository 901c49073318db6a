package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/facturaec/emision-api/internal/application/billing"
	"github.com/facturaec/emision-api/internal/application/dto"
)

// DraftHandler maneja las peticiones HTTP de composición y emisión (protegido).
type DraftHandler struct {
	drafts *billing.DraftUseCase
	submit *billing.SubmitUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(drafts *billing.DraftUseCase, submit *billing.SubmitUseCase) *DraftHandler {
	return &DraftHandler{drafts: drafts, submit: submit}
}

// Create abre una sesión de borrador con referencias autocargadas.
// POST /api/drafts
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	resp, err := h.drafts.Create(c.Context(), GetAccessToken(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get devuelve el estado completo del borrador.
// GET /api/drafts/:id
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	resp, err := h.drafts.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// Delete descarta el borrador.
// DELETE /api/drafts/:id
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	h.drafts.Delete(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateClient reemplaza un campo del cliente.
// PUT /api/drafts/:id/client
func (h *DraftHandler) UpdateClient(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.drafts.UpdateClient(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// AddItem agrega una línea vacía.
// POST /api/drafts/:id/items
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	resp, err := h.drafts.AddItem(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// UpdateItem modifica un campo de una línea.
// PUT /api/drafts/:id/items/:index
func (h *DraftHandler) UpdateItem(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.drafts.UpdateItem(c.Params("id"), index, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// RemoveItem elimina una línea (la última no se elimina).
// DELETE /api/drafts/:id/items/:index
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	resp, err := h.drafts.RemoveItem(c.Params("id"), index)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// UpdateReferences cambia establecimiento y/o punto de emisión.
// PUT /api/drafts/:id/references
func (h *DraftHandler) UpdateReferences(c *fiber.Ctx) error {
	var in dto.UpdateReferencesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.drafts.UpdateReferences(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// UpdatePayment cambia la forma de pago.
// PUT /api/drafts/:id/payment
func (h *DraftHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.drafts.UpdatePayment(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// UpdateBridge activa/desactiva el modo puente.
// PUT /api/drafts/:id/bridge
func (h *DraftHandler) UpdateBridge(c *fiber.Ctx) error {
	var in dto.UpdateBridgeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.drafts.UpdateBridge(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// Submit emite el borrador.
// POST /api/drafts/:id/submit
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	resp, err := h.submit.Submit(c.Context(), c.Params("id"), GetAccessToken(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}
