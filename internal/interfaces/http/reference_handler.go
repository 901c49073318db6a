package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturaec/emision-api/internal/application/billing"
	"github.com/facturaec/emision-api/internal/application/dto"
)

// ReferenceHandler expone las listas de referencia (protegido, solo lectura).
type ReferenceHandler struct {
	refs *billing.ReferenceUseCase
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(refs *billing.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

// List devuelve establecimientos y puntos de emisión en una sola respuesta,
// con tolerancia a fallos parciales (la lista fallida llega vacía y marcada).
// GET /api/references
func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	data := h.refs.LoadAll(c.Context(), GetAccessToken(c))

	ests := make([]dto.EstablishmentResponse, 0, len(data.Establishments))
	for _, e := range data.Establishments {
		ests = append(ests, dto.EstablishmentResponse{
			ID:              e.ID,
			Codigo:          e.Codigo,
			NombreComercial: e.NombreComercial,
			Direccion:       e.Direccion,
		})
	}
	pts := make([]dto.EmissionPointResponse, 0, len(data.Points))
	for _, p := range data.Points {
		pts = append(pts, dto.EmissionPointResponse{
			ID:                    p.ID,
			Codigo:                p.Codigo,
			Nombre:                p.Nombre,
			EstablecimientoCodigo: p.EstablecimientoCodigo,
			SecuencialActual:      p.SecuencialActual,
		})
	}

	return c.JSON(dto.ReferenceListResponse{
		Establishments:       ests,
		EstablishmentsLoaded: data.EstablishmentsLoaded,
		Points:               pts,
		PointsLoaded:         data.PointsLoaded,
	})
}
