package billing

import (
	"github.com/facturaec/emision-api/internal/application/dto"
	"github.com/facturaec/emision-api/internal/domain/entity"
)

// toResponse arma el DTO completo de la sesión. El llamador debe tener tomado
// sess.mu.
func toResponse(sess *DraftSession) *dto.DraftResponse {
	d := sess.Draft

	items := make([]dto.LineItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.LineItemResponse{
			Codigo:      it.Codigo,
			Descripcion: it.Descripcion,
			Cantidad:    it.Cantidad,
			Precio:      it.Precio,
			Total:       it.Total().Round(2),
		})
	}

	resp := &dto.DraftResponse{
		ID:              sess.ID,
		Establecimiento: d.Establecimiento,
		PuntoEmision:    d.PuntoEmision,
		Formato:         d.Formato,
		Cliente: dto.ClientResponse{
			TipoID:         d.Cliente.TipoID,
			Identificacion: d.Cliente.Identificacion,
			RazonSocial:    d.Cliente.RazonSocial,
			Email:          d.Cliente.Email,
		},
		Items: items,
		Pago: dto.PaymentResponse{
			FormaPago: d.Pago.FormaPago,
			Total:     d.Pago.Total,
		},
		Subtotal: d.Subtotal.Round(2),
		IVA:      d.IVA.Round(2),
		Total:    d.Total.Round(2),
		Bridge: dto.BridgeResponse{
			Enabled: sess.BridgeEnabled,
			Payload: sess.BridgePayload,
		},
		State:      sess.State,
		References: toReferenceList(sess),
	}

	if sess.Result != nil {
		resp.Result = &dto.SubmissionResultResponse{
			OK:          sess.Result.OK,
			ClaveAcceso: sess.Result.ClaveAcceso,
			Estado:      sess.Result.Estado,
			PDFURL:      sess.Result.PDFURL,
			Mensaje:     sess.Result.Mensaje,
			Detalle:     sess.Result.Detalle,
		}
	}

	resp.PuntosValidos = toPointList(entity.PointsFor(sess.Points, d.Establecimiento))
	return resp
}

func toReferenceList(sess *DraftSession) dto.ReferenceListResponse {
	ests := make([]dto.EstablishmentResponse, 0, len(sess.Establishments))
	for _, e := range sess.Establishments {
		ests = append(ests, dto.EstablishmentResponse{
			ID:              e.ID,
			Codigo:          e.Codigo,
			NombreComercial: e.NombreComercial,
			Direccion:       e.Direccion,
		})
	}
	return dto.ReferenceListResponse{
		Establishments:       ests,
		EstablishmentsLoaded: sess.EstablishmentsLoaded,
		Points:               toPointList(sess.Points),
		PointsLoaded:         sess.PointsLoaded,
	}
}

func toPointList(points []entity.EmissionPoint) []dto.EmissionPointResponse {
	out := make([]dto.EmissionPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.EmissionPointResponse{
			ID:                    p.ID,
			Codigo:                p.Codigo,
			Nombre:                p.Nombre,
			EstablecimientoCodigo: p.EstablecimientoCodigo,
			SecuencialActual:      p.SecuencialActual,
		})
	}
	return out
}
