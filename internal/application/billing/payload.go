package billing

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/facturaec/emision-api/internal/domain/entity"
)

// Payload canónico de emisión hacia el backend. La colección de líneas viaja
// como "items"; el nombre "detalles" de versiones anteriores del backend se
// considera legado y no se emite.
type invoicePayload struct {
	Establecimiento string           `json:"establecimiento"`
	PuntoEmision    string           `json:"punto_emision"`
	Formato         int              `json:"formato"`
	Cliente         clientPayload    `json:"cliente"`
	Items           []itemPayload    `json:"items"`
	Pagos           []paymentPayload `json:"pagos"`
}

type clientPayload struct {
	RazonSocial    string `json:"razonSocial"`
	TipoID         string `json:"tipoId"`
	Identificacion string `json:"identificacion"`
	Email          string `json:"email"`
}

type itemPayload struct {
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
}

type paymentPayload struct {
	FormaPago string          `json:"formaPago"`
	Total     decimal.Decimal `json:"total"`
}

// buildPayload serializa el borrador estructurado al contrato del backend.
func buildPayload(d *entity.InvoiceDraft) (json.RawMessage, error) {
	p := invoicePayload{
		Establecimiento: d.Establecimiento,
		PuntoEmision:    d.PuntoEmision,
		Formato:         d.Formato,
		Cliente: clientPayload{
			RazonSocial:    d.Cliente.RazonSocial,
			TipoID:         d.Cliente.TipoID,
			Identificacion: d.Cliente.Identificacion,
			Email:          d.Cliente.Email,
		},
		Items: make([]itemPayload, 0, len(d.Items)),
		Pagos: []paymentPayload{{FormaPago: d.Pago.FormaPago, Total: d.Pago.Total}},
	}
	for _, it := range d.Items {
		p.Items = append(p.Items, itemPayload{
			Codigo:      it.Codigo,
			Descripcion: it.Descripcion,
			Cantidad:    it.Cantidad,
			Precio:      it.Precio,
		})
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serializar factura: %w", err)
	}
	return raw, nil
}
