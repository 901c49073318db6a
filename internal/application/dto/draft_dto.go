package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// UpdateClientRequest body para PUT /api/drafts/:id/client.
// Field: tipoId | identificacion | razonSocial | email.
type UpdateClientRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateItemRequest body para PUT /api/drafts/:id/items/:index.
// Field: codigo | descripcion | cantidad | precio. Para cantidad/precio el
// valor se interpreta como decimal no negativo (0 si no parsea).
type UpdateItemRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateReferencesRequest body para PUT /api/drafts/:id/references.
// PuntoEmision es opcional: al cambiar solo el establecimiento, el punto se
// reajusta automáticamente al primero válido.
type UpdateReferencesRequest struct {
	Establecimiento string `json:"establecimiento"`
	PuntoEmision    string `json:"punto_emision,omitempty"`
}

// UpdatePaymentRequest body para PUT /api/drafts/:id/payment.
type UpdatePaymentRequest struct {
	FormaPago string `json:"formaPago"`
}

// UpdateBridgeRequest body para PUT /api/drafts/:id/bridge.
// Enabled activa/desactiva el modo puente; Payload reemplaza el texto crudo
// solo si viene presente (puntero nil = conservar).
type UpdateBridgeRequest struct {
	Enabled bool    `json:"enabled"`
	Payload *string `json:"payload,omitempty"`
}

// ClientResponse datos del cliente en el borrador.
type ClientResponse struct {
	TipoID         string `json:"tipoId"`
	Identificacion string `json:"identificacion"`
	RazonSocial    string `json:"razonSocial"`
	Email          string `json:"email"`
}

// LineItemResponse línea de detalle con su total derivado.
type LineItemResponse struct {
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	Total       decimal.Decimal `json:"total"`
}

// PaymentResponse línea de pago sincronizada con el total.
type PaymentResponse struct {
	FormaPago string          `json:"formaPago"`
	Total     decimal.Decimal `json:"total"`
}

// BridgeResponse estado del modo puente del borrador.
type BridgeResponse struct {
	Enabled bool   `json:"enabled"`
	Payload string `json:"payload"`
}

// SubmissionResultResponse resultado del último intento de emisión.
type SubmissionResultResponse struct {
	OK          bool            `json:"ok"`
	ClaveAcceso string          `json:"claveAcceso,omitempty"`
	Estado      string          `json:"estado,omitempty"`
	PDFURL      string          `json:"pdfUrl,omitempty"`
	Mensaje     string          `json:"mensaje,omitempty"`
	Detalle     json.RawMessage `json:"detalle,omitempty"`
}

// DraftResponse borrador completo: selección, cliente, ítems, totales
// derivados (redondeados a 2 decimales para presentación), estado de envío y
// listas de referencia. PuntosValidos ya viene filtrado por el establecimiento
// seleccionado.
type DraftResponse struct {
	ID              string                    `json:"id"`
	Establecimiento string                    `json:"establecimiento"`
	PuntoEmision    string                    `json:"punto_emision"`
	Formato         int                       `json:"formato"`
	Cliente         ClientResponse            `json:"cliente"`
	Items           []LineItemResponse        `json:"items"`
	Pago            PaymentResponse           `json:"pago"`
	Subtotal        decimal.Decimal           `json:"subtotal"`
	IVA             decimal.Decimal           `json:"iva"`
	Total           decimal.Decimal           `json:"total"`
	Bridge          BridgeResponse            `json:"bridge"`
	State           string                    `json:"state"` // IDLE | SUBMITTING | SUCCESS | FAILURE
	Result          *SubmissionResultResponse `json:"result,omitempty"`
	References      ReferenceListResponse     `json:"references"`
	PuntosValidos   []EmissionPointResponse   `json:"puntos_validos"`
}
