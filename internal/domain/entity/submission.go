package entity

import "encoding/json"

// Estados del ciclo de envío de un borrador al backend de facturación.
// Solo hay un envío en curso por borrador; SUCCESS es terminal (para reintentar
// hay que descartar el borrador e iniciar otro), FAILURE permite reenviar.
const (
	SubmitStateIdle       = "IDLE"
	SubmitStateSubmitting = "SUBMITTING"
	SubmitStateSuccess    = "SUCCESS"
	SubmitStateFailure    = "FAILURE"
)

// SubmissionResult resultado terminal de un intento de emisión.
// OK=true: la factura fue autorizada (clave de acceso, estado SRI, URL del RIDE).
// OK=false: rechazo del backend o fallo de red, con mensaje y detalle opcional.
type SubmissionResult struct {
	OK          bool
	ClaveAcceso string
	Estado      string
	PDFURL      string
	Mensaje     string
	Detalle     json.RawMessage // blob estructurado devuelto por el backend, si lo hay
}
