package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrSessionExpired     = errors.New("sesión expirada")
	ErrLastItem           = errors.New("la factura debe conservar al menos un ítem")
	ErrInvalidBridgeJSON  = errors.New("payload puente no es JSON válido")
	ErrSubmitInFlight     = errors.New("ya existe un envío en curso para este borrador")
	ErrDraftAlreadyIssued = errors.New("el borrador ya fue autorizado; inicie uno nuevo")
)
