// Package gateway define los puertos hacia el backend de facturación
// electrónica. El transporte concreto vive en internal/infrastructure/sri.
package gateway

import (
	"context"
	"encoding/json"

	"github.com/facturaec/emision-api/internal/domain/entity"
)

// ReferenceGateway lecturas de datos de referencia (establecimientos y puntos
// de emisión). Este servicio nunca los muta.
type ReferenceGateway interface {
	GetEstablishments(ctx context.Context, token string) ([]entity.Establishment, error)
	GetEmissionPoints(ctx context.Context, token string) ([]entity.EmissionPoint, error)
}

// CreditGateway lectura del saldo de créditos de emisión.
type CreditGateway interface {
	GetCreditBalance(ctx context.Context, token string) (int, error)
}

// InvoiceGateway emisión de la factura. El payload viaja tal cual se arma
// (estructurado o modo puente); el backend es el único validador de esquema.
// Un rechazo reportado por el backend llega como SubmissionResult con OK=false
// y error nil; los fallos de transporte llegan como error.
type InvoiceGateway interface {
	SubmitInvoice(ctx context.Context, token string, payload json.RawMessage) (*entity.SubmissionResult, error)
}

// AuthGateway login contra el proveedor de identidad del backend.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (token string, user *entity.User, err error)
}
