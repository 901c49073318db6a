package billing

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/facturaec/emision-api/internal/application/dto"
	"github.com/facturaec/emision-api/internal/domain"
	"github.com/facturaec/emision-api/internal/domain/entity"
	"github.com/facturaec/emision-api/internal/domain/gateway"
	"github.com/facturaec/emision-api/pkg/logger"
)

// SubmitUseCase máquina de estados del envío:
//
//	IDLE → SUBMITTING → {SUCCESS, FAILURE}
//
// Hay a lo sumo un envío en curso por borrador; SUCCESS es terminal y FAILURE
// permite reenviar con el mismo borrador corregido. Nunca se reintenta
// automáticamente.
type SubmitUseCase struct {
	store *Store
	gw    gateway.InvoiceGateway
	log   *logger.Logger
}

// NewSubmitUseCase construye el caso de uso.
func NewSubmitUseCase(store *Store, gw gateway.InvoiceGateway, log *logger.Logger) *SubmitUseCase {
	return &SubmitUseCase{store: store, gw: gw, log: log}
}

// Submit emite el borrador (estructurado o en modo puente).
//   - Con un envío en curso: ErrSubmitInFlight, sin segunda llamada de red.
//   - Ya autorizado: ErrDraftAlreadyIssued (hay que descartar y empezar de nuevo).
//   - Modo puente con JSON inválido: ErrInvalidBridgeJSON, falla localmente sin
//     tocar la red ni el estado.
func (uc *SubmitUseCase) Submit(ctx context.Context, id, token string) (*dto.DraftResponse, error) {
	sess, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	switch sess.State {
	case entity.SubmitStateSubmitting:
		sess.mu.Unlock()
		return nil, domain.ErrSubmitInFlight
	case entity.SubmitStateSuccess:
		sess.mu.Unlock()
		return nil, domain.ErrDraftAlreadyIssued
	}

	var payload json.RawMessage
	if sess.BridgeEnabled {
		if !json.Valid([]byte(sess.BridgePayload)) {
			sess.mu.Unlock()
			return nil, domain.ErrInvalidBridgeJSON
		}
		payload = json.RawMessage(sess.BridgePayload)
	} else {
		payload, err = buildPayload(sess.Draft)
		if err != nil {
			sess.mu.Unlock()
			return nil, err
		}
	}

	// Entrar a SUBMITTING limpia el resultado anterior: durante el envío no
	// debe verse un resultado viejo.
	sess.State = entity.SubmitStateSubmitting
	sess.Result = nil
	bridge := sess.BridgeEnabled
	sess.mu.Unlock()

	uc.log.Info().Str("draft_id", sess.ID).Bool("bridge", bridge).Msg("enviando factura al backend")
	result, err := uc.gw.SubmitInvoice(ctx, token, payload)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err != nil {
		mensaje := "error al emitir la factura"
		if errors.Is(err, domain.ErrUnauthorized) {
			mensaje = "sesión no autorizada o expirada"
		}
		uc.log.Error().Err(err).Str("draft_id", sess.ID).Msg("fallo de envío")
		sess.State = entity.SubmitStateFailure
		sess.Result = &entity.SubmissionResult{OK: false, Mensaje: mensaje}
		return toResponse(sess), nil
	}

	sess.Result = result
	if result.OK {
		sess.State = entity.SubmitStateSuccess
		uc.log.Info().
			Str("draft_id", sess.ID).
			Str("clave_acceso", result.ClaveAcceso).
			Str("estado", result.Estado).
			Msg("factura autorizada")
	} else {
		sess.State = entity.SubmitStateFailure
		uc.log.Warn().
			Str("draft_id", sess.ID).
			Str("mensaje", result.Mensaje).
			Msg("factura rechazada por el backend")
	}
	return toResponse(sess), nil
}
