package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/facturaec/emision-api/internal/application/dto"
	"github.com/facturaec/emision-api/internal/domain"
	"github.com/facturaec/emision-api/internal/domain/entity"
	"github.com/facturaec/emision-api/pkg/logger"
)

// DraftUseCase ciclo de vida del borrador de factura: creación con referencias
// autocargadas, mutaciones del cliente/ítems/selección y descarte.
type DraftUseCase struct {
	store *Store
	refs  *ReferenceUseCase
	log   *logger.Logger
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(store *Store, refs *ReferenceUseCase, log *logger.Logger) *DraftUseCase {
	return &DraftUseCase{store: store, refs: refs, log: log}
}

// Create abre una sesión de composición: borrador vacío, listas de referencia
// cargadas (con tolerancia a fallos parciales) y selección por defecto del
// primer establecimiento y su primer punto de emisión.
func (uc *DraftUseCase) Create(ctx context.Context, token string) (*dto.DraftResponse, error) {
	data := uc.refs.LoadAll(ctx, token)

	sess := &DraftSession{
		ID:                   uuid.New().String(),
		CreatedAt:            time.Now(),
		Draft:                entity.NewInvoiceDraft(),
		State:                entity.SubmitStateIdle,
		Establishments:       data.Establishments,
		EstablishmentsLoaded: data.EstablishmentsLoaded,
		Points:               data.Points,
		PointsLoaded:         data.PointsLoaded,
	}

	// Selección por defecto, solo porque el borrador recién creado no tiene
	// ninguna. Si falló la carga, la selección queda vacía.
	if len(sess.Establishments) > 0 {
		est := sess.Establishments[0].Codigo
		punto := ""
		if valid := entity.PointsFor(sess.Points, est); len(valid) > 0 {
			punto = valid[0].Codigo
		}
		sess.Draft.SetReferences(est, punto)
	}

	uc.store.Put(sess)
	uc.log.Debug().Str("draft_id", sess.ID).Msg("sesión de borrador creada")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return toResponse(sess), nil
}

// Get devuelve el estado completo de la sesión.
func (uc *DraftUseCase) Get(id string) (*dto.DraftResponse, error) {
	sess, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return toResponse(sess), nil
}

// Delete descarta la sesión. Es la única vía para "volver a empezar" después
// de una emisión autorizada.
func (uc *DraftUseCase) Delete(id string) {
	uc.store.Delete(id)
}

// UpdateClient reemplaza un campo de la identidad del cliente.
func (uc *DraftUseCase) UpdateClient(id string, in dto.UpdateClientRequest) (*dto.DraftResponse, error) {
	return uc.mutate(id, func(sess *DraftSession) error {
		return sess.Draft.SetClientField(in.Field, in.Value)
	})
}

// AddItem agrega una línea vacía al detalle.
func (uc *DraftUseCase) AddItem(id string) (*dto.DraftResponse, error) {
	return uc.mutate(id, func(sess *DraftSession) error {
		sess.Draft.AddItem()
		return nil
	})
}

// UpdateItem modifica un campo de la línea indicada.
func (uc *DraftUseCase) UpdateItem(id string, index int, in dto.UpdateItemRequest) (*dto.DraftResponse, error) {
	return uc.mutate(id, func(sess *DraftSession) error {
		return sess.Draft.UpdateItem(index, in.Field, in.Value)
	})
}

// RemoveItem elimina la línea indicada (rechazado si es la última).
func (uc *DraftUseCase) RemoveItem(id string, index int) (*dto.DraftResponse, error) {
	return uc.mutate(id, func(sess *DraftSession) error {
		return sess.Draft.RemoveItem(index)
	})
}

// UpdatePayment cambia la forma de pago.
func (uc *DraftUseCase) UpdatePayment(id string, in dto.UpdatePaymentRequest) (*dto.DraftResponse, error) {
	return uc.mutate(id, func(sess *DraftSession) error {
		return sess.Draft.SetPaymentMethod(in.FormaPago)
	})
}

// UpdateBridge activa/desactiva el modo puente y opcionalmente reemplaza el
// payload crudo. Alternar el modo conserva tanto el borrador estructurado como
// el texto crudo.
func (uc *DraftUseCase) UpdateBridge(id string, in dto.UpdateBridgeRequest) (*dto.DraftResponse, error) {
	return uc.mutate(id, func(sess *DraftSession) error {
		sess.BridgeEnabled = in.Enabled
		if in.Payload != nil {
			sess.BridgePayload = *in.Payload
		}
		return nil
	})
}

// UpdateReferences cambia el establecimiento y/o el punto de emisión.
// Al cambiar de establecimiento se refiltra la lista de puntos: un punto que
// ya no pertenece al establecimiento nuevo se reajusta al primero válido (o
// queda vacío si no hay ninguno). Un punto solicitado explícitamente debe
// pertenecer al establecimiento seleccionado.
func (uc *DraftUseCase) UpdateReferences(id string, in dto.UpdateReferencesRequest) (*dto.DraftResponse, error) {
	return uc.mutate(id, func(sess *DraftSession) error {
		est := in.Establecimiento
		if est == "" {
			return domain.ErrInvalidInput
		}
		if sess.EstablishmentsLoaded && !establishmentExists(sess.Establishments, est) {
			return domain.ErrInvalidInput
		}

		valid := entity.PointsFor(sess.Points, est)
		punto := in.PuntoEmision
		switch {
		case punto != "":
			if sess.PointsLoaded && !pointExists(valid, punto) {
				return domain.ErrInvalidInput
			}
		case pointExists(valid, sess.Draft.PuntoEmision):
			punto = sess.Draft.PuntoEmision
		case len(valid) > 0:
			punto = valid[0].Codigo
		}

		sess.Draft.SetReferences(est, punto)
		return nil
	})
}

// mutate ejecuta una mutación bajo el lock de la sesión. Un borrador ya
// autorizado es terminal: cualquier edición posterior se rechaza.
func (uc *DraftUseCase) mutate(id string, fn func(*DraftSession) error) (*dto.DraftResponse, error) {
	sess, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State == entity.SubmitStateSuccess {
		return nil, domain.ErrDraftAlreadyIssued
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	return toResponse(sess), nil
}

func establishmentExists(list []entity.Establishment, codigo string) bool {
	for _, e := range list {
		if e.Codigo == codigo {
			return true
		}
	}
	return false
}

func pointExists(list []entity.EmissionPoint, codigo string) bool {
	for _, p := range list {
		if p.Codigo == codigo {
			return true
		}
	}
	return false
}
