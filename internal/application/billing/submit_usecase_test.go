package billing

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturaec/emision-api/internal/application/dto"
	"github.com/facturaec/emision-api/internal/domain"
	"github.com/facturaec/emision-api/internal/domain/entity"
	"github.com/facturaec/emision-api/pkg/logger"
)

// crea el trío store + casos de uso compartiendo el mismo store, y deja una
// sesión de borrador lista para emitir.
func newSubmitFixture(t *testing.T, gw *fakeInvoiceGateway) (*DraftUseCase, *SubmitUseCase, string) {
	t.Helper()
	store := NewStore()
	drafts := NewDraftUseCase(store, NewReferenceUseCase(referenciasDePrueba(), logger.Nop()), logger.Nop())
	submits := NewSubmitUseCase(store, gw, logger.Nop())

	created, err := drafts.Create(context.Background(), "tok")
	require.NoError(t, err)
	return drafts, submits, created.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de la máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

// IDLE → SUBMITTING → SUCCESS; el éxito es terminal.
func TestSubmit_Autorizada(t *testing.T) {
	gw := &fakeInvoiceGateway{result: resultadoAutorizado()}
	drafts, submits, id := newSubmitFixture(t, gw)

	resp, err := submits.Submit(context.Background(), id, "tok")
	require.NoError(t, err)

	assert.Equal(t, entity.SubmitStateSuccess, resp.State)
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.OK)
	assert.Equal(t, "AUTORIZADO", resp.Result.Estado)
	assert.NotEmpty(t, resp.Result.ClaveAcceso)
	assert.Equal(t, 1, gw.callCount())

	// Terminal: ni reenviar ni seguir editando.
	_, err = submits.Submit(context.Background(), id, "tok")
	assert.ErrorIs(t, err, domain.ErrDraftAlreadyIssued)
	_, err = drafts.AddItem(id)
	assert.ErrorIs(t, err, domain.ErrDraftAlreadyIssued)
	assert.Equal(t, 1, gw.callCount())
}

// Un rechazo del backend deja FAILURE con el detalle; el mismo borrador
// corregido puede reenviarse y llegar a SUCCESS.
func TestSubmit_RechazoYReenvio(t *testing.T) {
	gw := &fakeInvoiceGateway{result: resultadoRechazado()}
	drafts, submits, id := newSubmitFixture(t, gw)

	resp, err := submits.Submit(context.Background(), id, "tok")
	require.NoError(t, err)
	assert.Equal(t, entity.SubmitStateFailure, resp.State)
	require.NotNil(t, resp.Result)
	assert.False(t, resp.Result.OK)
	assert.Equal(t, "identificación del comprador inválida", resp.Result.Mensaje)
	assert.JSONEq(t, `{"campo":"identificacion"}`, string(resp.Result.Detalle))

	// Tras el fallo el borrador sigue editable.
	_, err = drafts.UpdateClient(id, dto.UpdateClientRequest{Field: entity.ClientFieldIdentificacion, Value: "1790012345001"})
	require.NoError(t, err)

	gw.result = resultadoAutorizado()
	resp, err = submits.Submit(context.Background(), id, "tok")
	require.NoError(t, err)
	assert.Equal(t, entity.SubmitStateSuccess, resp.State)
	assert.Equal(t, 2, gw.callCount())
}

// Un error de transporte también termina en FAILURE, con un mensaje local.
func TestSubmit_ErrorDeTransporte(t *testing.T) {
	gw := &fakeInvoiceGateway{err: errBackendCaido}
	_, submits, id := newSubmitFixture(t, gw)

	resp, err := submits.Submit(context.Background(), id, "tok")
	require.NoError(t, err)
	assert.Equal(t, entity.SubmitStateFailure, resp.State)
	require.NotNil(t, resp.Result)
	assert.False(t, resp.Result.OK)
	assert.Equal(t, "error al emitir la factura", resp.Result.Mensaje)
}

func TestSubmit_SesionExpirada(t *testing.T) {
	gw := &fakeInvoiceGateway{err: domain.ErrUnauthorized}
	_, submits, id := newSubmitFixture(t, gw)

	resp, err := submits.Submit(context.Background(), id, "tok")
	require.NoError(t, err)
	assert.Equal(t, entity.SubmitStateFailure, resp.State)
	assert.Equal(t, "sesión no autorizada o expirada", resp.Result.Mensaje)
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío en curso
// ──────────────────────────────────────────────────────────────────────────────

// Con un envío en curso, un segundo submit se rechaza sin generar una segunda
// llamada de red.
func TestSubmit_EnvioEnCursoRechazaElSegundo(t *testing.T) {
	gw := &fakeInvoiceGateway{
		result:  resultadoAutorizado(),
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	_, submits, id := newSubmitFixture(t, gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := submits.Submit(context.Background(), id, "tok")
		assert.NoError(t, err)
	}()

	// Esperar a que el primer envío esté dentro del gateway.
	<-gw.entered

	_, err := submits.Submit(context.Background(), id, "tok")
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
	assert.Equal(t, 1, gw.callCount())

	close(gw.block)
	wg.Wait()
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo puente
// ──────────────────────────────────────────────────────────────────────────────

// Con el puente activo y texto que no es JSON, el envío falla localmente:
// cero llamadas de red y el estado no cambia.
func TestSubmit_PuenteConJSONInvalido(t *testing.T) {
	gw := &fakeInvoiceGateway{result: resultadoAutorizado()}
	drafts, submits, id := newSubmitFixture(t, gw)

	raw := `{not valid json`
	_, err := drafts.UpdateBridge(id, dto.UpdateBridgeRequest{Enabled: true, Payload: &raw})
	require.NoError(t, err)

	_, err = submits.Submit(context.Background(), id, "tok")
	assert.ErrorIs(t, err, domain.ErrInvalidBridgeJSON)
	assert.Equal(t, 0, gw.callCount())

	resp, err := drafts.Get(id)
	require.NoError(t, err)
	assert.Equal(t, entity.SubmitStateIdle, resp.State, "un fallo local no toca la máquina de estados")
}

// Con el puente activo y JSON válido, el texto viaja tal cual al backend.
func TestSubmit_PuenteEnviaElTextoCrudo(t *testing.T) {
	gw := &fakeInvoiceGateway{result: resultadoAutorizado()}
	drafts, submits, id := newSubmitFixture(t, gw)

	raw := `{"items":[{"codigo":"SRV-01","cantidad":"3"}],"nota":"migrado"}`
	_, err := drafts.UpdateBridge(id, dto.UpdateBridgeRequest{Enabled: true, Payload: &raw})
	require.NoError(t, err)

	resp, err := submits.Submit(context.Background(), id, "tok")
	require.NoError(t, err)
	assert.Equal(t, entity.SubmitStateSuccess, resp.State)

	require.Equal(t, 1, gw.callCount())
	assert.Equal(t, raw, string(gw.payloads[0]), "el payload crudo no se reescribe")
}

// Sin puente, el payload se arma desde el borrador estructurado con la
// colección canónica items.
func TestSubmit_PayloadEstructurado(t *testing.T) {
	gw := &fakeInvoiceGateway{result: resultadoAutorizado()}
	drafts, submits, id := newSubmitFixture(t, gw)

	_, err := drafts.UpdateItem(id, 0, dto.UpdateItemRequest{Field: entity.ItemFieldCantidad, Value: "2"})
	require.NoError(t, err)
	_, err = drafts.UpdateItem(id, 0, dto.UpdateItemRequest{Field: entity.ItemFieldPrecio, Value: "10"})
	require.NoError(t, err)

	_, err = submits.Submit(context.Background(), id, "tok")
	require.NoError(t, err)

	require.Equal(t, 1, gw.callCount())
	payload := string(gw.payloads[0])
	assert.Contains(t, payload, `"items"`)
	assert.NotContains(t, payload, `"detalles"`)
	assert.Contains(t, payload, `"establecimiento":"001"`)
}
