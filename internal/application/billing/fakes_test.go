package billing

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/facturaec/emision-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de gateways para los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

type fakeReferenceGateway struct {
	ests   []entity.Establishment
	estErr error
	pts    []entity.EmissionPoint
	ptsErr error
}

func (f *fakeReferenceGateway) GetEstablishments(ctx context.Context, token string) ([]entity.Establishment, error) {
	if f.estErr != nil {
		return nil, f.estErr
	}
	return f.ests, nil
}

func (f *fakeReferenceGateway) GetEmissionPoints(ctx context.Context, token string) ([]entity.EmissionPoint, error) {
	if f.ptsErr != nil {
		return nil, f.ptsErr
	}
	return f.pts, nil
}

// referenciasDePrueba dos establecimientos, cada uno con sus puntos.
func referenciasDePrueba() *fakeReferenceGateway {
	return &fakeReferenceGateway{
		ests: []entity.Establishment{
			{ID: "e1", Codigo: "001", NombreComercial: "Matriz"},
			{ID: "e2", Codigo: "002", NombreComercial: "Sucursal"},
		},
		pts: []entity.EmissionPoint{
			{ID: "p1", Codigo: "100", EstablecimientoCodigo: "001"},
			{ID: "p2", Codigo: "200", EstablecimientoCodigo: "001"},
			{ID: "p3", Codigo: "300", EstablecimientoCodigo: "002"},
		},
	}
}

type fakeInvoiceGateway struct {
	mu       sync.Mutex
	calls    int
	payloads []json.RawMessage

	result  *entity.SubmissionResult
	err     error
	block   chan struct{} // si no es nil, la llamada espera hasta que se cierre
	entered chan struct{} // si no es nil, se cierra al entrar la primera llamada
}

func (f *fakeInvoiceGateway) SubmitInvoice(ctx context.Context, token string, payload json.RawMessage) (*entity.SubmissionResult, error) {
	f.mu.Lock()
	f.calls++
	f.payloads = append(f.payloads, payload)
	block := f.block
	if f.entered != nil && f.calls == 1 {
		close(f.entered)
	}
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeInvoiceGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var errBackendCaido = errors.New("connection refused")

func resultadoAutorizado() *entity.SubmissionResult {
	return &entity.SubmissionResult{
		OK:          true,
		ClaveAcceso: "0102202501179001234500110011000000000571234567813",
		Estado:      "AUTORIZADO",
		PDFURL:      "https://cdn.facturador.ec/rides/57.pdf",
	}
}

func resultadoRechazado() *entity.SubmissionResult {
	return &entity.SubmissionResult{
		OK:      false,
		Mensaje: "identificación del comprador inválida",
		Detalle: json.RawMessage(`{"campo":"identificacion"}`),
	}
}
