package credits

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/facturaec/emision-api/internal/domain/entity"
	"github.com/facturaec/emision-api/pkg/logger"
)

type fakeCreditGateway struct {
	mu      sync.Mutex
	balance int
	err     error
	calls   int
}

func (f *fakeCreditGateway) GetCreditBalance(ctx context.Context, token string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.balance, nil
}

func (f *fakeCreditGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func tokenFijo(tok string) TokenSource { return func() string { return tok } }

// ──────────────────────────────────────────────────────────────────────────────
// Refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestMonitor_RefreshActualizaElSaldo(t *testing.T) {
	gw := &fakeCreditGateway{balance: 27}
	m := NewMonitor(gw, tokenFijo("tok"), time.Minute, logger.Nop())

	m.Refresh(context.Background())

	snap := m.Snapshot()
	assert.True(t, snap.Fetched)
	assert.Equal(t, 27, snap.Balance)
	assert.Equal(t, entity.CreditLevelNormal, snap.Level)
}

func TestMonitor_SaldoBajoSeClasificaLow(t *testing.T) {
	gw := &fakeCreditGateway{balance: 15} // el umbral es inclusivo
	m := NewMonitor(gw, tokenFijo("tok"), time.Minute, logger.Nop())

	m.Refresh(context.Background())

	assert.Equal(t, entity.CreditLevelLow, m.Snapshot().Level)
}

// Sin sesión activa no hay token y el refresco se omite sin tocar la red.
func TestMonitor_SinSesionNoConsulta(t *testing.T) {
	gw := &fakeCreditGateway{balance: 27}
	m := NewMonitor(gw, tokenFijo(""), time.Minute, logger.Nop())

	m.Refresh(context.Background())

	assert.Equal(t, 0, gw.callCount())
	assert.False(t, m.Snapshot().Fetched)
}

// Un fallo de lectura conserva el último valor conocido; nunca se resetea.
func TestMonitor_ErrorConservaElUltimoValor(t *testing.T) {
	gw := &fakeCreditGateway{balance: 27}
	m := NewMonitor(gw, tokenFijo("tok"), time.Minute, logger.Nop())

	m.Refresh(context.Background())
	assert.Equal(t, 27, m.Snapshot().Balance)

	gw.mu.Lock()
	gw.err = errors.New("backend caído")
	gw.mu.Unlock()
	m.Refresh(context.Background())

	snap := m.Snapshot()
	assert.True(t, snap.Fetched)
	assert.Equal(t, 27, snap.Balance, "el valor anterior sobrevive al fallo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

// Start hace un refresco inmediato y Stop espera a que el bucle termine.
func TestMonitor_StartYStop(t *testing.T) {
	gw := &fakeCreditGateway{balance: 40}
	m := NewMonitor(gw, tokenFijo("tok"), time.Hour, logger.Nop())

	m.Start(context.Background())
	assert.Equal(t, 1, gw.callCount(), "Start refresca una vez de inmediato")
	assert.Equal(t, 40, m.Snapshot().Balance)

	m.Stop()
	// Tras Stop el bucle ya no consulta más.
	assert.Equal(t, 1, gw.callCount())
}

func TestMonitor_StopSinStartEsInocuo(t *testing.T) {
	m := NewMonitor(&fakeCreditGateway{}, tokenFijo("tok"), time.Minute, logger.Nop())
	m.Stop()
}
