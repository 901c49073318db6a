// Package credits mantiene el último saldo conocido de créditos de emisión y
// lo refresca en segundo plano. El saldo es solo informativo: la emisión nunca
// se bloquea por saldo bajo.
package credits

import (
	"context"
	"sync"
	"time"

	"github.com/facturaec/emision-api/internal/application/dto"
	"github.com/facturaec/emision-api/internal/domain/entity"
	"github.com/facturaec/emision-api/internal/domain/gateway"
	"github.com/facturaec/emision-api/pkg/logger"
)

// TokenSource entrega el bearer token de la sesión activa, o cadena vacía si
// no hay sesión (en cuyo caso el refresco se omite).
type TokenSource func() string

// Monitor refresca el saldo al arrancar y luego a intervalo fijo. Un fallo de
// lectura se registra y conserva el último valor conocido; nunca se resetea a
// cero por error.
type Monitor struct {
	gw       gateway.CreditGateway
	token    TokenSource
	interval time.Duration
	log      *logger.Logger

	mu      sync.RWMutex
	balance entity.CreditBalance
	fetched bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor construye el monitor.
func NewMonitor(gw gateway.CreditGateway, token TokenSource, interval time.Duration, log *logger.Logger) *Monitor {
	return &Monitor{gw: gw, token: token, interval: interval, log: log}
}

// Start lanza el refresco inicial y el bucle periódico. Debe emparejarse con
// Stop para no dejar el ticker huérfano.
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})

	m.Refresh(ctx)

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Refresh(ctx)
			}
		}
	}()
}

// Stop detiene el bucle y espera a que termine.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

// Refresh lee el saldo una vez. Sin sesión activa no hay token y se omite.
func (m *Monitor) Refresh(ctx context.Context) {
	token := m.token()
	if token == "" {
		m.log.Debug().Msg("refresco de créditos omitido: sin sesión activa")
		return
	}

	balance, err := m.gw.GetCreditBalance(ctx, token)
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudo refrescar el saldo de créditos; se conserva el último valor")
		return
	}

	m.mu.Lock()
	m.balance = entity.CreditBalance{Balance: balance}
	m.fetched = true
	level := m.balance.Level()
	m.mu.Unlock()

	if level == entity.CreditLevelLow {
		m.log.Warn().Int("balance", balance).Msg("saldo de créditos bajo")
	} else {
		m.log.Debug().Int("balance", balance).Msg("saldo de créditos actualizado")
	}
}

// Snapshot devuelve el último saldo conocido y su clasificación.
// Fetched=false significa que todavía no hubo ninguna lectura exitosa.
func (m *Monitor) Snapshot() dto.CreditBalanceResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return dto.CreditBalanceResponse{
		Balance: m.balance.Balance,
		Level:   m.balance.Level(),
		Fetched: m.fetched,
	}
}
