package billing

import (
	"context"
	"sync"

	"github.com/facturaec/emision-api/internal/domain/entity"
	"github.com/facturaec/emision-api/internal/domain/gateway"
	"github.com/facturaec/emision-api/pkg/logger"
)

// ReferenceUseCase carga de datos de referencia (establecimientos y puntos de
// emisión) desde el backend.
type ReferenceUseCase struct {
	gw  gateway.ReferenceGateway
	log *logger.Logger
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(gw gateway.ReferenceGateway, log *logger.Logger) *ReferenceUseCase {
	return &ReferenceUseCase{gw: gw, log: log}
}

// ReferenceData resultado de LoadAll. Una lista con Loaded=false viene de una
// lectura fallida y queda vacía; la otra no se ve afectada.
type ReferenceData struct {
	Establishments       []entity.Establishment
	EstablishmentsLoaded bool
	Points               []entity.EmissionPoint
	PointsLoaded         bool
}

// LoadAll lanza las dos lecturas en paralelo, de forma independiente: el fallo
// de una no cancela ni afecta a la otra (mejor esfuerzo, no todo-o-nada).
func (uc *ReferenceUseCase) LoadAll(ctx context.Context, token string) ReferenceData {
	var data ReferenceData
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		ests, err := uc.gw.GetEstablishments(ctx, token)
		if err != nil {
			uc.log.Warn().Err(err).Msg("no se pudieron cargar los establecimientos")
			data.Establishments = []entity.Establishment{}
			return
		}
		data.Establishments = ests
		data.EstablishmentsLoaded = true
	}()

	go func() {
		defer wg.Done()
		pts, err := uc.gw.GetEmissionPoints(ctx, token)
		if err != nil {
			uc.log.Warn().Err(err).Msg("no se pudieron cargar los puntos de emisión")
			data.Points = []entity.EmissionPoint{}
			return
		}
		data.Points = pts
		data.PointsLoaded = true
	}()

	wg.Wait()
	return data
}
