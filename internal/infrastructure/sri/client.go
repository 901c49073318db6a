// Package sri implementa el cliente HTTP hacia el backend de facturación
// electrónica (emisión, referencias, créditos y login). Todas las llamadas
// autenticadas adjuntan el bearer token de la sesión del usuario.
package sri

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/facturaec/emision-api/internal/domain"
	"github.com/facturaec/emision-api/internal/domain/entity"
	"github.com/facturaec/emision-api/pkg/config"
	"github.com/facturaec/emision-api/pkg/logger"
)

// Client cliente resty del backend. Implementa los gateways de
// internal/domain/gateway.
type Client struct {
	rest *resty.Client
	cfg  config.BackendConfig
	log  *logger.Logger
}

// NewClient construye el cliente. Los timeouts se aplican por llamada vía
// context: lecturas con RequestTimeout, emisión con SubmitTimeout (la firma y
// autorización en el SRI tardan más que una lectura).
func NewClient(cfg config.BackendConfig, log *logger.Logger) *Client {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json")
	return &Client{rest: rest, cfg: cfg, log: log}
}

// GetEstablishments lista los establecimientos del emisor.
func (c *Client) GetEstablishments(ctx context.Context, token string) ([]entity.Establishment, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/api/establishments")
	if err != nil {
		return nil, fmt.Errorf("establecimientos: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var env listEnvelope[establishmentDTO]
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("establecimientos: decodificar respuesta: %w", err)
	}
	out := make([]entity.Establishment, 0, len(env.Data))
	for _, e := range env.Data {
		out = append(out, entity.Establishment{
			ID:              e.ID,
			Codigo:          e.Codigo,
			NombreComercial: e.NombreComercial,
			Direccion:       e.Direccion,
		})
	}
	return out, nil
}

// GetEmissionPoints lista los puntos de emisión, cada uno con la referencia a
// su establecimiento.
func (c *Client) GetEmissionPoints(ctx context.Context, token string) ([]entity.EmissionPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/api/puntos-emision")
	if err != nil {
		return nil, fmt.Errorf("puntos de emisión: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var env listEnvelope[emissionPointDTO]
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("puntos de emisión: decodificar respuesta: %w", err)
	}
	out := make([]entity.EmissionPoint, 0, len(env.Data))
	for _, p := range env.Data {
		ep := entity.EmissionPoint{
			ID:               p.ID,
			Codigo:           p.Codigo,
			Nombre:           p.Nombre,
			SecuencialActual: p.SecuencialActual,
		}
		if p.Establecimiento != nil {
			ep.EstablecimientoID = p.Establecimiento.ID
			ep.EstablecimientoCodigo = p.Establecimiento.Codigo
		}
		out = append(out, ep)
	}
	return out, nil
}

// GetCreditBalance obtiene el saldo de créditos. Acepta las tres formas de
// respuesta conocidas del endpoint (ver decodeBalance).
func (c *Client) GetCreditBalance(ctx context.Context, token string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/api/credits")
	if err != nil {
		return 0, fmt.Errorf("créditos: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return 0, err
	}
	return decodeBalance(resp.Body())
}

// SubmitInvoice envía el payload de la factura al backend.
// Autorizada: SubmissionResult con OK=true, clave de acceso, estado y URL del RIDE.
// Rechazada por el backend: SubmissionResult con OK=false, mensaje y detalle (error nil).
// Fallo de transporte o 401: error.
func (c *Client) SubmitInvoice(ctx context.Context, token string, payload json.RawMessage) (*entity.SubmissionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.SubmitTimeout)
	defer cancel()

	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		Post("/api/facturar")
	if err != nil {
		return nil, fmt.Errorf("facturar: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, domain.ErrUnauthorized
	}

	if resp.IsSuccess() {
		var ok submitOKResponse
		if err := json.Unmarshal(resp.Body(), &ok); err != nil || !ok.OK {
			return nil, fmt.Errorf("facturar: respuesta inesperada del backend: %s", truncate(resp.Body(), 200))
		}
		return &entity.SubmissionResult{
			OK:          true,
			ClaveAcceso: ok.Datos.ClaveAcceso,
			Estado:      ok.Datos.Estado,
			PDFURL:      ok.Datos.PDFURL,
		}, nil
	}

	// Rechazo del backend (validación, firma o autorización SRI): viene con
	// {mensaje, detalle?}. Se entrega tal cual, sin reintentos.
	var rej submitErrorResponse
	if err := json.Unmarshal(resp.Body(), &rej); err != nil || rej.Mensaje == "" {
		rej.Mensaje = fmt.Sprintf("error del backend (HTTP %d)", resp.StatusCode())
	}
	return &entity.SubmissionResult{
		OK:      false,
		Mensaje: rej.Mensaje,
		Detalle: rej.Detalle,
	}, nil
}

// Login autentica al usuario contra el backend y devuelve el access token y la
// identidad. Este servicio no valida credenciales por sí mismo.
func (c *Client) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return "", nil, domain.ErrUnauthorized
	}

	var lr loginResponse
	if err := json.Unmarshal(resp.Body(), &lr); err != nil {
		return "", nil, fmt.Errorf("login: decodificar respuesta: %w", err)
	}
	if !lr.OK || lr.Session.AccessToken == "" {
		if lr.Error != "" {
			return "", nil, fmt.Errorf("login: %s", lr.Error)
		}
		return "", nil, domain.ErrUnauthorized
	}
	return lr.Session.AccessToken, &entity.User{
		ID:     lr.User.ID,
		Email:  lr.User.Email,
		Nombre: lr.User.Nombre,
		RUC:    lr.User.RUC,
	}, nil
}

// checkStatus mapea estados HTTP de lecturas a errores de dominio.
func checkStatus(resp *resty.Response) error {
	switch {
	case resp.IsSuccess():
		return nil
	case resp.StatusCode() == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	default:
		return fmt.Errorf("backend respondió HTTP %d", resp.StatusCode())
	}
}
