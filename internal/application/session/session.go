// Package session guarda la identidad compartida del proceso: el bearer token
// del proveedor de identidad y el usuario emisor. Se inicializa en el login y
// se limpia en el logout; el resto del sistema solo lee.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/facturaec/emision-api/internal/application/dto"
	"github.com/facturaec/emision-api/internal/domain"
	"github.com/facturaec/emision-api/internal/domain/entity"
	"github.com/facturaec/emision-api/internal/domain/gateway"
	"github.com/facturaec/emision-api/pkg/logger"
)

// Session estado de sesión del proceso.
type Session struct {
	gw  gateway.AuthGateway
	log *logger.Logger

	mu    sync.RWMutex
	token string
	user  *entity.User
}

// New construye la sesión vacía (sin autenticar).
func New(gw gateway.AuthGateway, log *logger.Logger) *Session {
	return &Session{gw: gw, log: log}
}

// Login autentica contra el backend y retiene token e identidad.
func (s *Session) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	token, user, err := s.gw.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	s.log.Info().Str("email", user.Email).Msg("sesión iniciada")
	return &dto.LoginResponse{
		AccessToken: token,
		User: dto.UserResponse{
			ID:     user.ID,
			Email:  user.Email,
			Nombre: user.Nombre,
			RUC:    user.RUC,
		},
	}, nil
}

// Logout limpia el estado de sesión del proceso.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.log.Info().Msg("sesión cerrada")
}

// Token devuelve el token activo, o cadena vacía si no hay sesión o el token
// ya expiró (así los consumidores fallan rápido sin ir a la red).
func (s *Session) Token() string {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" || tokenExpired(token) {
		return ""
	}
	return token
}

// User devuelve la identidad del usuario, o nil sin sesión.
func (s *Session) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated indica si hay una sesión con token vigente.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// tokenExpired inspecciona el claim exp sin verificar la firma: la validación
// real la hace el backend, aquí solo interesa detectar expiración local.
// Un token que no es JWT se considera vigente (opaco, decide el backend).
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}
