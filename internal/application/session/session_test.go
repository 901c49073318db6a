package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturaec/emision-api/internal/application/dto"
	"github.com/facturaec/emision-api/internal/domain"
	"github.com/facturaec/emision-api/internal/domain/entity"
	"github.com/facturaec/emision-api/pkg/logger"
)

type fakeAuthGateway struct {
	token string
	user  *entity.User
	err   error
}

func (f *fakeAuthGateway) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

// jwtConExpiracion emite un JWT firmado con cualquier clave; la firma no se
// verifica localmente, solo interesa el claim exp.
func jwtConExpiracion(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("clave-de-prueba"))
	require.NoError(t, err)
	return tok
}

func usuarioDePrueba() *entity.User {
	return &entity.User{ID: "u1", Email: "ana@acme.ec", Nombre: "Ana", RUC: "1790012345001"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_LoginRetieneTokenEIdentidad(t *testing.T) {
	gw := &fakeAuthGateway{token: "tok-opaco", user: usuarioDePrueba()}
	s := New(gw, logger.Nop())

	resp, err := s.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.ec", Password: "secreto"})
	require.NoError(t, err)

	assert.Equal(t, "tok-opaco", resp.AccessToken)
	assert.Equal(t, "ana@acme.ec", resp.User.Email)
	assert.Equal(t, "tok-opaco", s.Token())
	assert.True(t, s.IsAuthenticated())
	require.NotNil(t, s.User())
	assert.Equal(t, "u1", s.User().ID)
}

func TestSession_LoginValidaCampos(t *testing.T) {
	s := New(&fakeAuthGateway{}, logger.Nop())

	_, err := s.Login(context.Background(), dto.LoginRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.ec", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSession_LoginPropagaElRechazo(t *testing.T) {
	gw := &fakeAuthGateway{err: domain.ErrUnauthorized}
	s := New(gw, logger.Nop())

	_, err := s.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.ec", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, s.IsAuthenticated())
}

func TestSession_LogoutLimpiaElEstado(t *testing.T) {
	gw := &fakeAuthGateway{token: "tok", user: usuarioDePrueba()}
	s := New(gw, logger.Nop())
	_, err := s.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.ec", Password: "secreto"})
	require.NoError(t, err)

	s.Logout()

	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
	assert.False(t, s.IsAuthenticated())
}

// ──────────────────────────────────────────────────────────────────────────────
// Expiración local del token
// ──────────────────────────────────────────────────────────────────────────────

// Un JWT con exp en el pasado deja de entregarse: los consumidores fallan
// rápido sin ir a la red.
func TestSession_TokenExpiradoNoSeEntrega(t *testing.T) {
	expirado := jwtConExpiracion(t, time.Now().Add(-time.Minute))
	gw := &fakeAuthGateway{token: expirado, user: usuarioDePrueba()}
	s := New(gw, logger.Nop())
	_, err := s.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.ec", Password: "secreto"})
	require.NoError(t, err)

	assert.Empty(t, s.Token())
	assert.False(t, s.IsAuthenticated())
}

func TestSession_TokenVigenteSeEntrega(t *testing.T) {
	vigente := jwtConExpiracion(t, time.Now().Add(time.Hour))
	gw := &fakeAuthGateway{token: vigente, user: usuarioDePrueba()}
	s := New(gw, logger.Nop())
	_, err := s.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.ec", Password: "secreto"})
	require.NoError(t, err)

	assert.Equal(t, vigente, s.Token())
}

// Un token que no es JWT se trata como opaco y vigente; su validez la decide
// el backend.
func TestSession_TokenOpacoSeConsideraVigente(t *testing.T) {
	gw := &fakeAuthGateway{token: "no-es-un-jwt", user: usuarioDePrueba()}
	s := New(gw, logger.Nop())
	_, err := s.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.ec", Password: "secreto"})
	require.NoError(t, err)

	assert.Equal(t, "no-es-un-jwt", s.Token())
}
