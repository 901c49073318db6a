package sri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El endpoint de créditos tiene tres formas históricas; las tres normalizan
// al mismo entero.
func TestDecodeBalance_TresFormasConocidas(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"anidada data.balance", `{"data":{"balance":42}}`, 42},
		{"plana balance", `{"balance":42}`, 42},
		{"numero pelado en data", `{"data":42}`, 42},
		{"saldo cero", `{"balance":0}`, 0},
		{"saldo con decimales se trunca", `{"data":{"balance":12.9}}`, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeBalance([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeBalance_FormaDesconocida(t *testing.T) {
	for _, body := range []string{
		`{"saldo":42}`,
		`{}`,
		`[]`,
		`"42"`,
		`{"data":{"saldo":42}}`,
	} {
		_, err := decodeBalance([]byte(body))
		assert.Error(t, err, "body=%s", body)
	}
}
