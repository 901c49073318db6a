package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facturaec/emision-api/internal/domain/entity"
)

// La clasificación es LOW con saldo ≤ 15 (límite inclusive) y NORMAL por encima.
func TestCreditBalance_Clasificacion(t *testing.T) {
	cases := []struct {
		balance int
		want    string
	}{
		{12, entity.CreditLevelLow},
		{15, entity.CreditLevelLow}, // límite inclusive
		{16, entity.CreditLevelNormal},
		{0, entity.CreditLevelLow},
		{-3, entity.CreditLevelLow},
		{100, entity.CreditLevelNormal},
	}
	for _, tc := range cases {
		got := entity.CreditBalance{Balance: tc.balance}.Level()
		assert.Equal(t, tc.want, got, "balance=%d", tc.balance)
	}
}
