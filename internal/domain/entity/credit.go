package entity

// LowCreditThreshold saldo a partir del cual (inclusive) se advierte al usuario.
const LowCreditThreshold = 15

// Niveles de clasificación del saldo de créditos. Solo informativo: ningún
// componente bloquea la emisión por saldo bajo.
const (
	CreditLevelNormal = "NORMAL"
	CreditLevelLow    = "LOW"
)

// CreditBalance último saldo conocido de créditos de emisión.
type CreditBalance struct {
	Balance int
}

// Level clasifica el saldo: LOW cuando balance ≤ 15 (límite inclusive).
func (c CreditBalance) Level() string {
	if c.Balance <= LowCreditThreshold {
		return CreditLevelLow
	}
	return CreditLevelNormal
}
