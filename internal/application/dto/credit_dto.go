package dto

// CreditBalanceResponse saldo de créditos con su clasificación.
// Fetched=false significa que aún no se ha logrado leer el saldo ni una vez.
type CreditBalanceResponse struct {
	Balance int    `json:"balance"`
	Level   string `json:"level"` // NORMAL | LOW
	Fetched bool   `json:"fetched"`
}
