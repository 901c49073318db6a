package sri

import (
	"encoding/json"
	"fmt"
)

// El endpoint de créditos ha tenido tres formas de respuesta en producción:
//
//	{"data":{"balance":N}}   forma actual
//	{"balance":N}            forma previa al envoltorio "data"
//	{"data":N}               forma original (número pelado)
//
// decodeBalance acepta las tres y normaliza a un entero. Cualquier otra forma
// es un error de decodificación.
func decodeBalance(body []byte) (int, error) {
	var nested struct {
		Data *struct {
			Balance *json.Number `json:"balance"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Data != nil && nested.Data.Balance != nil {
		return numberToInt(*nested.Data.Balance)
	}

	var flat struct {
		Balance *json.Number `json:"balance"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Balance != nil {
		return numberToInt(*flat.Balance)
	}

	var bare struct {
		Data *json.Number `json:"data"`
	}
	if err := json.Unmarshal(body, &bare); err == nil && bare.Data != nil {
		return numberToInt(*bare.Data)
	}

	return 0, fmt.Errorf("respuesta de créditos con forma desconocida: %s", truncate(body, 120))
}

func numberToInt(n json.Number) (int, error) {
	v, err := n.Int64()
	if err != nil {
		// saldo con decimales: se trunca hacia el entero
		f, ferr := n.Float64()
		if ferr != nil {
			return 0, err
		}
		return int(f), nil
	}
	return int(v), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
