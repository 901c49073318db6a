package sri

import "encoding/json"

// DTOs de cable del backend de facturación. Los nombres de campo siguen el
// contrato JSON del backend (español), no se renombran aquí.

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

type establishmentDTO struct {
	ID              string `json:"id"`
	Codigo          string `json:"codigo"`
	NombreComercial string `json:"nombre_comercial"`
	Direccion       string `json:"direccion"`
}

type emissionPointDTO struct {
	ID              string `json:"id"`
	Codigo          string `json:"codigo"`
	Nombre          string `json:"nombre"`
	Establecimiento *struct {
		ID     string `json:"id"`
		Codigo string `json:"codigo"`
	} `json:"establecimiento"`
	SecuencialActual int64 `json:"secuencial_actual"`
}

type submitOKResponse struct {
	OK    bool `json:"ok"`
	Datos struct {
		ClaveAcceso string `json:"claveAcceso"`
		Estado      string `json:"estado"`
		PDFURL      string `json:"pdfUrl"`
	} `json:"datos"`
}

type submitErrorResponse struct {
	Mensaje string          `json:"mensaje"`
	Detalle json.RawMessage `json:"detalle"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Session struct {
		AccessToken string `json:"access_token"`
	} `json:"session"`
	User struct {
		ID     string `json:"id"`
		Email  string `json:"email"`
		Nombre string `json:"nombre"`
		RUC    string `json:"ruc"`
	} `json:"user"`
}
