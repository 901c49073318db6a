package dto

// EstablishmentResponse establecimiento en respuestas.
type EstablishmentResponse struct {
	ID              string `json:"id"`
	Codigo          string `json:"codigo"`
	NombreComercial string `json:"nombre_comercial"`
	Direccion       string `json:"direccion"`
}

// EmissionPointResponse punto de emisión en respuestas.
type EmissionPointResponse struct {
	ID                    string `json:"id"`
	Codigo                string `json:"codigo"`
	Nombre                string `json:"nombre"`
	EstablecimientoCodigo string `json:"establecimiento_codigo"`
	SecuencialActual      int64  `json:"secuencial_actual"`
}

// ReferenceListResponse listas de referencia. Una lista vacía con Loaded=false
// indica que la lectura falló (distinto de "sin datos").
type ReferenceListResponse struct {
	Establishments       []EstablishmentResponse `json:"establishments"`
	EstablishmentsLoaded bool                    `json:"establishments_loaded"`
	Points               []EmissionPointResponse `json:"puntos_emision"`
	PointsLoaded         bool                    `json:"puntos_emision_loaded"`
}
