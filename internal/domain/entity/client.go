package entity

// ClientIdentity identifica al comprador de la factura.
// El formato del número de identificación depende del tipo (cédula 10 dígitos,
// RUC 13, etc.); esa validación la hace el backend, no este servicio.
type ClientIdentity struct {
	TipoID         string // ver pkg/sri: "04" RUC, "05" cédula, "06" pasaporte, "07" consumidor final
	Identificacion string
	RazonSocial    string
	Email          string
}

// Campos editables de ClientIdentity vía SetClientField.
const (
	ClientFieldTipoID         = "tipoId"
	ClientFieldIdentificacion = "identificacion"
	ClientFieldRazonSocial    = "razonSocial"
	ClientFieldEmail          = "email"
)
