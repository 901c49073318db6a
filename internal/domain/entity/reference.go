package entity

// Establishment representa un establecimiento (local físico) del emisor.
// El código es único dentro de la organización emisora (lo garantiza el backend).
type Establishment struct {
	ID             string
	Codigo         string // típicamente 3 dígitos, ej. "001"
	NombreComercial string
	Direccion      string
}

// EmissionPoint representa un punto de emisión (caja) bajo un establecimiento.
// Cada punto pertenece exactamente a un establecimiento y lleva su propio
// secuencial de comprobantes (solo lectura para este servicio).
type EmissionPoint struct {
	ID                   string
	Codigo               string // típicamente 3 dígitos, ej. "100"
	Nombre               string
	EstablecimientoID    string
	EstablecimientoCodigo string
	SecuencialActual     int64
}

// PointsFor filtra los puntos de emisión que pertenecen al establecimiento dado.
// Es una función pura: no modifica el slice de entrada.
func PointsFor(points []EmissionPoint, establecimientoCodigo string) []EmissionPoint {
	out := make([]EmissionPoint, 0, len(points))
	for _, p := range points {
		if p.EstablecimientoCodigo == establecimientoCodigo {
			out = append(out, p)
		}
	}
	return out
}
