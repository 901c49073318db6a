package entity

// User identidad del usuario emisor, tal como la devuelve el proveedor de
// identidad en el login. Este servicio solo la consume.
type User struct {
	ID    string
	Email string
	Nombre string
	RUC   string
}
