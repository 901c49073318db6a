package entity

import (
	"github.com/shopspring/decimal"

	"github.com/facturaec/emision-api/internal/domain"
	"github.com/facturaec/emision-api/pkg/sri"
)

// LineItem línea de detalle de la factura en borrador.
type LineItem struct {
	Codigo      string
	Descripcion string
	Cantidad    decimal.Decimal
	Precio      decimal.Decimal // precio unitario
}

// Total devuelve cantidad × precio unitario (sin redondear).
func (li LineItem) Total() decimal.Decimal {
	return li.Cantidad.Mul(li.Precio)
}

// PaymentLine única línea de pago de la factura. Su total se mantiene siempre
// sincronizado con el total de la factura; nunca se edita de forma independiente.
type PaymentLine struct {
	FormaPago string // ver pkg/sri, Tabla 24
	Total     decimal.Decimal
}

// Campos editables de LineItem vía UpdateItem.
const (
	ItemFieldCodigo      = "codigo"
	ItemFieldDescripcion = "descripcion"
	ItemFieldCantidad    = "cantidad"
	ItemFieldPrecio      = "precio"
)

// InvoiceDraft es la factura en composición, aún no emitida.
// Toda mutación de ítems o de selección termina en recompute(), de modo que
// Subtotal/IVA/Total y el total del pago nunca quedan desactualizados.
type InvoiceDraft struct {
	Establecimiento string // código del establecimiento seleccionado
	PuntoEmision    string // código del punto de emisión seleccionado
	Formato         int
	Cliente         ClientIdentity
	Items           []LineItem
	Pago            PaymentLine

	// Derivados. Subtotal e IVA se conservan sin redondear; el redondeo a
	// 2 decimales se aplica al sincronizar el pago y al presentar.
	Subtotal decimal.Decimal
	IVA      decimal.Decimal
	Total    decimal.Decimal
}

// NewInvoiceDraft crea un borrador con un ítem vacío (cantidad 1, precio 0)
// y la línea de pago por defecto en efectivo, como arranca la pantalla de emisión.
func NewInvoiceDraft() *InvoiceDraft {
	d := &InvoiceDraft{
		Formato: 1,
		Cliente: ClientIdentity{TipoID: sri.IDTypeCedula},
		Items:   []LineItem{newLineItem()},
		Pago:    PaymentLine{FormaPago: sri.PaymentSinSistemaFinanciero},
	}
	d.recompute()
	return d
}

func newLineItem() LineItem {
	return LineItem{Cantidad: decimal.NewFromInt(1), Precio: decimal.Zero}
}

// SetClientField reemplaza un campo de la identidad del cliente.
// No hay nada derivado del cliente, así que no recalcula.
func (d *InvoiceDraft) SetClientField(field, value string) error {
	switch field {
	case ClientFieldTipoID:
		if !sri.ValidIdentificationTypes[value] {
			return domain.ErrInvalidInput
		}
		d.Cliente.TipoID = value
	case ClientFieldIdentificacion:
		d.Cliente.Identificacion = value
	case ClientFieldRazonSocial:
		d.Cliente.RazonSocial = value
	case ClientFieldEmail:
		d.Cliente.Email = value
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// AddItem agrega una línea vacía con cantidad 1 y precio 0.
func (d *InvoiceDraft) AddItem() {
	d.Items = append(d.Items, newLineItem())
	d.recompute()
}

// UpdateItem modifica un campo de la línea indicada. Para cantidad y precio el
// valor se interpreta como decimal no negativo; si no parsea o es negativo se
// toma 0 (nunca retorna error por el valor). Código y descripción se guardan
// tal cual.
func (d *InvoiceDraft) UpdateItem(index int, field, value string) error {
	if index < 0 || index >= len(d.Items) {
		return domain.ErrNotFound
	}
	switch field {
	case ItemFieldCodigo:
		d.Items[index].Codigo = value
	case ItemFieldDescripcion:
		d.Items[index].Descripcion = value
	case ItemFieldCantidad:
		d.Items[index].Cantidad = parseAmount(value)
	case ItemFieldPrecio:
		d.Items[index].Precio = parseAmount(value)
	default:
		return domain.ErrInvalidInput
	}
	d.recompute()
	return nil
}

// RemoveItem elimina la línea indicada. La factura conserva siempre al menos
// una línea: con un solo ítem la operación se rechaza sin tocar el estado.
func (d *InvoiceDraft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.Items) {
		return domain.ErrNotFound
	}
	if len(d.Items) == 1 {
		return domain.ErrLastItem
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	d.recompute()
	return nil
}

// SetPaymentMethod cambia la forma de pago. El total del pago sigue siendo
// derivado del total de la factura.
func (d *InvoiceDraft) SetPaymentMethod(code string) error {
	if !sri.ValidPaymentMethods[code] {
		return domain.ErrInvalidInput
	}
	d.Pago.FormaPago = code
	return nil
}

// SetReferences fija el establecimiento y el punto de emisión seleccionados.
// La validación de pertenencia punto→establecimiento la hace el caso de uso
// de referencias, que conoce las listas completas.
func (d *InvoiceDraft) SetReferences(establecimiento, puntoEmision string) {
	d.Establecimiento = establecimiento
	d.PuntoEmision = puntoEmision
}

// recompute recalcula los totales derivados y sincroniza el total del pago con
// el total general redondeado a 2 decimales. Se invoca al final de toda
// operación que mute ítems.
func (d *InvoiceDraft) recompute() {
	subtotal := decimal.Zero
	for _, it := range d.Items {
		subtotal = subtotal.Add(it.Total())
	}
	d.Subtotal = subtotal
	d.IVA = subtotal.Mul(sri.VATRate)
	d.Total = d.Subtotal.Add(d.IVA)
	d.Pago.Total = d.Total.Round(2)
}

// parseAmount interpreta un decimal no negativo; ante error o negativo devuelve 0.
func parseAmount(value string) decimal.Decimal {
	n, err := decimal.NewFromString(value)
	if err != nil || n.IsNegative() {
		return decimal.Zero
	}
	return n
}
