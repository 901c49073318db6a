// Package sri contiene catálogos alineados a la Ficha Técnica de Comprobantes
// Electrónicos del SRI (Ecuador), esquema Factura v2.1.0.
package sri

import "github.com/shopspring/decimal"

// =============================================================================
// Tabla 6 - Tipos de Identificación del comprador
// =============================================================================

const (
	IDTypeRUC             = "04" // RUC
	IDTypeCedula          = "05" // Cédula
	IDTypePasaporte       = "06" // Pasaporte
	IDTypeConsumidorFinal = "07" // Venta a consumidor final
)

// ValidIdentificationTypes tipos de identificación aceptados por el esquema.
var ValidIdentificationTypes = map[string]bool{
	IDTypeRUC:             true,
	IDTypeCedula:          true,
	IDTypePasaporte:       true,
	IDTypeConsumidorFinal: true,
}

// =============================================================================
// Tabla 24 - Formas de Pago - códigos de uso frecuente
// =============================================================================

const (
	PaymentSinSistemaFinanciero   = "01" // Sin utilización del sistema financiero (efectivo)
	PaymentTarjetaDebito          = "16" // Tarjeta de débito
	PaymentTarjetaCredito         = "19" // Tarjeta de crédito
	PaymentOtrosSistemaFinanciero = "20" // Otros con utilización del sistema financiero
)

// ValidPaymentMethods formas de pago aceptadas en la emisión.
var ValidPaymentMethods = map[string]bool{
	PaymentSinSistemaFinanciero:   true,
	PaymentTarjetaDebito:          true,
	PaymentTarjetaCredito:         true,
	PaymentOtrosSistemaFinanciero: true,
}

// VATRate tarifa de IVA vigente (15% desde abril 2024, Decreto 198).
var VATRate = decimal.NewFromFloat(0.15)
