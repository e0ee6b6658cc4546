// Package extract pulls labelled order fields out of free text taken from
// order PDFs and e-mail bodies.
package extract

import (
	"github.com/heartmarshall/cvo-backend/internal/domain"
)

// Field labels as printed on dealership order forms.
const (
	Bank              = "BANCO"
	Advisor           = "Comercial"
	Total             = "TOTAL"
	Plate             = "Nº DE MATRÍCULA"
	Province          = "PROVINCIA"
	PostalCode        = "C.P."
	City              = "CIUDAD"
	Email             = "EMAIL"
	Phone             = "TFNO. PARTICULAR"
	DocumentID        = "D.N.I. Ó N.I.F."
	Address           = "DOMICILIO"
	PortalOrigin      = "PORTAL ORIGEN"
	ClientName        = "NOMBRE Y APELLIDOS O EMPRESA"
	OrderDate         = "FECHA DE PEDIDO"
	VIN               = "Nº BASTIDOR"
	Model             = "MODELO"
	Discount          = "DESCUENTO"
	OrderNumber       = "Nº PEDIDO"
	Brand             = "MARCA"
	Color             = "COLOR"
	Kilometers        = "KILÓMETROS"
	FirstRegistration = "PRIMERA FECHA MATRICULACIÓN"
	Tomo              = "TOMO"
)

// Vocabulary lists every field label in a stable order.
var Vocabulary = []string{
	Bank, Advisor, Total, Plate, Province, PostalCode, City, Email, Phone,
	DocumentID, Address, PortalOrigin, ClientName, OrderDate, VIN, Model,
	Discount, OrderNumber, Brand, Color, Kilometers, FirstRegistration, Tomo,
}

// Fields maps every vocabulary label to its value; absent values are "".
type Fields map[string]string

// NewFields returns a Fields with every label present and empty.
func NewFields() Fields {
	f := make(Fields, len(Vocabulary))
	for _, k := range Vocabulary {
		f[k] = ""
	}
	return f
}

// FromMap copies known labels out of m; unknown keys are ignored
// and missing ones are set to "".
func FromMap(m map[string]string) Fields {
	f := NewFields()
	for _, k := range Vocabulary {
		f[k] = m[k]
	}
	return f
}

// Get returns the value of label, "" when absent.
func (f Fields) Get(label string) string { return f[label] }

// Found lists the labels with a value, excluding the derived MARCA which
// always carries a default.
func (f Fields) Found() []string {
	var out []string
	for _, k := range Vocabulary {
		if k != Brand && f[k] != "" {
			out = append(out, k)
		}
	}
	return out
}

// Missing lists the labels without a value.
func (f Fields) Missing() []string {
	var out []string
	for _, k := range Vocabulary {
		if f[k] == "" {
			out = append(out, k)
		}
	}
	return out
}

// Status grades an extraction: failed when nothing was recovered, success when
// the plate, document id and client name were all found, partial otherwise.
func Status(f Fields) domain.ExtractionStatus {
	if len(f.Found()) == 0 {
		return domain.ExtractionFailed
	}
	if f[Plate] != "" && f[DocumentID] != "" && f[ClientName] != "" {
		return domain.ExtractionSuccess
	}
	return domain.ExtractionPartial
}
