package stockimport

// KnownColumns are the columns of the dealer stock export kept in
// duc_scraper.columns. Other columns are dropped.
var KnownColumns = []string{
	"ID Anuncio", "Anuncio", "BPS / NEXT", "Cambio", "Certificado", "Chasis",
	"Color Carrocería", "Color tapizado", "Combustible", "Concesionario",
	"Creado con", "Destino", "Disponibilidad", "Distintivo ambiental",
	"Días creado", "Días desde compra DMS", "Días desde matriculación",
	"Días publicado", "e-code", "El precio es", "En uso", "Fecha compra DMS",
	"Fecha creación", "Fecha disponibilidad", "Fecha entrada VO",
	"Fecha fabricación", "Fecha modificación", "Fecha primera matriculación",
	"Fecha primera publicación", "Garantía", "KM", "Libre de siniestros",
	"Marca", "Moneda", "No completados", "Nota interna", "Observaciones",
	"Origen", "Origenes unificados", "País origen", "Potencia Cv", "Precio",
	"Precio compra", "Precio cuota alquiler", "Precio cuota renting",
	"Precio estimado medio", "Precio exportación", "Precio financiado",
	"Precio vehículo nuevo", "Precio profesional", "Proveedor", "Referencia",
	"Referencia interna", "Regimen fiscal", "Tienda", "Tipo de distribución",
	"Tipo motor", "Trancha 1", "Trancha 2", "Trancha 3", "Trancha 4",
	"Trancha Combustible", "Trancha YUC", "Ubicación tienda", "URL",
	"URL foto 1", "URL foto 2", "URL foto 3", "URL foto 4", "URL foto 5",
	"URL foto 6", "URL foto 7", "URL foto 8", "URL foto 9", "URL foto 10",
	"URL foto 11", "URL foto 12", "URL foto 13", "URL foto 14", "URL foto 15",
	"Válido para certificado", "Valor existencia", "Vehículo importado",
	"Versión", "Extras", "BuNo", "Código INT", "Código fabricante",
	"Equipamiento de serie", "Estado", "Carrocería", "Días stock", "Matrícula",
	"Modelo",
}

var knownColumn = func() map[string]bool {
	m := make(map[string]bool, len(KnownColumns))
	for _, c := range KnownColumns {
		m[c] = true
	}
	return m
}()
