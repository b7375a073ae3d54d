package entity

// Category familia de un artículo del ledger: físico (contable) o numérico (servicio, recarga).
type Category string

const (
	CategoryPhysical Category = "physique"
	CategoryDigital  Category = "numérique"
)

// Valid indica si la categoría es conocida.
func (c Category) Valid() bool {
	return c == CategoryPhysical || c == CategoryDigital
}
