package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto identificado por su código de barras.
// Stock es la única cantidad mutable y solo se modifica vía el ledger de
// movimientos; el resto de campos se editan por CRUD normal.
type Product struct {
	ID          string
	Barcode     string // código de barras, único
	Name        string
	CategoryID  *string // nil si no tiene categoría
	Stock       int64   // existencias actuales, nunca negativo
	MinStock    int64   // umbral de stock bajo
	UnitPrice   decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time // se refresca en cada mutación de stock
}
