package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementKindIn         = "in"         // entrada
	MovementKindOut        = "out"        // salida
	MovementKindAdjustment = "adjustment" // ajuste a un valor absoluto
)

// ValidMovementKind valida contra el conjunto de tipos permitidos.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindIn, MovementKindOut, MovementKindAdjustment:
		return true
	}
	return false
}

// StockMovement es un asiento inmutable del ledger de stock: un cambio de
// cantidad aplicado a un producto, con foto del stock antes y después.
// Invariante: StockAfter = StockBefore + Quantity. Nunca se actualiza ni
// borra una vez creado.
type StockMovement struct {
	ID          string
	ProductID   string
	Kind        string // in, out, adjustment
	Quantity    int64  // delta con signo: positivo entra, negativo sale
	StockBefore int64
	StockAfter  int64
	Note        string
	OccurredAt  time.Time
}
