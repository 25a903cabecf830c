package stocklog

import "context"

// Repository defines read access to the movement log. Writes happen
// inside the inventory and request transactions via InsertTx so a log
// row can never outlive a rolled-back stock change.
type Repository interface {
	List(ctx context.Context, limit int) ([]*Entry, error)
}
