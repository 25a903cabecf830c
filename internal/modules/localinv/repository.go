package localinv

import "context"

// Repository defines branch inventory data storage. Both mutations are
// upserts on the (region, item name) key.
type Repository interface {
	// AddQuantity credits delta onto the record, inserting it when
	// absent. Used by request issuance.
	AddQuantity(ctx context.Context, region, itemName string, delta int, updatedBy string) error

	// SetQuantity replaces the record's quantity with qty, inserting
	// it when absent. Used by the supervisor's own stock-take.
	SetQuantity(ctx context.Context, region, itemName string, qty int, updatedBy string) error

	GetRecord(ctx context.Context, region, itemName string) (*Record, error)
	ListByRegion(ctx context.Context, region string) ([]*Record, error)
	ListAll(ctx context.Context) ([]*Record, error)
}
