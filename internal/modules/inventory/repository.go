package inventory

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no item exists for the (name, location) key.
	ErrNotFound = errors.New("item not found")

	// ErrDuplicate means an item with that name already exists at the
	// location.
	ErrDuplicate = errors.New("item already exists in this location")

	// ErrInsufficientStock means a debit would need more stock than the
	// record holds. Transfers and issuance reject instead of clamping.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// AdjustParams describes a central stock-take: a signed delta applied
// to one record, with the acting user and a free-text description that
// ends up in the movement log.
type AdjustParams struct {
	ActionBy    string
	NameEN      string
	Location    string
	Delta       int
	Description string
}

// TransferParams describes a stock move between the two warehouses.
type TransferParams struct {
	ActionBy string
	NameEN   string
	From     string
	To       string
	Qty      int
}

// Repository defines central inventory data storage. AdjustQuantity
// and Transfer run their read-modify-write cycles inside a single
// database transaction together with the movement-log append, so two
// concurrent mutations of the same record serialize on the row lock
// and a log row can never exist without its stock change.
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, nameEN, location string) (*Item, error)
	ListByLocation(ctx context.Context, location string) ([]*Item, error)

	// AdjustQuantity applies the signed delta, clamping the result at
	// zero, and appends a log entry. Returns the updated item.
	AdjustQuantity(ctx context.Context, p AdjustParams) (*Item, error)

	// Transfer debits From and credits To (creating the destination
	// record if absent), appending one log entry per side. Fails with
	// ErrInsufficientStock when From holds less than Qty.
	Transfer(ctx context.Context, p TransferParams) error
}
