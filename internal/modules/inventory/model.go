package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Units of measure for central stock.
const (
	UnitPiece  = "Piece"
	UnitCarton = "Carton"
	UnitSet    = "Set"
)

// StatusAvailable is the status every item carries in the normal flow;
// items are never deleted, only drained to zero.
const StatusAvailable = "Available"

// Categories groups items in the catalog views.
var Categories = []string{"Electrical", "Chemical", "Hand Tools", "Consumables", "Safety", "Others"}

// Item is one central-warehouse stock record. (NameEN, Location) is
// the natural key: the same item name may exist at NTCC and SNC with
// independent quantities.
type Item struct {
	ID        uuid.UUID `json:"id"`
	NameEN    string    `json:"name_en"`
	NameAR    string    `json:"name_ar,omitempty"`
	Category  string    `json:"category"`
	Unit      string    `json:"unit"`
	Location  string    `json:"location"`
	Quantity  int       `json:"qty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidUnit reports whether unit is a known unit of measure.
func ValidUnit(unit string) bool {
	return unit == UnitPiece || unit == UnitCarton || unit == UnitSet
}

// ValidCategory reports whether cat is a known category.
func ValidCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}
