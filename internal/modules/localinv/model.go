package localinv

import "time"

// Record is one branch inventory row, keyed by (region, item name).
// The quantity carries two meanings depending on who wrote it last: an
// issuance credits it additively (delivered-to-date), while a
// supervisor stock-take overwrites it with the counted value.
type Record struct {
	Region      string    `json:"region"`
	ItemName    string    `json:"item_name"`
	Quantity    int       `json:"qty"`
	UpdatedBy   string    `json:"updated_by"`
	LastUpdated time.Time `json:"last_updated"`
}
