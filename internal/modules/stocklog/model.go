package stocklog

import "time"

// Entry is one row of the append-only stock movement log. A row is
// written for every central-inventory mutation: stock-takes, transfers,
// and request issuance. ChangeAmount is signed; NewQty is the quantity
// left on the record after the change.
type Entry struct {
	ID           int64     `json:"id"`
	ActionBy     string    `json:"action_by"`
	ActionType   string    `json:"action_type"`
	ItemName     string    `json:"item_name"`
	Location     string    `json:"location"`
	ChangeAmount int       `json:"change_amount"`
	NewQty       int       `json:"new_qty"`
	Unit         string    `json:"unit"`
	LoggedAt     time.Time `json:"logged_at"`
}
