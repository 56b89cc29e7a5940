package state

// Inventory holds item quantities and currency. Quantities are always
// positive for present keys; a quantity reaching zero removes the key.
// Currency never goes negative.
type Inventory struct {
	Items    map[string]int `json:"items"`
	Currency int64          `json:"currency"`
}

// NewInventory returns an empty inventory.
func NewInventory() Inventory {
	return Inventory{Items: make(map[string]int)}
}

// ItemCount returns the held quantity of an item, zero when absent.
func (inv *Inventory) ItemCount(id string) int {
	return inv.Items[id]
}

// HasItem reports whether at least amount of the item is held.
func (inv *Inventory) HasItem(id string, amount int) bool {
	return inv.Items[id] >= amount
}

// AddItem increases an item's quantity, creating the key if absent.
// Non-positive amounts are ignored.
func (inv *Inventory) AddItem(id string, amount int) {
	if amount <= 0 {
		return
	}
	if inv.Items == nil {
		inv.Items = make(map[string]int)
	}
	inv.Items[id] += amount
}

// RemoveItem decreases an item's quantity, deleting the key when it drops
// to zero or below. No zero-value entries persist.
func (inv *Inventory) RemoveItem(id string, amount int) {
	if amount <= 0 {
		return
	}
	if _, ok := inv.Items[id]; !ok {
		return
	}
	inv.Items[id] -= amount
	if inv.Items[id] <= 0 {
		delete(inv.Items, id)
	}
}

// AddCurrency credits currency.
func (inv *Inventory) AddCurrency(amount int64) {
	inv.Currency += amount
}

// TakeCurrency debits currency, clamping at zero.
func (inv *Inventory) TakeCurrency(amount int64) {
	inv.Currency -= amount
	if inv.Currency < 0 {
		inv.Currency = 0
	}
}
