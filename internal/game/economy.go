/*
Package game
File: economy.go
Description:
    Handles the hero's side of the economy: the credit wallet and the item
    inventory. Research systems credit the wallet when points are sold and use
    inventory marker items to detect a fresh game.
*/

package game

// Credit adds credits to the hero's wallet. Negative amounts are ignored.
func (h *Hero) Credit(amount float64) {
	if amount <= 0 {
		return
	}
	h.Credits += amount
}

// Count returns how many of item the hero carries.
func (h *Hero) Count(item string) int {
	return h.Items[item]
}

// AddItem puts one item into the hero's inventory.
func (h *Hero) AddItem(item string) {
	if h.Items == nil {
		h.Items = make(map[string]int)
	}
	h.Items[item]++
}

// RemoveItem takes one item out of the inventory. Returns false if none was present.
func (h *Hero) RemoveItem(item string) bool {
	if h.Items[item] <= 0 {
		return false
	}
	h.Items[item]--
	if h.Items[item] == 0 {
		delete(h.Items, item)
	}
	return true
}
