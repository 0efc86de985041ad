package models

import "time"

type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Valid reports whether the line item can be part of an order. Items that
// fail any of the checks are dropped before a checkout snapshot is taken.
func (i CartItem) Valid() bool {
	return i.ProductID != "" && i.Quantity >= 1 && i.Price > 0
}

func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type Cart struct {
	UserID      string     `json:"user_id"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Snapshot filters out invalid line items and recomputes the total from the
// surviving ones. The cart service's own total is not trusted because invalid
// items may have contributed to it.
func Snapshot(items []CartItem) ([]CartItem, float64) {
	valid := make([]CartItem, 0, len(items))
	var total float64
	for _, item := range items {
		if !item.Valid() {
			continue
		}
		valid = append(valid, item)
		total += item.Subtotal()
	}
	return valid, total
}
