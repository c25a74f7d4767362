package domain

// CartItem is one (product, quantity) pair. The product fields are copied at
// the moment of adding; later catalog edits do not flow back into the line.
type CartItem struct {
	Product  Product
	Quantity int
}

// Subtotal returns unit price times quantity for this line.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// CartTotals is the derived view over the whole cart.
type CartTotals struct {
	ItemCount  int
	PriceTotal float64
}
