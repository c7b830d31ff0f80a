package pos

// Cart is the in-memory aggregate for one checkout session. Lines keep
// insertion order. Mutations are bounded: a change that would push a
// quantity below 1 or above the product's snapshot stock is rejected as a
// no-op rather than clamped, matching the cashier screen behaviour where
// the minus button on a quantity-1 line does nothing and only the explicit
// remove control deletes a line.
type Cart struct {
	lines []CartLine
}

// Add puts one unit of the product into the cart. Out-of-stock products
// are ignored; an existing line grows by one unless that would exceed the
// snapshot stock.
func (c *Cart) Add(p ProductSnapshot) {
	if p.Stock <= 0 {
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			if c.lines[i].Quantity >= p.Stock {
				return
			}
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{Product: p, Quantity: 1})
}

// ChangeQuantity applies a delta to the line for productID. The result must
// stay within [1, stock]; anything else is a no-op. Unknown ids are ignored.
func (c *Cart) ChangeQuantity(productID string, delta int64) {
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		next := c.lines[i].Quantity + delta
		if next < 1 || next > c.lines[i].Product.Stock {
			return
		}
		c.lines[i].Quantity = next
		return
	}
}

// Remove deletes the line for productID unconditionally.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItems sums line quantities.
func (c *Cart) TotalItems() int64 {
	var n int64
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Subtotal sums price x quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, line := range c.lines {
		sum += line.Product.Price * line.Quantity
	}
	return sum
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear discards all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// clone returns an independent copy used to freeze items at commit time.
func (c *Cart) clone() Cart {
	return Cart{lines: c.Lines()}
}
