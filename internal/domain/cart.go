package domain

import "time"

// CartLine is one entry in a cart. UnitPriceCents and Image are
// snapshotted from the product when the line is added.
type CartLine struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	Color          *string `json:"color,omitempty"`
	Image          string  `json:"image,omitempty"`
	Quantity       int     `json:"quantity"`
}

// LineTotalCents returns the line's price times quantity.
func (l CartLine) LineTotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Cart is an ordered list of lines for one session.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for a session.
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []CartLine{}}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// FindLineIndex returns the index of the line matching product and
// color, or -1. Two nil colors match; a nil color never matches a
// non-nil one.
func (c *Cart) FindLineIndex(productID string, color *string) int {
	for i, l := range c.Lines {
		if l.ProductID != productID {
			continue
		}
		if l.Color == nil && color == nil {
			return i
		}
		if l.Color != nil && color != nil && *l.Color == *color {
			return i
		}
	}
	return -1
}

// AddLine merges into an existing line with the same product and color,
// or appends a new line at the end. Order of existing lines is preserved.
func (c *Cart) AddLine(line CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if i := c.FindLineIndex(line.ProductID, line.Color); i >= 0 {
		c.Lines[i].Quantity += line.Quantity
		return
	}
	c.Lines = append(c.Lines, line)
}

// SetQuantity updates the quantity of the line at index. A quantity
// below 1 removes the line. Out-of-range indices are ignored.
func (c *Cart) SetQuantity(index, quantity int) {
	if index < 0 || index >= len(c.Lines) {
		return
	}
	if quantity < 1 {
		c.RemoveLine(index)
		return
	}
	c.Lines[index].Quantity = quantity
}

// RemoveLine removes the line at index. Out-of-range indices are
// ignored so a stale index from a concurrent view cannot corrupt state.
func (c *Cart) RemoveLine(index int) {
	if index < 0 || index >= len(c.Lines) {
		return
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
}

// TotalCents sums price times quantity over all lines.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.LineTotalCents()
	}
	return total
}

// ItemCount sums quantities over all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}
