package pos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func snapshot(id string, price, cost, stock int64) ProductSnapshot {
	return ProductSnapshot{ID: id, Name: "Product " + id, Price: price, Cost: cost, Stock: stock}
}

func TestCartAddGrowsExistingLine(t *testing.T) {
	var cart Cart
	p := snapshot("p1", 5000, 2000, 3)

	cart.Add(p)
	cart.Add(p)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, int64(2), lines[0].Quantity)
	require.Equal(t, int64(10000), cart.Subtotal())
}

func TestCartAddStopsAtStock(t *testing.T) {
	var cart Cart
	p := snapshot("p1", 5000, 2000, 2)

	cart.Add(p)
	cart.Add(p)
	cart.Add(p)

	require.Equal(t, int64(2), cart.TotalItems())
}

func TestCartAddIgnoresOutOfStock(t *testing.T) {
	var cart Cart
	cart.Add(snapshot("p1", 5000, 2000, 0))
	require.True(t, cart.IsEmpty())
}

func TestCartChangeQuantityBounds(t *testing.T) {
	var cart Cart
	p := snapshot("p1", 5000, 2000, 3)
	cart.Add(p)

	// Decrement at quantity 1 is a no-op; only Remove deletes a line.
	cart.ChangeQuantity("p1", -1)
	require.Equal(t, int64(1), cart.TotalItems())

	cart.ChangeQuantity("p1", 2)
	require.Equal(t, int64(3), cart.TotalItems())

	// Above-stock increments are rejected, not clamped.
	cart.ChangeQuantity("p1", 1)
	require.Equal(t, int64(3), cart.TotalItems())

	// Unknown ids are ignored.
	cart.ChangeQuantity("missing", 1)
	require.Equal(t, int64(3), cart.TotalItems())
}

func TestCartRemove(t *testing.T) {
	var cart Cart
	cart.Add(snapshot("p1", 5000, 2000, 5))
	cart.Add(snapshot("p2", 3000, 1000, 5))

	cart.Remove("p1")

	lines := cart.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, "p2", lines[0].Product.ID)
}

func TestCartLinesReturnsCopy(t *testing.T) {
	var cart Cart
	cart.Add(snapshot("p1", 5000, 2000, 5))

	lines := cart.Lines()
	lines[0].Quantity = 99

	require.Equal(t, int64(1), cart.TotalItems())
}
