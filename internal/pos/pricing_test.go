package pos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotalsNoPromotion(t *testing.T) {
	totals := ComputeTotals(25000, nil)
	require.Equal(t, Totals{Subtotal: 25000, Discount: 0, Total: 25000}, totals)
}

func TestComputeTotalsPercent(t *testing.T) {
	promo := &Promotion{Type: PromotionPercent, Value: 1000} // 10%
	totals := ComputeTotals(100000, promo)
	require.Equal(t, Totals{Subtotal: 100000, Discount: 10000, Total: 90000}, totals)
}

func TestComputeTotalsPercentRoundsHalfUp(t *testing.T) {
	promo := &Promotion{Type: PromotionPercent, Value: 1000} // 10%
	// 10% of 15 is 1.5, which rounds up to 2.
	totals := ComputeTotals(15, promo)
	require.Equal(t, int64(2), totals.Discount)
	require.Equal(t, int64(13), totals.Total)
}

func TestComputeTotalsFixedFloorsAtZero(t *testing.T) {
	promo := &Promotion{Type: PromotionFixed, Value: 8000}
	totals := ComputeTotals(5000, promo)
	require.Equal(t, int64(8000), totals.Discount)
	require.Equal(t, int64(0), totals.Total)
}

func TestComputeTotalsFixed(t *testing.T) {
	promo := &Promotion{Type: PromotionFixed, Value: 5000}
	totals := ComputeTotals(20000, promo)
	require.Equal(t, Totals{Subtotal: 20000, Discount: 5000, Total: 15000}, totals)
}
