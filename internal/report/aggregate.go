// Package report aggregates committed sales into period summaries and
// product rankings. Everything in this file is pure: the same input always
// yields the same output and nothing is mutated.
package report

import (
	"fmt"
	"sort"
	"time"
)

// Period selects the bucketing granularity.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Valid reports whether the period is a supported granularity.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Sale is the read model of one committed transaction. A zero PostedAt marks
// a record whose stored timestamp was missing or unreadable; such records
// are skipped during bucketing rather than treated as errors.
type Sale struct {
	PostedAt time.Time  `json:"posted_at"`
	Total    int64      `json:"total"`
	Profit   int64      `json:"profit"`
	Items    []SaleItem `json:"items"`
}

// SaleItem is one line of a committed transaction with its price at sale.
type SaleItem struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Quantity    int64  `json:"quantity"`
	PriceAtSale int64  `json:"price_at_sale"`
}

// Row is one aggregated period bucket.
type Row struct {
	Label        string `json:"bucket_label"`
	Revenue      int64  `json:"revenue"`
	Profit       int64  `json:"profit"`
	Count        int64  `json:"count"`
	AverageValue int64  `json:"average_transaction_value"`
}

// Summary totals the whole report.
type Summary struct {
	Revenue      int64 `json:"revenue"`
	Count        int64 `json:"count"`
	AverageValue int64 `json:"average_transaction_value"`
}

// ProductRank is one entry of the top-products table.
type ProductRank struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Revenue   int64  `json:"revenue"`
}

// topProductLimit caps the product ranking table.
const topProductLimit = 5

// Aggregate buckets sales by the period granularity, preserving the order
// in which bucket labels are first encountered. Sales without a usable
// timestamp are dropped silently.
func Aggregate(sales []Sale, period Period) []Row {
	index := make(map[string]int)
	var rows []Row

	for _, sale := range sales {
		if sale.PostedAt.IsZero() {
			continue
		}
		label := bucketLabel(sale.PostedAt, period)
		i, ok := index[label]
		if !ok {
			i = len(rows)
			index[label] = i
			rows = append(rows, Row{Label: label})
		}
		rows[i].Revenue += sale.Total
		rows[i].Profit += sale.Profit
		rows[i].Count++
	}

	for i := range rows {
		rows[i].AverageValue = averageValue(rows[i].Revenue, rows[i].Count)
	}
	return rows
}

// Summarize folds aggregated rows into a single overview.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, row := range rows {
		s.Revenue += row.Revenue
		s.Count += row.Count
	}
	s.AverageValue = averageValue(s.Revenue, s.Count)
	return s
}

// TopProducts ranks products across all sales by quantity sold, descending,
// truncated to the top five. Ties keep first-encountered order.
func TopProducts(sales []Sale) []ProductRank {
	index := make(map[string]int)
	var ranks []ProductRank

	for _, sale := range sales {
		for _, item := range sale.Items {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(ranks)
				index[item.ProductID] = i
				ranks = append(ranks, ProductRank{ProductID: item.ProductID, Name: item.Name})
			}
			ranks[i].Quantity += item.Quantity
			ranks[i].Revenue += item.Quantity * item.PriceAtSale
		}
	}

	sort.SliceStable(ranks, func(a, b int) bool {
		return ranks[a].Quantity > ranks[b].Quantity
	})
	if len(ranks) > topProductLimit {
		ranks = ranks[:topProductLimit]
	}
	return ranks
}

func bucketLabel(t time.Time, period Period) string {
	switch period {
	case PeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("Week %d %d", week, year)
	case PeriodMonthly:
		return t.Format("Jan 2006")
	case PeriodYearly:
		return t.Format("2006")
	default:
		return t.Format("02 Jan 2006")
	}
}

// averageValue divides revenue by count with half-up rounding, 0 when empty.
func averageValue(revenue, count int64) int64 {
	if count == 0 {
		return 0
	}
	return (revenue + count/2) / count
}
