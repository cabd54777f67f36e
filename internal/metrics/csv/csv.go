// Package csv computes the sales metrics summary from validated CSV
// records.
package csv

import (
	"errors"

	"github.com/shopspring/decimal"

	parsecsv "dataengine/internal/parsers/csv"
)

// ErrEmpty is returned when there are no sales to summarize.
var ErrEmpty = errors.New("metrics: no sales records")

// BestSelling names the product with the highest total quantity sold.
type BestSelling struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TopCategory names the category with the highest total revenue.
type TopCategory struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// DateRange is the inclusive span of sale dates, as ISO dates.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Compute returns the metrics map for a slice of validated sales.
func Compute(sales []parsecsv.Sale) (map[string]any, error) {
	if len(sales) == 0 {
		return nil, ErrEmpty
	}

	var totalSales decimal.Decimal
	var totalQuantity int
	var totalDiscount decimal.Decimal

	qtyByProduct := map[string]int{}
	revByCategory := map[string]decimal.Decimal{}
	productOrder := []string{}
	categoryOrder := []string{}
	seenProduct := map[string]bool{}
	seenCategory := map[string]bool{}

	minDate := sales[0].Date
	maxDate := sales[0].Date

	for _, s := range sales {
		totalSales = totalSales.Add(s.Total)
		totalQuantity += s.Quantity
		totalDiscount = totalDiscount.Add(s.Discount)

		if !seenProduct[s.Product] {
			seenProduct[s.Product] = true
			productOrder = append(productOrder, s.Product)
		}
		qtyByProduct[s.Product] += s.Quantity

		if !seenCategory[s.Category] {
			seenCategory[s.Category] = true
			categoryOrder = append(categoryOrder, s.Category)
		}
		revByCategory[s.Category] = revByCategory[s.Category].Add(s.Total)

		if s.Date.Before(minDate) {
			minDate = s.Date
		}
		if s.Date.After(maxDate) {
			maxDate = s.Date
		}
	}

	best := BestSelling{Name: productOrder[0], Quantity: qtyByProduct[productOrder[0]]}
	for _, p := range productOrder[1:] {
		if qtyByProduct[p] > best.Quantity {
			best = BestSelling{Name: p, Quantity: qtyByProduct[p]}
		}
	}

	topCat := TopCategory{Name: categoryOrder[0], Revenue: round2(revByCategory[categoryOrder[0]])}
	topCatRevenue := revByCategory[categoryOrder[0]]
	for _, c := range categoryOrder[1:] {
		if revByCategory[c].GreaterThan(topCatRevenue) {
			topCatRevenue = revByCategory[c]
			topCat = TopCategory{Name: c, Revenue: round2(topCatRevenue)}
		}
	}

	avgDiscount := totalDiscount.Div(decimal.NewFromInt(int64(len(sales))))

	return map[string]any{
		"total_sales":          round2(totalSales),
		"unique_products":      len(productOrder),
		"total_quantity":       totalQuantity,
		"total_records":        len(sales),
		"best_selling_product": best,
		"top_category":         topCat,
		"average_discount":     round2(avgDiscount),
		"date_range": DateRange{
			From: minDate.Format("2006-01-02"),
			To:   maxDate.Format("2006-01-02"),
		},
	}, nil
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
