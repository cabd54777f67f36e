// Package xmlcatalog computes the product catalog metrics summary.
package xmlcatalog

import (
	"errors"
	"sort"

	parsexml "dataengine/internal/parsers/xmlcatalog"
)

// ErrEmpty is returned when the catalog has zero products.
var ErrEmpty = errors.New("metrics: no products")

// CategoryStats summarizes one category's products.
type CategoryStats struct {
	ProductCount int     `json:"product_count"`
	TotalStock   int     `json:"total_stock"`
	TotalValue   float64 `json:"total_value"`
}

// CategoryEntry pairs a category name with its stats, preserving the
// total-value-descending order products_by_category is ranked by.
type CategoryEntry struct {
	Category string `json:"category"`
	CategoryStats
}

// LowStockItem is a product whose stock has fallen to a low-but-nonzero
// level.
type LowStockItem struct {
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	Category string `json:"category"`
}

// SupplierStats summarizes one supplier's footprint in the catalog.
type SupplierStats struct {
	Supplier     string `json:"supplier"`
	ProductCount int    `json:"product_count"`
	TotalStock   int    `json:"total_stock"`
}

// PriceRange is the cheapest and most expensive price observed.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Compute returns the metrics map for a parsed catalog.
func Compute(cat parsexml.Catalog) (map[string]any, error) {
	if len(cat.Products) == 0 {
		return nil, ErrEmpty
	}

	totalStock := 0
	totalValue := 0.0
	totalPrice := 0.0
	categoryOrder := []string{}
	categoryStats := map[string]*CategoryStats{}
	supplierOrder := []string{}
	supplierStats := map[string]*SupplierStats{}
	var lowStock []LowStockItem

	priceRange := PriceRange{Min: cat.Products[0].Price, Max: cat.Products[0].Price}
	mostExpensive := cat.Products[0]

	for _, p := range cat.Products {
		totalStock += p.Stock
		totalPrice += p.Price
		value := p.Price * float64(p.Stock)
		totalValue += value

		if _, ok := categoryStats[p.Category]; !ok {
			categoryOrder = append(categoryOrder, p.Category)
			categoryStats[p.Category] = &CategoryStats{}
		}
		cs := categoryStats[p.Category]
		cs.ProductCount++
		cs.TotalStock += p.Stock
		cs.TotalValue += value

		if _, ok := supplierStats[p.Supplier]; !ok {
			supplierOrder = append(supplierOrder, p.Supplier)
			supplierStats[p.Supplier] = &SupplierStats{Supplier: p.Supplier}
		}
		ss := supplierStats[p.Supplier]
		ss.ProductCount++
		ss.TotalStock += p.Stock

		if p.Stock > 0 && p.Stock <= 10 {
			lowStock = append(lowStock, LowStockItem{Name: p.Name, Stock: p.Stock, Category: p.Category})
		}

		if p.Price < priceRange.Min {
			priceRange.Min = p.Price
		}
		if p.Price > priceRange.Max {
			priceRange.Max = p.Price
			mostExpensive = p
		}
	}

	productsByCategory := make([]CategoryEntry, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		cs := categoryStats[name]
		productsByCategory = append(productsByCategory, CategoryEntry{
			Category: name,
			CategoryStats: CategoryStats{
				ProductCount: cs.ProductCount,
				TotalStock:   cs.TotalStock,
				TotalValue:   round2(cs.TotalValue),
			},
		})
	}
	sort.SliceStable(productsByCategory, func(i, j int) bool {
		return productsByCategory[i].TotalValue > productsByCategory[j].TotalValue
	})

	sort.SliceStable(lowStock, func(i, j int) bool { return lowStock[i].Stock < lowStock[j].Stock })

	topSuppliers := make([]SupplierStats, 0, len(supplierOrder))
	for _, name := range supplierOrder {
		topSuppliers = append(topSuppliers, *supplierStats[name])
	}
	sort.SliceStable(topSuppliers, func(i, j int) bool { return topSuppliers[i].TotalStock > topSuppliers[j].TotalStock })
	if len(topSuppliers) > 5 {
		topSuppliers = topSuppliers[:5]
	}

	return map[string]any{
		"total_products":         len(cat.Products),
		"total_stock_units":      totalStock,
		"total_inventory_value":  round2(totalValue),
		"average_price":          round2(totalPrice / float64(len(cat.Products))),
		"categories_count":       len(categoryOrder),
		"products_by_category":   productsByCategory,
		"low_stock_items":        lowStock,
		"top_suppliers":          topSuppliers,
		"price_range":            priceRange,
		"most_expensive_product": mostExpensive,
	}, nil
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
