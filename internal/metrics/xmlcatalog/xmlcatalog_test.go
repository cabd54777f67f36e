package xmlcatalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	parsexml "dataengine/internal/parsers/xmlcatalog"
)

func TestComputeEmptyReturnsError(t *testing.T) {
	_, err := Compute(parsexml.Catalog{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestComputeInventoryStats(t *testing.T) {
	cat := parsexml.Catalog{
		Products: []parsexml.Product{
			{ID: "P1", Name: "Widget", Category: "Gadgets", Price: 10, Stock: 5, Supplier: "Acme"},
			{ID: "P2", Name: "Gizmo", Category: "Gadgets", Price: 20, Stock: 0, Supplier: "Acme"},
			{ID: "P3", Name: "Sprocket", Category: "Tools", Price: 4, Stock: 100, Supplier: "Beta"},
		},
	}

	m, err := Compute(cat)
	require.NoError(t, err)

	assert.Equal(t, 3, m["total_products"])
	assert.Equal(t, 105, m["total_stock_units"])
	assert.InDelta(t, 450.0, m["total_inventory_value"], 0.001)
	assert.InDelta(t, 11.33, m["average_price"], 0.01)
	assert.Equal(t, 2, m["categories_count"])

	low := m["low_stock_items"].([]LowStockItem)
	require.Len(t, low, 1)
	assert.Equal(t, "Widget", low[0].Name)

	pr := m["price_range"].(PriceRange)
	assert.Equal(t, 4.0, pr.Min)
	assert.Equal(t, 20.0, pr.Max)

	most := m["most_expensive_product"].(parsexml.Product)
	assert.Equal(t, "Gizmo", most.Name)

	byCategory := m["products_by_category"].([]CategoryEntry)
	require.Len(t, byCategory, 2)
	assert.Equal(t, "Tools", byCategory[0].Category)
	assert.InDelta(t, 400.0, byCategory[0].TotalValue, 0.001)
	assert.Equal(t, "Gadgets", byCategory[1].Category)
	assert.InDelta(t, 50.0, byCategory[1].TotalValue, 0.001)
}
