// Package xmlcatalog parses the hierarchical product catalog XML format.
package xmlcatalog

import (
	"encoding/xml"
	"fmt"
	"os"

	"dataengine/internal/types"
)

// Product is one catalog entry.
type Product struct {
	ID       string  `xml:"id,attr"`
	Name     string  `xml:"name"`
	Category string  `xml:"category"`
	Price    float64 `xml:"price"`
	Currency string  `xml:"currency,attr"`
	Stock    int     `xml:"stock"`
	Supplier string  `xml:"supplier"`
}

type xmlProduct struct {
	ID       string   `xml:"id,attr"`
	Name     string   `xml:"name"`
	Category string   `xml:"category"`
	Price    float64  `xml:"price"`
	Currency *string  `xml:"currency,attr"`
	Stock    int      `xml:"stock"`
	Supplier string   `xml:"supplier"`
}

type xmlMetadata struct {
	Generated string `xml:"generated"`
	Source    string `xml:"source"`
}

type xmlCatalog struct {
	Metadata xmlMetadata `xml:"metadata"`
	Products []xmlProduct `xml:"products>product"`
}

// Catalog is the parsed, validated document.
type Catalog struct {
	Generated string
	Source    string
	Products  []Product
}

// Outcome is the parser's closed-sum return value. xmlcatalog has no
// partial mode: malformed XML is an error, and an empty/absent products
// list is a legitimate ok result with zero totals.
type Outcome struct {
	Kind    types.Status
	Catalog Catalog
	Err     string
}

// Parse reads and decodes the file at path.
func Parse(path string) Outcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return Outcome{Kind: types.StatusError, Err: fmt.Sprintf("failed to read file: %v", err)}
	}

	var doc xmlCatalog
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Outcome{Kind: types.StatusError, Err: fmt.Sprintf("malformed xml: %v", err)}
	}

	products := make([]Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		currency := "USD"
		if p.Currency != nil && *p.Currency != "" {
			currency = *p.Currency
		}
		products = append(products, Product{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
			Currency: currency,
			Stock:    p.Stock,
			Supplier: p.Supplier,
		})
	}

	return Outcome{Kind: types.StatusOK, Catalog: Catalog{
		Generated: doc.Metadata.Generated,
		Source:    doc.Metadata.Source,
		Products:  products,
	}}
}
