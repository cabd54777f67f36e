// Package csv parses the sales CSV format: a fixed Spanish-language header
// followed by data rows, each validated in full before any total is
// computed. A single invalid row fails the entire file — this format has no
// partial-success mode, unlike the log format.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dataengine/internal/types"
)

// wantHeader is compared case-insensitively, field by field.
var wantHeader = []string{"fecha", "producto", "categoria", "precio_unitario", "cantidad", "descuento"}

// Sale is one validated sales record.
type Sale struct {
	Date       time.Time
	Product    string
	Category   string
	UnitPrice  decimal.Decimal
	Quantity   int
	Discount   decimal.Decimal
	Total      decimal.Decimal
}

// Outcome is the parser's closed-sum return value.
type Outcome struct {
	Kind  types.Status // StatusOK or StatusError; csv never returns Partial
	Sales []Sale
	Err   string
}

// Parse reads and validates the file at path in full.
func Parse(path string) Outcome {
	f, err := os.Open(path)
	if err != nil {
		return Outcome{Kind: types.StatusError, Err: fmt.Sprintf("failed to read file: %v", err)}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return Outcome{Kind: types.StatusError, Err: "file is empty or header is missing"}
	}
	if !headerMatches(header) {
		return Outcome{Kind: types.StatusError, Err: fmt.Sprintf("invalid header: expected %s", strings.Join(wantHeader, ","))}
	}

	var sales []Sale
	var failures []string
	lineNo := 1 // header is line 1; data rows start at line 2

	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		lineNo++

		sale, reason := validateRow(record)
		if reason != "" {
			failures = append(failures, fmt.Sprintf("line %d: %s", lineNo, reason))
			continue
		}
		sales = append(sales, sale)
	}

	if len(sales) == 0 && len(failures) == 0 {
		return Outcome{Kind: types.StatusError, Err: "file contains no data rows"}
	}

	if len(failures) > 0 {
		shown := failures
		if len(shown) > 3 {
			shown = shown[:3]
		}
		return Outcome{Kind: types.StatusError, Err: fmt.Sprintf("csv validation failed: %s", strings.Join(shown, "; "))}
	}

	return Outcome{Kind: types.StatusOK, Sales: sales}
}

func headerMatches(got []string) bool {
	if len(got) != len(wantHeader) {
		return false
	}
	for i, w := range wantHeader {
		if strings.ToLower(strings.TrimSpace(got[i])) != w {
			return false
		}
	}
	return true
}

func validateRow(record []string) (Sale, string) {
	if len(record) != 6 {
		return Sale{}, fmt.Sprintf("expected 6 fields, got %d", len(record))
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		return Sale{}, fmt.Sprintf("invalid date %q", record[0])
	}

	product := strings.TrimSpace(record[1])
	category := strings.TrimSpace(record[2])

	unitPrice, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil || unitPrice.Sign() <= 0 {
		return Sale{}, fmt.Sprintf("invalid precio_unitario %q", record[3])
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil || quantity <= 0 {
		return Sale{}, fmt.Sprintf("invalid cantidad %q", record[4])
	}

	discount, err := decimal.NewFromString(strings.TrimSpace(record[5]))
	if err != nil || discount.LessThan(decimal.Zero) || discount.GreaterThan(decimal.NewFromInt(100)) {
		return Sale{}, fmt.Sprintf("invalid descuento %q", record[5])
	}

	factor := decimal.NewFromInt(1).Sub(discount.Div(decimal.NewFromInt(100)))
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(factor)

	return Sale{
		Date:      date,
		Product:   product,
		Category:  category,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Discount:  discount,
		Total:     total,
	}, ""
}
