package services

import (
	"strconv"
	"strings"
	"time"

	"order-functions-api/internal/models"
)

// CSVHeader is the first line of every order export
const CSVHeader = "Order ID,Customer Name,Product,Quantity,Unit Price,Subtotal,Order Date,Status"

// DateFormatter renders the order date column
type DateFormatter interface {
	FormatDate(t time.Time) string
}

// DateFormatterFunc adapts a function to DateFormatter
type DateFormatterFunc func(t time.Time) string

func (f DateFormatterFunc) FormatDate(t time.Time) string {
	return f(t)
}

// RenderOrderCSV builds the export document: a header, one row per line
// item, a blank line and the TOTAL row. Text fields are always quoted and
// numbers never are.
func RenderOrderCSV(order *models.Order, customerName string, dates DateFormatter) string {
	if dates == nil {
		dates = DefaultDateFormatter()
	}

	orderDate := dates.FormatDate(order.CreatedAt)

	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')

	for i, item := range order.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeRow(&b,
			quote(order.ID),
			quote(customerName),
			quote(item.ProductName),
			strconv.FormatInt(item.Quantity, 10),
			item.PriceAtTime.String(),
			item.Subtotal().String(),
			quote(orderDate),
			quote(order.Status),
		)
	}

	b.WriteString("\n\n")
	writeRow(&b, quote("TOTAL"), quote(""), quote(""), quote(""), quote(""), quote(order.Total.String()), quote(""), quote(""))

	return b.String()
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
