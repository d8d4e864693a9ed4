// Package export serializes list views and the admin overview into
// downloadable files. Columns and formatting match what the list view shows.
package export

import (
	"strconv"

	"marketdash/internal/domain"
	"marketdash/internal/utils"
)

// Column is one exported field with its on-screen header.
type Column struct {
	Header string
	Value  func(rec domain.Record, symbol string) string
}

func text(f func(domain.Record) string) func(domain.Record, string) string {
	return func(r domain.Record, _ string) string { return f(r) }
}

var (
	colID       = Column{"ID", text(func(r domain.Record) string { return r.ID })}
	colStatus   = Column{"Status", text(func(r domain.Record) string { return r.Status })}
	colRef      = Column{"Reference", text(func(r domain.Record) string { return r.Reference })}
	colEmail    = Column{"Email", text(func(r domain.Record) string { return r.Email })}
	colDate     = Column{"Date", text(displayDate)}
	colAmount   = Column{"Amount", func(r domain.Record, symbol string) string { return utils.FormatMoney(symbol, r.Amount) }}
	colPrice    = Column{"Price", colAmount.Value}
	colCategory = Column{"Category", text(func(r domain.Record) string { return r.Category })}
)

var columnsByKind = map[domain.Kind][]Column{
	domain.KindProduct: {
		colID,
		{"Title", text(func(r domain.Record) string { return r.Title })},
		colCategory,
		colPrice,
		colStatus,
		colDate,
	},
	domain.KindOrder: {
		colID,
		{"Product", text(func(r domain.Record) string { return r.Title })},
		{"Buyer", text(func(r domain.Record) string { return r.Email })},
		colRef,
		colAmount,
		{"Commission", func(r domain.Record, symbol string) string { return utils.FormatMoney(symbol, r.Fee) }},
		colStatus,
		{"Delivery", text(func(r domain.Record) string { return r.Delivery })},
		colDate,
	},
	domain.KindPayment: {
		colID,
		colRef,
		colEmail,
		{"Provider", text(func(r domain.Record) string { return r.Category })},
		colAmount,
		colStatus,
		{"Credited", text(func(r domain.Record) string { return strconv.FormatBool(r.Credited) })},
		colDate,
	},
	domain.KindWithdrawal: {
		colID,
		{"User", text(func(r domain.Record) string { return r.UserID })},
		{"Bank", text(func(r domain.Record) string { return r.Title })},
		{"Account", text(func(r domain.Record) string { return r.Description })},
		colRef,
		colAmount,
		colStatus,
		colDate,
	},
	domain.KindUser: {
		colID,
		{"Name", text(func(r domain.Record) string { return r.Name })},
		colEmail,
		{"Phone", text(func(r domain.Record) string { return r.Phone })},
		{"Role", text(func(r domain.Record) string { return r.Role })},
		colStatus,
		{"Joined", text(displayDate)},
	},
}

// Columns returns the export columns for kind, or nil when the kind has no list view.
func Columns(kind domain.Kind) []Column {
	return columnsByKind[kind]
}

// displayDate prefers the parsed day and falls back to the raw upstream text.
func displayDate(r domain.Record) string {
	if r.Date != nil {
		return utils.FormatDate(*r.Date)
	}
	return r.DateRaw
}

// Rows renders records as header plus string cells.
func Rows(kind domain.Kind, records []domain.Record, symbol string) [][]string {
	cols := Columns(kind)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}
	out := make([][]string, 0, len(records)+1)
	out = append(out, header)
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = c.Value(rec, symbol)
		}
		out = append(out, row)
	}
	return out
}
