package export

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"marketdash/internal/aggregate"
	"marketdash/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// OverviewPDF renders the admin KPI overview as a one-page report.
func OverviewPDF(o aggregate.Overview, symbol string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Marketplace Overview", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MARKETPLACE OVERVIEW")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Generated : "+utils.FormatDateTime(o.GeneratedAt)+" UTC")
	pdf.Ln(10)

	section(pdf, "Money")
	for _, kpi := range o.Money(symbol) {
		line(pdf, kpi.Label, kpi.Value)
	}
	pdf.Ln(4)

	section(pdf, "Listings & requests")
	line(pdf, "Active listings", strconv.Itoa(o.ActiveListings))
	line(pdf, "Pending listings", strconv.Itoa(o.PendingListings))
	line(pdf, "Pending deposit requests", strconv.Itoa(o.PendingDepositRequests))
	pdf.Ln(4)

	section(pdf, "Orders by status")
	for _, k := range sortedKeys(o.OrdersByStatus) {
		line(pdf, k, strconv.Itoa(o.OrdersByStatus[k]))
	}
	pdf.Ln(4)

	section(pdf, "Users by role")
	for _, k := range sortedKeys(o.UsersByRole) {
		line(pdf, k, strconv.Itoa(o.UsersByRole[k]))
	}

	if len(o.FailedSources) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Note: failed to load "+strings.Join(o.FailedSources, ", ")+"; their figures are shown as zero.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), reportFilename(o, "pdf"), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.Cell(80, 6, label)
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}

// OverviewXLSX writes the overview as a two-column KPI sheet.
func OverviewXLSX(o aggregate.Overview, symbol string) ([]byte, string, error) {
	rows := [][]string{{"Metric", "Value"}}
	for _, kpi := range o.Money(symbol) {
		rows = append(rows, []string{kpi.Label, kpi.Value})
	}
	rows = append(rows,
		[]string{"Active listings", strconv.Itoa(o.ActiveListings)},
		[]string{"Pending listings", strconv.Itoa(o.PendingListings)},
		[]string{"Pending deposit requests", strconv.Itoa(o.PendingDepositRequests)},
	)
	for _, k := range sortedKeys(o.OrdersByStatus) {
		rows = append(rows, []string{"Orders " + k, strconv.Itoa(o.OrdersByStatus[k])})
	}
	for _, k := range sortedKeys(o.UsersByRole) {
		rows = append(rows, []string{"Users " + k, strconv.Itoa(o.UsersByRole[k])})
	}
	if len(o.FailedSources) > 0 {
		rows = append(rows, []string{"Failed sources", strings.Join(o.FailedSources, ", ")})
	}

	var buf bytes.Buffer
	if err := writeXLSX(&buf, "overview", rows); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), reportFilename(o, "xlsx"), nil
}

func reportFilename(o aggregate.Overview, ext string) string {
	return fmt.Sprintf("OVERVIEW_%s.%s", o.GeneratedAt.UTC().Format("20060102_150405"), ext)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
