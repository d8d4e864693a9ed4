package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"marketdash/internal/domain"
	"marketdash/internal/utils"

	"github.com/xuri/excelize/v2"
)

// Format is a supported export file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv, json or xlsx (case-insensitive). Blank means csv.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(utils.NormalizeStatus(raw)); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", domain.ValidationError{Field: "format", Msg: "must be one of csv json xlsx"}
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename builds the download name for a kind.
func (f Format) Filename(kind domain.Kind, stamp string) string {
	return fmt.Sprintf("%ss_%s.%s", kind, stamp, f)
}

// Write serializes records of kind to w in format f.
func Write(w io.Writer, f Format, kind domain.Kind, records []domain.Record, symbol string) error {
	if Columns(kind) == nil {
		return domain.ValidationError{Field: "kind", Msg: fmt.Sprintf("%s has no export", kind)}
	}
	rows := Rows(kind, records, symbol)
	switch f {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatXLSX:
		return writeXLSX(w, string(kind)+"s", rows)
	default:
		return writeCSV(w, rows)
	}
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// writeJSON emits an array of objects whose keys follow the column order.
func writeJSON(w io.Writer, rows [][]string) error {
	bw := bufio.NewWriter(w)
	header := rows[0]
	bw.WriteString("[")
	for i, row := range rows[1:] {
		if i > 0 {
			bw.WriteString(",")
		}
		bw.WriteString("{")
		for j, cell := range row {
			if j > 0 {
				bw.WriteString(",")
			}
			key, _ := json.Marshal(jsonKey(header[j]))
			val, _ := json.Marshal(cell)
			bw.Write(key)
			bw.WriteString(":")
			bw.Write(val)
		}
		bw.WriteString("}")
	}
	bw.WriteString("]")
	return bw.Flush()
}

func jsonKey(header string) string {
	return strings.ReplaceAll(strings.ToLower(header), " ", "_")
}

func writeXLSX(w io.Writer, sheet string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err == nil {
			last, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
			_ = f.SetCellStyle(sheet, "A1", last, style)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// Bytes is Write into a buffer.
func Bytes(f Format, kind domain.Kind, records []domain.Record, symbol string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, kind, records, symbol); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
