package excel

import (
	"encoding/csv"
	"fmt"
	"io"

	"mosaic/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// DefaultExportSheet is the sheet name used for exported tables
const DefaultExportSheet = "Sheet1"

// WriteXLSX writes t as a single-sheet workbook: a header row, then one row
// per record. Missing cells are left empty.
func WriteXLSX(w io.Writer, t *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, 0, len(t.Columns()))
	for _, name := range t.ColumnNames() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(DefaultExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r := 0; r < t.Len(); r++ {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		row := t.Row(r)
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v.Interface()
		}
		if err := f.SetSheetRow(DefaultExportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteCSV writes t with a header row
func WriteCSV(w io.Writer, t *dataset.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return err
	}
	for r := 0; r < t.Len(); r++ {
		row := t.Row(r)
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = v.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
