package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Row-per-record tables from a RecordView
// ============================================================================
// Column discovery uses view.DimensionKeys() then view.MeasureKeys().
// ============================================================================

// BuildRecordTable produces one row per record of view, in view order.
func BuildRecordTable(view RecordView, title string) *TableData {
	dimKeys := view.DimensionKeys()
	mesKeys := view.MeasureKeys()

	columns := make([]Column, 0, len(dimKeys)+len(mesKeys))
	for _, key := range dimKeys {
		colType := "text"
		if key == FieldDate {
			colType = "date"
		}
		columns = append(columns, Column{
			Key:   key,
			Label: key,
			Type:  colType,
			Align: "left",
		})
	}
	for _, key := range mesKeys {
		columns = append(columns, Column{
			Key:   key,
			Label: key,
			Type:  "number",
			Align: "right",
		})
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(columns))
		for _, key := range dimKeys {
			row = append(row, view.Dimension(i, key))
		}
		for _, key := range mesKeys {
			row = append(row, FormatNumber(view.Measure(i, key)))
		}
		rows = append(rows, row)
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  fmt.Sprintf("Total (%s records)", FormatInt(view.Len())),
			Values: map[string]string{},
		},
	}
}
