package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spektr-org/covidash/engine"
)

// ============================================================================
// OUTPUT — json, pretty, csv and text renderings of a query result
// ============================================================================

// ErrUnknownOutputFormat is returned for --format values other than json,
// pretty, csv and text.
var ErrUnknownOutputFormat = errors.New("unknown output format, expected json, pretty, csv or text")

func checkOutputFormat(format string) error {
	switch format {
	case "json", "pretty", "csv", "text":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownOutputFormat, format)
}

func writeResult(w io.Writer, result *engine.Result, format string) error {
	switch format {
	case "csv":
		return writeCSV(w, result)
	case "text":
		return writeText(w, result)
	default:
		return writeJSON(w, result, format)
	}
}

// ============================================================================
// CSV OUTPUT — Table or chart data ready for a spreadsheet
// ============================================================================

// writeCSV writes the selected-states table when there is one, otherwise the
// first chart with one column per series.
func writeCSV(w io.Writer, result *engine.Result) error {
	cw := csv.NewWriter(w)

	switch {
	case result == nil:
		_ = cw.Write([]string{"Result", "No data"})
	case result.Table != nil && len(result.Table.Rows) > 0:
		writeTableCSV(cw, result.Table)
	case len(result.Charts) > 0 && len(result.Charts[0].Series) > 0:
		writeChartCSV(cw, &result.Charts[0])
	default:
		_ = cw.Write([]string{"Result", "No data"})
	}

	cw.Flush()
	return cw.Error()
}

func writeTableCSV(cw *csv.Writer, table *engine.TableData) {
	headers := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		headers = append(headers, col.Label)
	}
	_ = cw.Write(headers)
	for _, row := range table.Rows {
		_ = cw.Write(row)
	}
}

// writeChartCSV pivots a chart: one row per x label, one column per series.
// Series cover different dates, so rows are keyed by label, not position.
func writeChartCSV(cw *csv.Writer, spec *engine.ChartSpec) {
	xLabel := spec.XAxis
	if xLabel == "" {
		xLabel = "Label"
	}

	headers := []string{xLabel}
	values := make([]map[string]float64, 0, len(spec.Series))
	labelSet := make(map[string]bool)
	for _, s := range spec.Series {
		headers = append(headers, s.Name)
		byLabel := make(map[string]float64, len(s.Data))
		for _, p := range s.Data {
			byLabel[p.Label] = p.Value
			labelSet[p.Label] = true
		}
		values = append(values, byLabel)
	}

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	_ = cw.Write(headers)
	for _, label := range labels {
		row := []string{label}
		for _, byLabel := range values {
			if v, ok := byLabel[label]; ok {
				row = append(row, engine.FormatNumber(v))
			} else {
				row = append(row, "")
			}
		}
		_ = cw.Write(row)
	}
}

// ============================================================================
// TEXT OUTPUT
// ============================================================================

func writeText(w io.Writer, result *engine.Result) error {
	if result == nil {
		_, err := fmt.Fprintln(w, "No result.")
		return err
	}

	lines := []string{}
	if result.Validation.Message != "" {
		lines = append(lines, result.Validation.Message)
	}
	lines = append(lines, result.Errors...)

	if result.Table != nil {
		lines = append(lines, fmt.Sprintf("%s: %s records", result.Table.Title, engine.FormatInt(len(result.Table.Rows))))
	}
	for i := range result.Charts {
		lines = append(lines, describeChart(&result.Charts[i]))
	}
	if result.Comparison != nil {
		lines = append(lines, describeChart(result.Comparison))
		if result.Comparison.Note != "" {
			lines = append(lines, result.Comparison.Note)
		}
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func describeChart(spec *engine.ChartSpec) string {
	if len(spec.Series) == 0 {
		return spec.Title + ": no data"
	}
	names := make([]string, 0, len(spec.Series))
	points := 0
	for _, s := range spec.Series {
		names = append(names, s.Name)
		points += len(s.Data)
	}
	return fmt.Sprintf("%s: %d series (%s), %s points",
		spec.Title, len(spec.Series), strings.Join(names, ", "), engine.FormatInt(points))
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v any, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}
