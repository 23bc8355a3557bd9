package engine

import (
	"fmt"
)

// ============================================================================
// OVERVIEW — Dataset description shown above the filters
// ============================================================================

// SplitSummary describes one loaded table.
type SplitSummary struct {
	Name         string `json:"name"`
	Observations int    `json:"observations"`
	From         string `json:"from,omitempty"`
	To           string `json:"to,omitempty"`
}

// Overview is the dataset introduction: a short preview and its size.
type Overview struct {
	Observations int            `json:"observations"`
	Variables    int            `json:"variables"`
	Reply        string         `json:"reply"`
	Preview      *TableData     `json:"preview"`
	Splits       []SplitSummary `json:"splits,omitempty"`
}

// BuildOverview describes view with a preview of its first previewRows
// records. columns is the column count of the source file, keys included;
// zero or less counts the view's own keys instead.
func BuildOverview(view RecordView, previewRows, columns int) *Overview {
	variables := columns
	if variables <= 0 {
		variables = len(view.DimensionKeys()) + len(view.MeasureKeys())
	}
	return &Overview{
		Observations: view.Len(),
		Variables:    variables,
		Reply: fmt.Sprintf("In total, this data set consists of %s observations and %d independent variables.",
			FormatInt(view.Len()), variables),
		Preview: BuildRecordTable(Head(view, previewRows), "Data preview"),
	}
}

// SummarizeSplit reports the size and date span of a named table.
func SummarizeSplit(name string, view RecordView) SplitSummary {
	s := SplitSummary{Name: name, Observations: view.Len()}
	if from, to, ok := DateSpan(view); ok {
		s.From = from.Format(DateLayout)
		s.To = to.Format(DateLayout)
	}
	return s
}
