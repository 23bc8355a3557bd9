package engine

import "time"

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns loaded data. It reads through this interface.
//
// Implementations:
//   DailyView      — wraps []DailyRecord (named counts + indicator map)
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — filtered subset (indices into parent, zero-copy)
// ============================================================================

// RecordView provides indexed access to a dated dataset.
// The engine calls these in tight loops; keep implementations fast.
type RecordView interface {
	Len() int
	Date(index int) time.Time
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// DAILY VIEW — wraps []DailyRecord
// ============================================================================

// DailyView exposes DailyRecords as a RecordView. Measure keys are the four
// COVID counts followed by the indicator keys in the order given.
type DailyView struct {
	records []DailyRecord
	mesKeys []string
}

// NewDailyView creates a RecordView over records. indicatorKeys fixes the
// column order of the indicator measures (normally the CSV header order).
func NewDailyView(records []DailyRecord, indicatorKeys []string) RecordView {
	keys := []string{
		FieldNewConfirmed,
		FieldCumulativeConfirmed,
		FieldCumulativeTested,
		FieldCumulativeRecovered,
	}
	keys = append(keys, indicatorKeys...)
	return &DailyView{records: records, mesKeys: keys}
}

func (v *DailyView) Len() int { return len(v.records) }

func (v *DailyView) Date(i int) time.Time {
	if i < 0 || i >= len(v.records) {
		return time.Time{}
	}
	return v.records[i].Date
}

func (v *DailyView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	switch key {
	case FieldSubregion:
		return v.records[i].SubregionCode
	case FieldDate:
		return v.records[i].Date.Format(DateLayout)
	}
	return ""
}

func (v *DailyView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.records) {
		return 0
	}
	return v.records[i].Value(key)
}

func (v *DailyView) DimensionKeys() []string { return []string{FieldSubregion, FieldDate} }
func (v *DailyView) MeasureKeys() []string   { return v.mesKeys }

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent, no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Date(i int) time.Time {
	if i < 0 || i >= len(v.indices) {
		return time.Time{}
	}
	return v.parent.Date(v.indices[i])
}

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[ModelSeriesRecord]().
//	    Date(func(r ModelSeriesRecord) time.Time { return r.Date }).
//	    Dimension("model", func(r ModelSeriesRecord) string { return r.Model }).
//	    Measure("value", func(r ModelSeriesRecord) float64 { return r.Value })
//
//	view := adapter.Bind(records)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	date     func(T) time.Time
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Date registers the date accessor. The date is also exposed as the
// FieldDate dimension.
func (a *DomainAdapter[T]) Date(fn func(T) time.Time) *DomainAdapter[T] {
	a.date = fn
	return a.Dimension(FieldDate, func(t T) string { return fn(t).Format(DateLayout) })
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy: holds a reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		date:     a.date,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	date     func(T) time.Time
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Date(i int) time.Time {
	if i < 0 || i >= len(v.data) || v.date == nil {
		return time.Time{}
	}
	return v.date(v.data[i])
}

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }

// ============================================================================
// MODEL SERIES VIEW
// ============================================================================

//nolint:gochecknoglobals // adapter is immutable after init
var modelSeriesAdapter = NewDomainAdapter[ModelSeriesRecord]().
	Dimension(FieldSubregion, func(r ModelSeriesRecord) string { return r.SubregionCode }).
	Date(func(r ModelSeriesRecord) time.Time { return r.Date }).
	Dimension(FieldModel, func(r ModelSeriesRecord) string { return r.Model }).
	Measure(FieldValue, func(r ModelSeriesRecord) float64 { return r.Value })

// NewModelSeriesView creates a RecordView over model-comparison records.
func NewModelSeriesView(records []ModelSeriesRecord) RecordView {
	return modelSeriesAdapter.Bind(records)
}
