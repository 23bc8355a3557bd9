// Package covidash is a state-level COVID-19 dashboard core.
//
// Usage:
//
//	import "github.com/spektr-org/covidash/engine"
//
//	ds, err := dataset.Load(os.DirFS("data"), files, log)
//	result, err := engine.Execute(engine.FilterCriteria{
//	    Start:      start,
//	    End:        end,
//	    Subregions: []string{"CA", "TX"},
//	    Models:     ds.Models(),
//	}, ds, engine.WithForecastBoundary(boundary))
//
// The engine takes one interaction's FilterCriteria and the loaded tables,
// and returns render-ready output: the filtered table, the case charts and
// the model comparison chart. Images are drawn by the render package and
// served over HTTP by the api package.
//
// The engine never calls any external service; all computation is local.
package covidash
