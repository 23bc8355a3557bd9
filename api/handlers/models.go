package handlers

import "github.com/spektr-org/covidash/engine"

// SubregionsResponse lists the subregions each table covers
type SubregionsResponse struct {
	Subregions                  []string `json:"subregions"`
	ComparisonSubregions        []string `json:"comparisonSubregions"`
	DefaultComparisonSubregions []string `json:"defaultComparisonSubregions"`
}

// ModelsResponse lists the models present in the comparison table
type ModelsResponse struct {
	Models []string `json:"models"`
}

// GlossaryResponse is the full variable glossary
type GlossaryResponse struct {
	Index      []engine.GlossaryEntry `json:"index"`
	Categories []CategoryGlossary     `json:"categories"`
}

// CategoryGlossary is the glossary of one category
type CategoryGlossary struct {
	Key     string                 `json:"key"`
	Label   string                 `json:"label"`
	Entries []engine.GlossaryEntry `json:"entries"`
}
