package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// GLOSSARY — Variable explanations, grouped by category
// ============================================================================
// Tables are declared once and never mutated. Entry order is the authored
// order (policy levels, etc.), not alphabetical.
// ============================================================================

// Category is one of the four fixed glossary groups.
type Category string

const (
	CategorySearchTrend Category = "search_trend"
	CategoryCovidData   Category = "covid_data"
	CategoryPolicy      Category = "policy"
	CategoryGeographic  Category = "geographic"
)

// GlossaryEntry pairs a variable name with its description.
type GlossaryEntry struct {
	Variable    string `json:"variable"`
	Description string `json:"description"`
}

// Categories lists every category in selectbox order.
func Categories() []Category {
	return []Category{CategorySearchTrend, CategoryCovidData, CategoryPolicy, CategoryGeographic}
}

// Label returns the category's display label.
func (c Category) Label() string {
	switch c {
	case CategorySearchTrend:
		return "Search Trend"
	case CategoryCovidData:
		return "COVID-19 related data"
	case CategoryPolicy:
		return "Policy"
	case CategoryGeographic:
		return "Geographic information"
	}
	return string(c)
}

// ParseCategory accepts either the category key ("policy") or its display
// label ("Policy", "COVID-19 related data"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// DescribeCategory returns the glossary for c in declared order.
// The returned slice is a copy; callers may modify it freely.
func DescribeCategory(c Category) []GlossaryEntry {
	var src []GlossaryEntry
	switch c {
	case CategorySearchTrend:
		src = searchTrendGlossary
	case CategoryCovidData:
		src = covidGlossary
	case CategoryPolicy:
		src = policyGlossary
	default:
		src = geographicGlossary
	}
	out := make([]GlossaryEntry, len(src))
	copy(out, src)
	return out
}

// IndexVariables describes the two key columns every table shares.
func IndexVariables() []GlossaryEntry {
	out := make([]GlossaryEntry, len(indexGlossary))
	copy(out, indexGlossary)
	return out
}

//nolint:gochecknoglobals // read-only lookup tables
var (
	indexGlossary = []GlossaryEntry{
		{"subregion1_code", "ISO 3166-2 or NUTS 2/3 code of the subregion. For example, California = CA"},
		{"date", "Calendar date in the format YYYY-MM-DD starting from 2020-03-02 to 2021-11-10"},
	}

	covidGlossary = []GlossaryEntry{
		{"new_confirmed", "Count of new cases confirmed after positive test on this date"},
		{"cumulative_confirmed", "Cumulative sum of cases confirmed after positive test to date"},
		{"cumulative_tested", "Cumulative sum of COVID-19 tests performed to date"},
		{"cumulative_recovered", "Cumulative sum of recoveries from a positive COVID-19 case to date"},
	}

	geographicGlossary = []GlossaryEntry{
		{"population_dex", "Population density"},
		{"elder_perc", "Percentage of people older than 60 years-old in total population."},
		{"mobility_${place}", "Percentage change in visits to places compared to baseline"},
	}

	policyGlossary = []GlossaryEntry{
		{"school/workplace_closing", "0 - no measures;\n1 - recommend closing or opening with alterations;\n2 - require closing;\n3 - require closing all levels"},
		{"restrictions_on_gatherings", "0 - no restrictions;\n1 - restrictions on very large gatherings;\n2 - restrictions on gatherings between 101-1000 ppl;\n3 - restrictions on gatherings between 11-100 ppl;\n4 - restrictions on gatherings of 10 ppl or less"},
		{"public_transport_closing", "0 - no measures;\n1 - recommend closing or opening with alterations;\n2 - require closing"},
		{"stay_at_home_requirements", "0 - no measures;\n1 - recommend not leaving house;\n2 - require not leaving house with exceptions for daily exercise, grocery shopping, and 'essential' trips;\n3 - require not leaving house with minimal exceptions"},
		{"public_information_campaigns", "0 - no Covid-19 public information campaign;\n1 - public officials urging caution about Covid-19;\n2 - coordinated public information campaign (eg across traditional and social media)"},
		{"testing_policy", "0 - no testing policy;\n1 - only those who both (a) have symptoms AND (b) meet specific criteria (eg came into contact with a known case, returned from overseas);\n2 - testing of anyone showing Covid-19 symptoms;\n3 - open public testing (eg 'drive through' testing available to asymptomatic people)"},
		{"facial_coverings", "1 - Recommended;\n2 - Required in some specified shared/public spaces outside the home with other people present, or some situations when social distancing not possible;\n3 - Required in all shared/public spaces outside the home with other people present or all situations when social distancing not possible;\n4 - Required outside the home at all times regardless of location or presence of other people"},
		{"vaccination_policy", "0 - No availability;\n1 - Available for one group of people in priority;\n2 - Available for two groups of people in priority;\n3 - Available for all people in priority;\n4 - Available for all people in priority with broad ages;\n5 - Universal available"},
		{"stringency_index", "0 - 100, overall stringency index"},
	}

	searchTrendGlossary = []GlossaryEntry{
		{"search_trend_${covid-related symptoms}", "Reflects the normalized search volume for this symptom, for the specified date and region"},
	}
)
