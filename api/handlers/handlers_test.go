package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/covidash/cache"
	"github.com/spektr-org/covidash/dataset"
	"github.com/spektr-org/covidash/engine"
	"github.com/spektr-org/covidash/render"
)

const testDailyCSV = `subregion1_code,date,new_confirmed,cumulative_confirmed,cumulative_tested,cumulative_recovered
CA,2020-03-02,10,10,100,0
CA,2020-03-03,12,22,130,1
CA,2020-03-04,5,27,150,2
TX,2020-03-03,4,4,60,0
TX,2020-03-04,6,10,80,0
`

const testComparisonCSV = `subregion1_code,date,model,value
TX,2021-11-01,prediction,100
TX,2021-11-06,forecast,120
TX,2021-11-01,arima,90
CA,2021-11-01,prediction,300
`

func loadTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	fsys := fstest.MapFS{
		"daily.csv":      {Data: []byte(testDailyCSV)},
		"comparison.csv": {Data: []byte(testComparisonCSV)},
	}
	log, _ := test.NewNullLogger()
	ds, err := dataset.Load(fsys, dataset.Files{Daily: "daily.csv", Comparison: "comparison.csv"}, log)
	require.NoError(t, err)
	return ds
}

func testSettings() Settings {
	return Settings{
		Bounds:               engine.DefaultBounds(),
		ForecastBoundary:     engine.DefaultForecastBoundary(),
		ComparisonSubregions: []string{"TX"},
		PreviewRows:          6,
		CacheTTL:             time.Minute,
	}
}

func setupTestApp(t *testing.T, provider cache.Provider) *fiber.App {
	t.Helper()
	log, _ := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	server := NewServer(loadTestDataset(t), testSettings(), provider, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error(), "code": code})
		},
	})
	server.Register(app.Group("/api/v1"))
	return app
}

func doGet(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest("GET", path, http.NoBody)
	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func getJSON(t *testing.T, app *fiber.App, path string, wantStatus int, out any) {
	t.Helper()
	resp, body := doGet(t, app, path)
	require.Equal(t, wantStatus, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, out))
}

func TestGetDashboard_Selected(t *testing.T) {
	app := setupTestApp(t, nil)

	var result engine.Result
	getJSON(t, app, "/api/v1/dashboard?start=2020-03-02&end=2020-03-05&subregions=ca", http.StatusOK, &result)

	assert.True(t, result.Success)
	assert.Equal(t, engine.SubregionsSelected, result.Criteria.Mode)
	assert.Equal(t, []string{"CA"}, result.Criteria.Subregions)
	assert.Equal(t, engine.RangeValid, result.Validation.Status)

	// Open range: 2020-03-02 itself is excluded.
	require.NotNil(t, result.Table)
	require.Len(t, result.Table.Rows, 2)
	assert.Equal(t, "2020-03-03", result.Table.Rows[0][1])

	require.Len(t, result.Charts, 2)
	assert.Equal(t, engine.ChartCumulativeConfirmed, result.Charts[0].Kind)
	assert.Equal(t, engine.ChartNewConfirmed, result.Charts[1].Kind)

	// Comparison defaults to TX and every model.
	require.NotNil(t, result.Comparison)
	names := make([]string, 0, len(result.Comparison.Series))
	for _, s := range result.Comparison.Series {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"prediction", "forecast", "arima"}, names)
	require.NotNil(t, result.Comparison.Marker)
	assert.Equal(t, "2021-11-05", result.Comparison.Marker.Label)
}

func TestGetDashboard_AllStates(t *testing.T) {
	app := setupTestApp(t, nil)

	var result engine.Result
	getJSON(t, app, "/api/v1/dashboard?all_states=yes", http.StatusOK, &result)

	assert.Equal(t, engine.SubregionsAll, result.Criteria.Mode)
	assert.Nil(t, result.Table)
	require.Len(t, result.Charts, 1)
	assert.Equal(t, engine.ChartAllStatesNewCases, result.Charts[0].Kind)
	assert.Len(t, result.Charts[0].Series, 2)
}

func TestGetDashboard_ComparisonSelection(t *testing.T) {
	app := setupTestApp(t, nil)

	tests := []struct {
		name   string
		query  string
		series []string
	}{
		{name: "explicit subregion and model", query: "comparison=CA&models=prediction", series: []string{"prediction"}},
		{name: "empty model list", query: "models=", series: []string{}},
		{name: "empty comparison list", query: "comparison=", series: []string{}},
		{name: "case insensitive models", query: "models=FORECAST", series: []string{"forecast"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result engine.Result
			getJSON(t, app, "/api/v1/dashboard?subregions=TX&"+tt.query, http.StatusOK, &result)

			require.NotNil(t, result.Comparison)
			names := make([]string, 0, len(result.Comparison.Series))
			for _, s := range result.Comparison.Series {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.series, names)
		})
	}
}

func TestGetDashboard_InvertedRange(t *testing.T) {
	app := setupTestApp(t, nil)

	var result engine.Result
	getJSON(t, app, "/api/v1/dashboard?start=2020-03-05&end=2020-03-02&subregions=CA", http.StatusOK, &result)

	assert.Equal(t, engine.RangeInverted, result.Validation.Status)
	assert.Equal(t, "Error: End date must fall after start date.", result.Validation.Message)
	require.NotNil(t, result.Table)
	assert.Empty(t, result.Table.Rows)
}

func TestGetDashboard_BadRequest(t *testing.T) {
	app := setupTestApp(t, nil)

	tests := []struct {
		name  string
		query string
	}{
		{name: "bad start", query: "start=03/02/2020"},
		{name: "bad end", query: "end=2020-13-01"},
		{name: "bad all_states", query: "all_states=maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			getJSON(t, app, "/api/v1/dashboard?"+tt.query, http.StatusBadRequest, &body)
			assert.Contains(t, body, "error")
		})
	}
}

func TestValidateRange(t *testing.T) {
	app := setupTestApp(t, nil)

	var check engine.RangeCheck
	getJSON(t, app, "/api/v1/validate?start=2019-12-01&end=2020-04-01", http.StatusOK, &check)

	assert.Equal(t, engine.RangeOutOfBounds, check.Status)
	assert.Contains(t, check.Message, "2020-03-02")

	getJSON(t, app, "/api/v1/validate?start=2020-04-01&end=2020-05-01", http.StatusOK, &check)
	assert.Equal(t, engine.RangeValid, check.Status)
}

func TestListGlossary(t *testing.T) {
	app := setupTestApp(t, nil)

	var resp GlossaryResponse
	getJSON(t, app, "/api/v1/glossary", http.StatusOK, &resp)

	require.Len(t, resp.Categories, 4)
	assert.Equal(t, "search_trend", resp.Categories[0].Key)
	assert.Equal(t, "Search Trend", resp.Categories[0].Label)
	assert.Len(t, resp.Index, 2)
	for _, c := range resp.Categories {
		assert.NotEmpty(t, c.Entries, c.Key)
	}
}

func TestGetGlossaryCategory(t *testing.T) {
	app := setupTestApp(t, nil)

	var resp CategoryGlossary
	getJSON(t, app, "/api/v1/glossary/Policy", http.StatusOK, &resp)
	assert.Equal(t, "policy", resp.Key)
	assert.Equal(t, engine.DescribeCategory(engine.CategoryPolicy), resp.Entries)

	var errBody map[string]any
	getJSON(t, app, "/api/v1/glossary/weather", http.StatusNotFound, &errBody)
	assert.Equal(t, "unknown glossary category", errBody["error"])
}

func TestListSubregionsAndModels(t *testing.T) {
	app := setupTestApp(t, nil)

	var subregions SubregionsResponse
	getJSON(t, app, "/api/v1/subregions", http.StatusOK, &subregions)
	assert.Equal(t, []string{"CA", "TX"}, subregions.Subregions)
	assert.Equal(t, []string{"TX", "CA"}, subregions.ComparisonSubregions)
	assert.Equal(t, []string{"TX"}, subregions.DefaultComparisonSubregions)

	var models ModelsResponse
	getJSON(t, app, "/api/v1/models", http.StatusOK, &models)
	assert.Equal(t, []string{"prediction", "forecast", "arima"}, models.Models)
}

func TestGetOverview(t *testing.T) {
	app := setupTestApp(t, nil)

	var overview engine.Overview
	getJSON(t, app, "/api/v1/overview", http.StatusOK, &overview)

	assert.Equal(t, 5, overview.Observations)
	assert.Equal(t, 6, overview.Variables)
	assert.Equal(t, "In total, this data set consists of 5 observations and 6 independent variables.", overview.Reply)
	require.NotNil(t, overview.Preview)
	assert.Len(t, overview.Preview.Rows, 5)
}

func TestGetSchema(t *testing.T) {
	app := setupTestApp(t, nil)

	var body map[string]any
	resp, raw := doGet(t, app, "/api/v1/schema")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEmpty(t, body)
}

func TestGetChartImage_NoCache(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, body := doGet(t, app, "/api/v1/charts/new_confirmed?format=svg&subregions=CA&start=2020-03-01&end=2020-03-05")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	assert.Equal(t, "image/svg+xml", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "disabled", resp.Header.Get(HeaderCache))
	assert.Contains(t, string(body), "<svg")
}

func TestGetChartImage_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	provider := cache.NewRedisProvider(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "covidash")
	defer provider.Close()
	app := setupTestApp(t, provider)

	path := "/api/v1/charts/model_comparison?format=svg&width=640&height=320"

	first, firstBody := doGet(t, app, path)
	require.Equal(t, http.StatusOK, first.StatusCode, string(firstBody))
	assert.Equal(t, "miss", first.Header.Get(HeaderCache))
	assert.Len(t, mr.Keys(), 1)

	second, secondBody := doGet(t, app, path)
	require.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "hit", second.Header.Get(HeaderCache))
	assert.Equal(t, firstBody, secondBody)

	// A different selection is a different key.
	third, _ := doGet(t, app, path+"&models=arima")
	require.Equal(t, http.StatusOK, third.StatusCode)
	assert.Equal(t, "miss", third.Header.Get(HeaderCache))
	assert.Len(t, mr.Keys(), 2)
}

func TestGetChartImage_Errors(t *testing.T) {
	app := setupTestApp(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "unknown kind", path: "/api/v1/charts/pie", wantStatus: http.StatusNotFound},
		{name: "unknown format", path: "/api/v1/charts/new_confirmed?format=gif", wantStatus: http.StatusBadRequest},
		{name: "bad date", path: "/api/v1/charts/new_confirmed?start=yesterday", wantStatus: http.StatusBadRequest},
		{name: "nothing selected", path: "/api/v1/charts/new_confirmed?subregions=ZZ", wantStatus: http.StatusUnprocessableEntity},
		{name: "no models", path: "/api/v1/charts/model_comparison?models=", wantStatus: http.StatusUnprocessableEntity},
		{name: "oversized image", path: "/api/v1/charts/new_confirmed?width=30000&height=30000", wantStatus: http.StatusBadRequest},
		{name: "width over limit", path: "/api/v1/charts/new_confirmed?width=4097", wantStatus: http.StatusBadRequest},
		{name: "height over limit", path: "/api/v1/charts/new_confirmed?format=svg&height=5000", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			getJSON(t, app, tt.path, tt.wantStatus, &body)
			assert.InDelta(t, float64(tt.wantStatus), body["code"], 0)
		})
	}
}

func TestChartCacheKey(t *testing.T) {
	criteria := engine.NormalizeCriteria(engine.FilterCriteria{
		Start:      engine.DefaultBounds().Min,
		End:        engine.DefaultBounds().Max,
		Subregions: []string{"ca"},
		Models:     []string{"prediction"},
	})

	a := chartCacheKey(engine.ChartNewConfirmed, "png", renderOpts(100, 50), criteria)
	b := chartCacheKey(engine.ChartNewConfirmed, "svg", renderOpts(100, 50), criteria)
	c := chartCacheKey(engine.ChartNewConfirmed, "png", renderOpts(100, 60), criteria)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, chartCacheKey(engine.ChartNewConfirmed, "png", renderOpts(100, 50), criteria))
}

func renderOpts(width, height int) render.Options {
	return render.Options{Width: width, Height: height}
}
