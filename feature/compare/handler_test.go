package compare

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"dataset-reconciler/core/dataset"
	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	app := fiber.New()
	svc := setupService(t)
	require.NoError(t, NewFeature(svc).Load(app))
	return app
}

func TestHandleCompare(t *testing.T) {
	app := setupTestApp(t)

	body := `{"a": "expected.csv", "b": "actual.csv", "options": {"normalize_periods": false}}`
	req := httptest.NewRequest("POST", "/compare", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report struct {
		Identical         bool `json:"identical"`
		NormalizedPeriods bool `json:"normalized_periods"`
		Findings          []struct {
			Kind    string         `json:"kind"`
			Message string         `json:"message"`
			Detail  map[string]any `json:"detail"`
		} `json:"findings"`
		Summary reconcile.Summary `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	assert.False(t, report.Identical)
	assert.False(t, report.NormalizedPeriods)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "value_mismatch", report.Findings[0].Kind)
	assert.Equal(t, "2020-01-02", report.Findings[0].Detail["row"])
	assert.Equal(t, float64(21), report.Findings[0].Detail["value_b"])
	assert.Equal(t, 1, report.Summary.TotalDiffs)
}

func TestHandleCompareQuery(t *testing.T) {
	app := setupTestApp(t)

	t.Run("Text", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/compare?a=expected.csv&b=actual.csv&format=text", nil), 2000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

		text, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(text), "Datasets are different:")
		assert.Contains(t, string(text), "Detailed element-wise differences:")
	})

	t.Run("Overflow", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/compare?a=expected.csv&b=actual.csv&max_diffs=0", nil), 2000)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["summary"].(map[string]any)["overflowed"])
	})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"Identical", "a=expected.csv&b=expected.csv&tolerance=0.5", fiber.StatusOK},
		{"Missing reference", "a=expected.csv", fiber.StatusBadRequest},
		{"Bad integer", "a=expected.csv&b=actual.csv&max_diffs=many", fiber.StatusBadRequest},
		{"Bad boolean", "a=expected.csv&b=actual.csv&normalize=maybe", fiber.StatusBadRequest},
		{"Bad tolerance", "a=expected.csv&b=actual.csv&tolerance=x", fiber.StatusBadRequest},
		{"Negative tolerance", "a=expected.csv&b=actual.csv&tolerance=-1", fiber.StatusBadRequest},
		{"Malformed dataset", "a=expected.csv&b=broken.csv", fiber.StatusBadRequest},
		{"Unknown format", "a=expected.csv&b=prices.xlsx", fiber.StatusBadRequest},
		{"Unknown frequency", "a=expected.csv&b=actual.csv&freq=fortnight", fiber.StatusBadRequest},
		{"Unknown index kind", "a=expected.csv&b=actual.csv&index_kind=bogus", fiber.StatusBadRequest},
		{"Bad refresh", "a=expected.csv&b=actual.csv&refresh=soon", fiber.StatusBadRequest},
		{"Refresh", "a=expected.csv&b=expected.csv&refresh=true", fiber.StatusOK},
		{"Not found", "a=expected.csv&b=missing.csv", fiber.StatusNotFound},
		{"No storage", "a=expected.csv&b=s3://prices.csv", fiber.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/compare?"+tt.query, nil), 2000)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandleCompare_InvalidBody(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("POST", "/compare", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleInspect(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/compare/inspect?ref=expected.csv", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var in Inspection
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&in))
	assert.Equal(t, dataset.Shape{Rows: 3, Columns: 1}, in.Shape)
	assert.Equal(t, dataset.TypeInt64, in.Columns[0].Type)

	resp, err = app.Test(httptest.NewRequest("GET", "/compare/inspect?ref=", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListDatasets_Unavailable(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/compare/datasets", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleInvalidateCache(t *testing.T) {
	app := setupTestApp(t)

	for _, target := range []string{"/compare/cache?ref=expected.csv", "/compare/cache"} {
		resp, err := app.Test(httptest.NewRequest("DELETE", target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode, target)
	}

	resp, err := app.Test(httptest.NewRequest("DELETE", "/compare/cache?ref=prices.xlsx", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", reconcile.ErrInvalidInput), fiber.StatusBadRequest},
		{fmt.Errorf("wrap: %w", dataset.ErrMalformed), fiber.StatusBadRequest},
		{source.ErrInvalidRef, fiber.StatusBadRequest},
		{fmt.Errorf("dataset b: %w", source.ErrNotFound), fiber.StatusNotFound},
		{source.ErrUnavailable, fiber.StatusServiceUnavailable},
		{fmt.Errorf("dataset a: %w", storage.ErrObjectTooLarge), fiber.StatusRequestEntityTooLarge},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
