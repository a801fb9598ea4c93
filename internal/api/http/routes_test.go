package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/temperature-heatmap/internal/dataset"
	"github.com/i474232898/temperature-heatmap/internal/heatmap"
	"github.com/i474232898/temperature-heatmap/internal/store"
)

type stubSource struct {
	ds  heatmap.Dataset
	err error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context) (heatmap.Dataset, error) {
	return s.ds, s.err
}

func newTestApp(t *testing.T, src *stubSource, preload bool) *fiber.App {
	t.Helper()

	svc := dataset.NewService(store.NewMemoryStore(10, time.Hour), src, nil)
	if preload {
		if _, err := svc.FetchAndStore(context.Background()); err != nil {
			t.Fatalf("preload: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})
	RegisterRoutes(app, svc)
	return app
}

func sampleSource() *stubSource {
	return &stubSource{ds: heatmap.Dataset{
		BaseTemperature: 8.66,
		MonthlyVariance: []heatmap.MonthlyRecord{
			{Year: 1753, Month: 1, Variance: -1.366},
			{Year: 1753, Month: 2, Variance: -2.223},
			{Year: 1754, Month: 1, Variance: 0.21},
		},
	}}
}

func do(t *testing.T, app *fiber.App, method, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestNoDatasetReturnsNotFound(t *testing.T) {
	app := newTestApp(t, sampleSource(), false)

	for _, target := range []string{
		"/api/v1/dataset",
		"/api/v1/chart",
		"/api/v1/chart/legend",
		"/api/v1/chart/cell?year=1753&month=1",
		"/api/v1/chart.svg",
		"/api/v1/chart.png",
	} {
		resp := do(t, app, http.MethodGet, target)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: expected status %d, got %d", target, http.StatusNotFound, resp.StatusCode)
		}
	}
}

func TestChart(t *testing.T) {
	app := newTestApp(t, sampleSource(), true)

	resp := do(t, app, http.MethodGet, "/api/v1/chart")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var model heatmap.ChartModel
	if err := json.NewDecoder(resp.Body).Decode(&model); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(model.Cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(model.Cells))
	}
	if model.MinYear != 1753 || model.MaxYear != 1754 {
		t.Fatalf("unexpected year range %d-%d", model.MinYear, model.MaxYear)
	}
	if model.Cells[0].Color != (heatmap.Color{R: 255, G: 255, B: 191}) {
		t.Fatalf("unexpected first cell color %v", model.Cells[0].Color)
	}
}

func TestDatasetSummary(t *testing.T) {
	app := newTestApp(t, sampleSource(), true)

	resp := do(t, app, http.MethodGet, "/api/v1/dataset")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var sum dataset.Summary
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.Source != "stub" || sum.Records != 3 || sum.BaseTemperature != 8.66 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestRefresh(t *testing.T) {
	src := sampleSource()
	app := newTestApp(t, src, false)

	resp := do(t, app, http.MethodPost, "/api/v1/dataset/refresh")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	src.err = errors.New("upstream down")
	resp = do(t, app, http.MethodPost, "/api/v1/dataset/refresh")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}

	// the earlier snapshot still serves
	resp = do(t, app, http.MethodGet, "/api/v1/chart")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestCellQueryValidation(t *testing.T) {
	app := newTestApp(t, sampleSource(), true)

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/chart/cell?year=1753&month=1", http.StatusOK},
		{"/api/v1/chart/cell?year=1753", http.StatusBadRequest},
		{"/api/v1/chart/cell?year=abc&month=1", http.StatusBadRequest},
		{"/api/v1/chart/cell?year=1753&month=13", http.StatusBadRequest},
		{"/api/v1/chart/cell?year=1753&month=0", http.StatusBadRequest},
		{"/api/v1/chart/cell?year=1754&month=2", http.StatusNotFound},
	}

	for _, tt := range tests {
		resp := do(t, app, http.MethodGet, tt.target)
		if resp.StatusCode != tt.status {
			t.Errorf("%s: expected status %d, got %d", tt.target, tt.status, resp.StatusCode)
		}
	}
}

func TestCellTooltip(t *testing.T) {
	app := newTestApp(t, sampleSource(), true)

	resp := do(t, app, http.MethodGet, "/api/v1/chart/cell?year=1754&month=1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Cell    heatmap.RenderCell `json:"cell"`
		Tooltip heatmap.Tooltip    `json:"tooltip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := heatmap.Tooltip{Heading: "1754 - January", Temperature: "8.87°C", Variance: "+0.2°C"}
	if body.Tooltip != want {
		t.Fatalf("expected tooltip %+v, got %+v", want, body.Tooltip)
	}
}

func TestLegend(t *testing.T) {
	app := newTestApp(t, sampleSource(), true)

	resp := do(t, app, http.MethodGet, "/api/v1/chart/legend")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var legend []heatmap.LegendEntry
	if err := json.NewDecoder(resp.Body).Decode(&legend); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(legend) != len(heatmap.DefaultScale.Buckets()) {
		t.Fatalf("expected %d entries, got %d", len(heatmap.DefaultScale.Buckets()), len(legend))
	}
	if legend[0].Label != nil || legend[1].Label == nil || legend[1].Label.Text != "2.8" {
		t.Fatalf("unexpected legend labels: %+v %+v", legend[0].Label, legend[1].Label)
	}
}

func TestRenderedCharts(t *testing.T) {
	app := newTestApp(t, sampleSource(), true)

	resp := do(t, app, http.MethodGet, "/api/v1/chart.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("unexpected content type %s", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.Count(string(body), `class="cell"`) != 3 {
		t.Fatalf("expected 3 cells in svg")
	}

	resp = do(t, app, http.MethodGet, "/api/v1/chart.png")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type %s", ct)
	}
}

func TestMalformedRefreshKeepsLastGoodChart(t *testing.T) {
	src := sampleSource()
	app := newTestApp(t, src, true)

	src.ds.MonthlyVariance = append(src.ds.MonthlyVariance, heatmap.MonthlyRecord{Year: 1753, Month: 1, Variance: 0})
	resp := do(t, app, http.MethodPost, "/api/v1/dataset/refresh")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}

	for _, target := range []string{"/api/v1/chart", "/api/v1/chart/cell?year=1753&month=1", "/api/v1/chart.svg"} {
		resp = do(t, app, http.MethodGet, target)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", target, http.StatusOK, resp.StatusCode)
		}
	}
}

func TestCellQueryAcceptsYearZero(t *testing.T) {
	src := &stubSource{ds: heatmap.Dataset{
		BaseTemperature: 8.66,
		MonthlyVariance: []heatmap.MonthlyRecord{{Year: 0, Month: 1, Variance: 0.5}},
	}}
	app := newTestApp(t, src, true)

	resp := do(t, app, http.MethodGet, "/api/v1/chart/cell?year=0&month=1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}
