package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"estimatecalc/testhelpers"
)

func TestHandleEstimateNew_RendersForm(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimateNew(app, testCatalog())

	req := httptest.NewRequest(http.MethodGet, "/estimates/new", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Gutters and Leaders", "Stone Veneer", "Stucco Painting", "House Painting")
}

func TestHandleEstimateCreate_ValidData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimateCreate(app, testCatalog())

	form := url.Values{}
	form.Set("customer_name", "Pat Morrison")
	form.Set("project_address", "48 Birchwood Dr, Westfield NJ")
	form.Set("sales_rep", "Chris Delgado")
	form.Set("service", "gutters")

	req := httptest.NewRequest(http.MethodPost, "/estimates",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("estimates",
		"customer_name = {:name}", "", 1, 0,
		map[string]any{"name": "Pat Morrison"})
	if err != nil || len(records) == 0 {
		t.Fatal("expected estimate to be created in database")
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"),
		"/estimates/"+records[0].Id)

	// A gutters estimate starts with one blank row per table.
	rows, err := app.FindRecordsByFilter("measurement_rows",
		"estimate = {:id}", "", 0, 0,
		map[string]any{"id": records[0].Id})
	if err != nil {
		t.Fatalf("failed to query measurement rows: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("expected 3 starter rows for gutters, got %d", len(rows))
	}
}

func TestHandleEstimateCreate_StoneDefaultsCultured(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimateCreate(app, testCatalog())

	form := url.Values{}
	form.Set("service", "stone")

	req := httptest.NewRequest(http.MethodPost, "/estimates",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	records, err := app.FindRecordsByFilter("estimates",
		"service = 'stone'", "", 1, 0)
	if err != nil || len(records) == 0 {
		t.Fatal("expected stone estimate to be created")
	}
	if got := records[0].GetString("stone_install_type"); got != "cultured" {
		t.Errorf("expected stone_install_type 'cultured', got %q", got)
	}

	rows, _ := app.FindRecordsByFilter("measurement_rows",
		"estimate = {:id}", "", 0, 0,
		map[string]any{"id": records[0].Id})
	if len(rows) != 4 {
		t.Errorf("expected 4 starter rows for stone, got %d", len(rows))
	}
}

func TestHandleEstimateCreate_InvalidService(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimateCreate(app, testCatalog())

	form := url.Values{}
	form.Set("service", "roofing")

	req := httptest.NewRequest(http.MethodPost, "/estimates",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Redirect") != "" {
		t.Error("expected no HX-Redirect for invalid service")
	}
}
