package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"estimatecalc/testhelpers"
)

func TestHandleRowAdd_AppendsRow(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "gutters")
	handler := HandleRowAdd(app, testCatalog())

	req := httptest.NewRequest(http.MethodPost, "/estimates/"+estimate.Id+"/rows/leaders", nil)
	req.SetPathValue("estimateId", estimate.Id)
	req.SetPathValue("kind", "leaders")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	rows, err := app.FindRecordsByFilter("measurement_rows",
		"estimate = {:id} && table_kind = 'leaders'", "", 0, 0,
		map[string]any{"id": estimate.Id})
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected 1 leaders row, got %d (err=%v)", len(rows), err)
	}

	// The response swaps the table partial back in place.
	if got := rec.Header().Get("HX-Retarget"); got != "#table-leaders" {
		t.Errorf("expected HX-Retarget '#table-leaders', got %q", got)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "recalculated") {
		t.Error("expected HX-Trigger to fire recalculated")
	}
}

func TestHandleRowAdd_SortOrderIncrements(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "gutters")
	testhelpers.AddMeasurementRow(t, app, estimate.Id, "gutters", `Gutter 5" white`, 10)

	handler := HandleRowAdd(app, testCatalog())

	req := httptest.NewRequest(http.MethodPost, "/estimates/"+estimate.Id+"/rows/gutters", nil)
	req.SetPathValue("estimateId", estimate.Id)
	req.SetPathValue("kind", "gutters")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	rows, err := app.FindRecordsByFilter("measurement_rows",
		"estimate = {:id} && table_kind = 'gutters'", "-sort_order", 1, 0,
		map[string]any{"id": estimate.Id})
	if err != nil || len(rows) == 0 {
		t.Fatalf("expected gutters rows, err=%v", err)
	}
	if got := rows[0].GetFloat("sort_order"); got != 2 {
		t.Errorf("expected new row sort_order 2, got %v", got)
	}
}

func TestHandleRowAdd_WrongKindForService(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "gutters")
	handler := HandleRowAdd(app, testCatalog())

	req := httptest.NewRequest(http.MethodPost, "/estimates/"+estimate.Id+"/rows/stone_flats", nil)
	req.SetPathValue("estimateId", estimate.Id)
	req.SetPathValue("kind", "stone_flats")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleRowPatch_UpdatesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "gutters")
	row := testhelpers.AddMeasurementRow(t, app, estimate.Id, "gutters", "", 0)

	handler := HandleRowPatch(app, testCatalog())

	form := url.Values{}
	form.Set("location", "North side")
	form.Set("item_type", `Gutter 5" white`)
	form.Set("quantity", "25.5")

	req := httptest.NewRequest(http.MethodPatch, "/measurements/"+row.Id,
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("rowId", row.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	updated, _ := app.FindRecordById("measurement_rows", row.Id)
	if got := updated.GetString("location"); got != "North side" {
		t.Errorf("expected location 'North side', got %q", got)
	}
	if got := updated.GetString("item_type"); got != `Gutter 5" white` {
		t.Errorf("expected item_type to update, got %q", got)
	}
	if got := updated.GetFloat("quantity"); got != 25.5 {
		t.Errorf("expected quantity 25.5, got %v", got)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "recalculated") {
		t.Error("expected HX-Trigger to fire recalculated")
	}
}

func TestHandleRowPatch_MalformedNumberStoresZero(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "stone")
	row := testhelpers.AddGeometryRow(t, app, estimate.Id, "stone_flats", 144, 96)

	handler := HandleRowPatch(app, testCatalog())

	form := url.Values{}
	form.Set("width", "wide")

	req := httptest.NewRequest(http.MethodPatch, "/measurements/"+row.Id,
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("rowId", row.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	updated, _ := app.FindRecordById("measurement_rows", row.Id)
	if got := updated.GetFloat("width"); got != 0 {
		t.Errorf("expected malformed width to store 0, got %v", got)
	}
	// Height was not posted and must be untouched.
	if got := updated.GetFloat("height"); got != 96 {
		t.Errorf("expected height unchanged, got %v", got)
	}
}

func TestHandleRowPatch_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleRowPatch(app, testCatalog())

	req := httptest.NewRequest(http.MethodPatch, "/measurements/nonexistent",
		strings.NewReader("quantity=5"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("rowId", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleRowDelete_RemovesRow(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "gutters")
	row := testhelpers.AddMeasurementRow(t, app, estimate.Id, "guards", `Screen 5"`, 12)

	handler := HandleRowDelete(app, testCatalog())

	req := httptest.NewRequest(http.MethodDelete, "/measurements/"+row.Id, nil)
	req.SetPathValue("rowId", row.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("measurement_rows", row.Id); err == nil {
		t.Error("expected row to be deleted")
	}
	if got := rec.Header().Get("HX-Retarget"); got != "#table-guards" {
		t.Errorf("expected HX-Retarget '#table-guards', got %q", got)
	}
}
