package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"estimatecalc/testhelpers"
)

func postMiscQuantity(estimateID, item, quantity string) (*http.Request, *httptest.ResponseRecorder) {
	form := url.Values{}
	form.Set("quantity", quantity)

	req := httptest.NewRequest(http.MethodPost,
		"/estimates/"+estimateID+"/misc?item="+url.QueryEscape(item),
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("estimateId", estimateID)
	return req, httptest.NewRecorder()
}

func TestHandleMiscSet_CreatesRecord(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "stucco")
	handler := HandleMiscSet(app, testCatalog())

	req, rec := postMiscQuantity(estimate.Id, "Stainless Steel Chimney Cover", "2")
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("misc_quantities",
		"estimate = {:id}", "", 0, 0, map[string]any{"id": estimate.Id})
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 misc record, got %d (err=%v)", len(records), err)
	}
	if got := records[0].GetFloat("quantity"); got != 2 {
		t.Errorf("expected quantity 2, got %v", got)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "recalculated") {
		t.Error("expected HX-Trigger to fire recalculated")
	}
}

func TestHandleMiscSet_UpsertsOnRepeat(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "stucco")
	handler := HandleMiscSet(app, testCatalog())

	for _, qty := range []string{"1", "3"} {
		req, rec := postMiscQuantity(estimate.Id, "Stainless Steel Chimney Cover", qty)
		e := newTestRequestEvent(app, req, rec)
		if err := handler(e); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
	}

	records, err := app.FindRecordsByFilter("misc_quantities",
		"estimate = {:id}", "", 0, 0, map[string]any{"id": estimate.Id})
	if err != nil || len(records) != 1 {
		t.Fatalf("expected upsert to keep 1 record, got %d (err=%v)", len(records), err)
	}
	if got := records[0].GetFloat("quantity"); got != 3 {
		t.Errorf("expected quantity 3 after second post, got %v", got)
	}
}

func TestHandleMiscSet_UnknownItem(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "stucco")
	handler := HandleMiscSet(app, testCatalog())

	req, rec := postMiscQuantity(estimate.Id, "Gold Plated Gutter", "1")
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleMiscSet_EstimateNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMiscSet(app, testCatalog())

	req, rec := postMiscQuantity("nonexistent", "Stainless Steel Chimney Cover", "1")
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
