package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

func TestSetToast_Basic(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	SetToast(e, "success", "Estimate saved")

	trigger := rec.Header().Get("HX-Trigger")
	if trigger == "" {
		t.Fatal("expected HX-Trigger header to be set")
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trigger), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}

	raw, ok := parsed["showToast"]
	if !ok {
		t.Fatal("expected showToast key in HX-Trigger JSON")
	}

	var toast map[string]string
	if err := json.Unmarshal(raw, &toast); err != nil {
		t.Fatalf("showToast value is not valid JSON: %v", err)
	}

	if toast["message"] != "Estimate saved" {
		t.Errorf("expected message %q, got %q", "Estimate saved", toast["message"])
	}
	if toast["type"] != "success" {
		t.Errorf("expected type %q, got %q", "success", toast["type"])
	}
}

func TestSetToast_MergesWithExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	rec.Header().Set("HX-Trigger", `{"recalculated":true}`)

	SetToast(e, "success", "Merged toast")

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}

	if _, ok := parsed["recalculated"]; !ok {
		t.Error("expected recalculated key to be preserved after merge")
	}
	if _, ok := parsed["showToast"]; !ok {
		t.Error("expected showToast key in merged HX-Trigger JSON")
	}
}

func TestSetToast_OverwritesInvalidExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	rec.Header().Set("HX-Trigger", "notValidJSON")

	SetToast(e, "error", "Overwritten")

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
		t.Fatalf("HX-Trigger should be valid JSON after overwrite: %v", err)
	}
	if _, ok := parsed["showToast"]; !ok {
		t.Error("expected showToast key after overwriting invalid header")
	}
}

func TestSetToast_SpecialCharacters(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"quotes", `Saved "Gutter 5\" white"`},
		{"angle brackets", `<script>alert("xss")</script>`},
		{"newline", "line1\nline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := &core.RequestEvent{}
			e.Response = rec

			SetToast(e, "info", tt.message)

			var parsed map[string]json.RawMessage
			if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
				t.Fatalf("HX-Trigger is not valid JSON for message %q: %v", tt.message, err)
			}

			var toast map[string]string
			if err := json.Unmarshal(parsed["showToast"], &toast); err != nil {
				t.Fatalf("showToast is not valid JSON: %v", err)
			}
			if toast["message"] != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, toast["message"])
			}
		})
	}
}

func TestErrorToast_SetsHeaderAndReswap(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	err := ErrorToast(e, http.StatusNotFound, "Estimate not found")
	if err != nil {
		t.Fatalf("ErrorToast returned error: %v", err)
	}

	trigger := rec.Header().Get("HX-Trigger")
	if trigger == "" {
		t.Fatal("expected HX-Trigger header to be set")
	}
	var parsed map[string]map[string]string
	if err := json.Unmarshal([]byte(trigger), &parsed); err != nil {
		t.Fatalf("failed to parse HX-Trigger JSON: %v", err)
	}
	toast, ok := parsed["showToast"]
	if !ok {
		t.Fatal("expected showToast key in HX-Trigger")
	}
	if toast["type"] != "error" {
		t.Errorf("expected type 'error', got %q", toast["type"])
	}

	if rec.Header().Get("HX-Reswap") != "none" {
		t.Errorf("expected HX-Reswap 'none', got %q", rec.Header().Get("HX-Reswap"))
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestTriggerRecalculated(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	TriggerRecalculated(e)

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := parsed["recalculated"]; !ok {
		t.Error("expected recalculated key in HX-Trigger JSON")
	}
}

func TestTriggerRecalculated_KeepsToast(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	SetToast(e, "success", "Row added")
	TriggerRecalculated(e)

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := parsed["showToast"]; !ok {
		t.Error("expected showToast key to survive TriggerRecalculated")
	}
	if _, ok := parsed["recalculated"]; !ok {
		t.Error("expected recalculated key in merged HX-Trigger JSON")
	}
}
