// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestEstimate creates an estimate record for the given service and
// returns it.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, service string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer_name", "Jane Smith")
	record.Set("project_address", "12 Oak Ln, Montclair NJ")
	record.Set("sales_rep", "Bob Jones")
	record.Set("service", service)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}

// AddMeasurementRow creates an itemized measurement row on an estimate.
func AddMeasurementRow(t *testing.T, app *pocketbase.PocketBase, estimateID, tableKind, itemType string, quantity float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("measurement_rows")
	if err != nil {
		t.Fatalf("failed to find measurement_rows collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("estimate", estimateID)
	record.Set("table_kind", tableKind)
	record.Set("sort_order", 1)
	record.Set("item_type", itemType)
	record.Set("quantity", quantity)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test measurement row: %v", err)
	}

	return record
}

// AddGeometryRow creates a width/height measurement row on an estimate.
func AddGeometryRow(t *testing.T, app *pocketbase.PocketBase, estimateID, tableKind string, width, height float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("measurement_rows")
	if err != nil {
		t.Fatalf("failed to find measurement_rows collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("estimate", estimateID)
	record.Set("table_kind", tableKind)
	record.Set("sort_order", 1)
	record.Set("width", width)
	record.Set("height", height)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test geometry row: %v", err)
	}

	return record
}

// SetMiscQuantity creates a misc quantity record on an estimate.
func SetMiscQuantity(t *testing.T, app *pocketbase.PocketBase, estimateID, itemName string, quantity float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("misc_quantities")
	if err != nil {
		t.Fatalf("failed to find misc_quantities collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("estimate", estimateID)
	record.Set("item_name", itemName)
	record.Set("quantity", quantity)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test misc quantity: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
