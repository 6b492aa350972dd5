package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
	"estimatecalc/templates"
)

// safeLabel makes a table label usable inside a download filename.
func safeLabel(label string) string {
	label = strings.ReplaceAll(label, " / ", "_")
	return strings.ReplaceAll(label, " ", "_")
}

// importTarget resolves the estimate and table kind of an import route.
func importTarget(e *core.RequestEvent, app *pocketbase.PocketBase) (*core.Record, services.TableKind, error) {
	estimate, err := app.FindRecordById("estimates", e.Request.PathValue("estimateId"))
	if err != nil {
		return nil, "", ErrorToast(e, http.StatusNotFound, "Estimate not found")
	}
	kind := services.TableKind(e.Request.PathValue("kind"))
	if !validTableKind(services.Service(estimate.GetString("service")), kind) {
		return nil, "", ErrorToast(e, http.StatusBadRequest, "Unknown measurement table")
	}
	return estimate, kind, nil
}

// HandleImportPage renders the upload form for one measurement table.
// Route: GET /estimates/{estimateId}/import/{kind}
func HandleImportPage(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, kind, err := importTarget(e, app)
		if err != nil {
			return err
		}

		data := templates.ImportPageData{
			EstimateID: estimate.Id,
			Kind:       string(kind),
			TableLabel: services.TableLabel(kind),
		}
		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.ImportContent(data).Render(e.Request.Context(), e.Response)
		}
		return templates.ImportPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleImportTemplate downloads the xlsx template for one table.
// Route: GET /estimates/{estimateId}/import/{kind}/template
func HandleImportTemplate(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, kind, err := importTarget(e, app)
		if err != nil {
			return err
		}

		service := services.Service(estimate.GetString("service"))
		xlsxBytes, err := services.GenerateMeasurementTemplate(c, service, kind)
		if err != nil {
			log.Printf("import: GenerateMeasurementTemplate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("%s_Template.xlsx", safeLabel(services.TableLabel(kind)))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}

// HandleImportValidate receives a file upload, validates it, and returns the
// validation results as an HTMX partial.
// Route: POST /estimates/{estimateId}/import/{kind}
func HandleImportValidate(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, kind, err := importTarget(e, app)
		if err != nil {
			return err
		}

		// Max 10MB upload
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		service := services.Service(estimate.GetString("service"))
		result, err := services.ValidateMeasurementFile(c, service, kind, file, header.Filename)
		if err != nil {
			log.Printf("import: validate: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		var parsedRowsJSON, errorsJSON string
		if result.ErrorRows == 0 {
			if b, err := json.Marshal(result.ParsedRows); err == nil {
				parsedRowsJSON = string(b)
			} else {
				log.Printf("import: marshal parsed rows: %v", err)
			}
		} else {
			if b, err := json.Marshal(result.Errors); err == nil {
				errorsJSON = string(b)
			} else {
				log.Printf("import: marshal errors: %v", err)
			}
		}

		data := templates.ImportPageData{
			EstimateID: estimate.Id,
			Kind:       string(kind),
			TableLabel: services.TableLabel(kind),
		}
		return templates.ImportResult(data, result, parsedRowsJSON, errorsJSON).
			Render(e.Request.Context(), e.Response)
	}
}

// HandleImportCommit inserts the validated rows and replaces nothing: the
// imported rows append after the existing ones.
// Route: POST /estimates/{estimateId}/import/{kind}/commit
func HandleImportCommit(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, kind, err := importTarget(e, app)
		if err != nil {
			return err
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		parsedJSON := e.Request.FormValue("parsed_rows_json")
		if parsedJSON == "" {
			return ErrorToast(e, http.StatusBadRequest, "File data missing. Please re-upload and try again.")
		}

		var parsedRows []map[string]string
		if err := json.Unmarshal([]byte(parsedJSON), &parsedRows); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid parsed data")
		}

		col, err := app.FindCollectionByNameOrId("measurement_rows")
		if err != nil {
			log.Printf("import: could not find measurement_rows collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		sortOrder := nextSortOrder(app, estimate.Id, string(kind))
		save := func(set func(r *core.Record)) error {
			r := core.NewRecord(col)
			r.Set("estimate", estimate.Id)
			r.Set("table_kind", string(kind))
			r.Set("sort_order", sortOrder)
			sortOrder++
			set(r)
			return app.Save(r)
		}

		var imported int
		if services.GeometryTable(kind) {
			for _, g := range services.ImportedGeometryRows(parsedRows) {
				if err := save(func(r *core.Record) {
					r.Set("location", g.Location)
					r.Set("width", g.Width)
					r.Set("height", g.Height)
				}); err != nil {
					log.Printf("import: save geometry row: %v", err)
					return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
				}
				imported++
			}
		} else {
			for _, m := range services.ImportedMeasurementRows(parsedRows) {
				if err := save(func(r *core.Record) {
					r.Set("location", m.Location)
					r.Set("item_type", m.ItemType)
					r.Set("quantity", m.Quantity)
				}); err != nil {
					log.Printf("import: save measurement row: %v", err)
					return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
				}
				imported++
			}
		}

		SetToast(e, "success", fmt.Sprintf("%d rows imported", imported))
		e.Response.Header().Set("HX-Redirect", "/estimates/"+estimate.Id)
		return e.NoContent(http.StatusOK)
	}
}

// HandleImportErrorReport downloads the validation errors as an Excel file.
// Route: POST /estimates/{estimateId}/import/{kind}/errors
func HandleImportErrorReport(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		_, kind, err := importTarget(e, app)
		if err != nil {
			return err
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		var validationErrors []services.ValidationError
		if err := json.Unmarshal([]byte(e.Request.FormValue("errors_json")), &validationErrors); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid error data")
		}

		xlsxBytes, err := services.GenerateErrorReport(validationErrors)
		if err != nil {
			log.Printf("import: GenerateErrorReport: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("%s_Errors_%s.xlsx",
			safeLabel(services.TableLabel(kind)), time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}
