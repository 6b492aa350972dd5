package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
)

// buildDocForExport loads an estimate, assembles its document data and
// reports missing customer fields as a user-visible error.
func buildDocForExport(e *core.RequestEvent, app *pocketbase.PocketBase, c *services.Catalog) (*core.Record, services.EstimateDocData, error) {
	estimate, err := app.FindRecordById("estimates", e.Request.PathValue("estimateId"))
	if err != nil {
		return nil, services.EstimateDocData{}, ErrorToast(e, http.StatusNotFound, "Estimate not found")
	}

	in, err := loadEstimateInput(app, estimate)
	if err != nil {
		log.Printf("export: %v", err)
		return nil, services.EstimateDocData{}, ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}

	doc, err := services.BuildEstimateDoc(c, in, customerFromRecord(estimate),
		estimate.GetBool("repair"), estimate.GetBool("rigging"), time.Now())
	if err != nil {
		// Missing customer fields block document generation.
		return nil, services.EstimateDocData{}, ErrorToast(e, http.StatusBadRequest,
			"Please complete the customer info before exporting: "+err.Error())
	}
	return estimate, doc, nil
}

// HandleExportPDF streams the estimate PDF.
// Route: GET /estimates/{estimateId}/export/pdf
func HandleExportPDF(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, doc, err := buildDocForExport(e, app, c)
		if err != nil {
			return err
		}

		pdfBytes, err := services.GeneratePDF(doc)
		if err != nil {
			log.Printf("export: GeneratePDF: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := services.EstimateFilename(
			estimate.GetString("customer_name"),
			estimate.GetString("sales_rep"),
			time.Now(), "pdf")

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(pdfBytes)
		return err
	}
}

// HandleExportExcel streams the estimate workbook.
// Route: GET /estimates/{estimateId}/export/excel
func HandleExportExcel(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, doc, err := buildDocForExport(e, app, c)
		if err != nil {
			return err
		}

		xlsxBytes, err := services.GenerateExcel(doc)
		if err != nil {
			log.Printf("export: GenerateExcel: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := services.EstimateFilename(
			estimate.GetString("customer_name"),
			estimate.GetString("sales_rep"),
			time.Now(), "xlsx")

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}
