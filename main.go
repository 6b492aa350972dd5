package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/collections"
	"estimatecalc/handlers"
	"estimatecalc/services"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// The price book is loaded once at startup; edits to catalog_items
		// take effect on restart.
		c := services.LoadCatalog(app)

		// ── Estimate CRUD ────────────────────────────────────────
		se.Router.GET("/estimates", handlers.HandleEstimateList(app, c))
		se.Router.GET("/estimates/new", handlers.HandleEstimateNew(app, c))
		se.Router.POST("/estimates", handlers.HandleEstimateCreate(app, c))
		se.Router.GET("/estimates/{estimateId}", handlers.HandleEstimateView(app, c))
		se.Router.PATCH("/estimates/{estimateId}", handlers.HandleEstimateUpdate(app, c))
		se.Router.DELETE("/estimates/{estimateId}", handlers.HandleEstimateDelete(app, c))

		// ── Measurement rows ─────────────────────────────────────
		se.Router.POST("/estimates/{estimateId}/rows/{kind}", handlers.HandleRowAdd(app, c))
		se.Router.PATCH("/measurements/{rowId}", handlers.HandleRowPatch(app, c))
		se.Router.DELETE("/measurements/{rowId}", handlers.HandleRowDelete(app, c))

		// ── Standalone items & totals ────────────────────────────
		se.Router.POST("/estimates/{estimateId}/misc", handlers.HandleMiscSet(app, c))
		se.Router.GET("/estimates/{estimateId}/totals", handlers.HandleTotalsPartial(app, c))

		// ── Export ───────────────────────────────────────────────
		se.Router.GET("/estimates/{estimateId}/export/pdf", handlers.HandleExportPDF(app, c))
		se.Router.GET("/estimates/{estimateId}/export/excel", handlers.HandleExportExcel(app, c))

		// ── Measurement import ───────────────────────────────────
		se.Router.GET("/estimates/{estimateId}/import/{kind}", handlers.HandleImportPage(app, c))
		se.Router.POST("/estimates/{estimateId}/import/{kind}", handlers.HandleImportValidate(app, c))
		se.Router.GET("/estimates/{estimateId}/import/{kind}/template", handlers.HandleImportTemplate(app, c))
		se.Router.POST("/estimates/{estimateId}/import/{kind}/commit", handlers.HandleImportCommit(app, c))
		se.Router.POST("/estimates/{estimateId}/import/{kind}/errors", handlers.HandleImportErrorReport(app, c))

		// Redirect home to the estimates list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/estimates")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
