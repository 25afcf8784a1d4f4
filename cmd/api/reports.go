package main

import (
	"net/http"
)

// revenueHandler godoc
//
//	@Summary		Revenue report
//	@Description	Lifetime and today's revenue plus the full ledger of completed orders
//	@Tags			admin-reports
//	@Produce		json
//	@Success		200	{object}	service.RevenueReport
//	@Failure		401	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/admin/reports/revenue [get]
func (app *application) revenueHandler(w http.ResponseWriter, r *http.Request) {
	report, err := app.reportService.Revenue(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, report); err != nil {
		app.internalServerError(w, r, err)
	}
}

// statsHandler godoc
//
//	@Summary		Dashboard statistics
//	@Description	Order counts by state bucket and total revenue
//	@Tags			admin-reports
//	@Produce		json
//	@Success		200	{object}	service.Stats
//	@Failure		401	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/admin/reports/stats [get]
func (app *application) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.reportService.Stats(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}
