package ui

import (
	"net/http"

	"siteboard/internal/profiles"
)

func (a *App) handleHRUpload(w http.ResponseWriter, r *http.Request) {
	data := hrPageData{Title: "HR Report", Active: "hr"}
	rep, err := reportFromUpload(a, r, "hr", profiles.HR)
	if err != nil {
		a.logUploadError("hr", err)
		data.Error = userMessage(err)
	} else {
		data.Report = rep
		data.Insights = renderInsights()
	}
	a.renderTemplate(w, "hr.html", data)
}

func (a *App) handleFinancialUpload(w http.ResponseWriter, r *http.Request) {
	data := financialPageData{Title: "Financial Dashboard", Active: "financial"}
	rep, err := reportFromUpload(a, r, "financial", profiles.Financial)
	if err != nil {
		a.logUploadError("financial", err)
		data.Error = userMessage(err)
	} else {
		data.Report = rep
	}
	a.renderTemplate(w, "financial.html", data)
}

func (a *App) handleConstructionUpload(w http.ResponseWriter, r *http.Request) {
	data := constructionPageData{Title: "Construction Metrics", Active: "construction"}
	rep, err := reportFromUpload(a, r, "construction", profiles.Construction)
	if err != nil {
		a.logUploadError("construction", err)
		data.Error = userMessage(err)
	} else {
		data.Report = rep
	}
	a.renderTemplate(w, "construction.html", data)
}

func (a *App) handleHRExport(w http.ResponseWriter, r *http.Request) {
	rep, err := reportFromUpload(a, r, "hr", profiles.HR)
	if err != nil {
		http.Error(w, userMessage(err), http.StatusBadRequest)
		return
	}
	setWorkbookHeaders(w, "hr_report.xlsx")
	if err := a.exporter.WriteHR(w, rep); err != nil {
		a.logger.Error("hr export: %v", err)
	}
}

func (a *App) handleFinancialExport(w http.ResponseWriter, r *http.Request) {
	rep, err := reportFromUpload(a, r, "financial", profiles.Financial)
	if err != nil {
		http.Error(w, userMessage(err), http.StatusBadRequest)
		return
	}
	setWorkbookHeaders(w, "financial_report.xlsx")
	if err := a.exporter.WriteFinancial(w, rep); err != nil {
		a.logger.Error("financial export: %v", err)
	}
}

func (a *App) handleConstructionExport(w http.ResponseWriter, r *http.Request) {
	rep, err := reportFromUpload(a, r, "construction", profiles.Construction)
	if err != nil {
		http.Error(w, userMessage(err), http.StatusBadRequest)
		return
	}
	setWorkbookHeaders(w, "construction_report.xlsx")
	if err := a.exporter.WriteConstruction(w, rep); err != nil {
		a.logger.Error("construction export: %v", err)
	}
}

func setWorkbookHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
}
