package ui

import (
	"net/http"

	"github.com/go-chi/render"

	apperrors "siteboard/internal/errors"
	"siteboard/internal/profiles"
)

// errResponse is the JSON error envelope
type errResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errResponse{Error: userMessage(err), Code: apperrors.GetCode(err)})
}

func (a *App) handleHRMetricsJSON(w http.ResponseWriter, r *http.Request) {
	rep, err := reportFromUpload(a, r, "hr", profiles.HR)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, rep)
}

func (a *App) handleFinancialMetricsJSON(w http.ResponseWriter, r *http.Request) {
	rep, err := reportFromUpload(a, r, "financial", profiles.Financial)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, rep)
}

func (a *App) handleConstructionMetricsJSON(w http.ResponseWriter, r *http.Request) {
	rep, err := reportFromUpload(a, r, "construction", profiles.Construction)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, rep)
}

func (a *App) handleDocumentsJSON(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		render.JSON(w, r, a.searcher.All())
		return
	}
	render.JSON(w, r, a.searcher.Search(term))
}
