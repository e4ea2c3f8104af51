package ui

import (
	"errors"
	"html/template"
	"io"
	"net/http"

	"siteboard/adapters/tabular"
	"siteboard/domain/core"
	"siteboard/domain/docs"
	"siteboard/domain/metrics"
	"siteboard/domain/table"
	apperrors "siteboard/internal/errors"
)

// uploadField is the multipart form field carrying the file on every page
const uploadField = "dataset"

type hrPageData struct {
	Title    string
	Active   string
	Error    string
	Report   *metrics.HRReport
	Insights template.HTML
}

type financialPageData struct {
	Title  string
	Active string
	Error  string
	Report *metrics.FinancialReport
}

type constructionPageData struct {
	Title  string
	Active string
	Error  string
	Report *metrics.ConstructionReport
}

type documentsPageData struct {
	Title    string
	Active   string
	Query    string
	Searched bool
	Results  []docs.Document
	All      []docs.Document
}

func (a *App) handleHRPage(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "hr.html", hrPageData{
		Title:  "HR Report",
		Active: "hr",
	})
}

func (a *App) handleFinancialPage(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "financial.html", financialPageData{
		Title:  "Financial Dashboard",
		Active: "financial",
	})
}

func (a *App) handleConstructionPage(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "construction.html", constructionPageData{
		Title:  "Construction Metrics",
		Active: "construction",
	})
}

func (a *App) handleDocumentsPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	data := documentsPageData{
		Title:    "File Explorer",
		Active:   "documents",
		Query:    query,
		Searched: query != "",
		All:      a.searcher.All(),
	}
	if data.Searched {
		data.Results = a.searcher.Search(query)
	}
	a.renderTemplate(w, "documents.html", data)
}

// tableFromUpload reads the multipart file, validates size and extension
// and loads it through the memoizing loader
func (a *App) tableFromUpload(r *http.Request) (*table.Table, error) {
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, apperrors.InvalidInput("no file uploaded")
	}
	defer file.Close()

	if header.Size > a.cfg.Upload.MaxBytes {
		return nil, apperrors.InvalidInput("uploaded file exceeds the size limit")
	}

	format, err := tabular.FormatForFilename(header.Filename)
	if err != nil {
		return nil, apperrors.InvalidInput("only CSV and Excel files are supported")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.Wrapf(err, "could not read %s", header.Filename)
	}

	t, err := a.loader.Load(data, format)
	if err != nil {
		return nil, apperrors.LoadFailed(err)
	}

	id := core.NewUploadID()
	a.logger.Info("upload %s: %s, %d rows", id, header.Filename, t.NumRows())
	return t, nil
}

// logUploadError keeps expected data problems quiet; only unclassified
// failures escalate past info level
func (a *App) logUploadError(profile string, err error) {
	if core.IsLoadError(err) || core.IsColumnError(err) {
		a.logger.Info("%s upload rejected: %v", profile, err)
		return
	}
	a.logger.Warn("%s upload: %v", profile, err)
}

// userMessage flattens any pipeline error into the single non-fatal page
// message; the page stays usable for a new upload
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return appErr.Message + ": " + appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}

// reportFromUpload is the shared upload-then-derive step; deriver runs the
// domain profile against the loaded table
func reportFromUpload[R any](a *App, r *http.Request, profile string, deriver func(*table.Table) (R, error)) (R, error) {
	var zero R
	t, err := a.tableFromUpload(r)
	if err != nil {
		return zero, err
	}
	rep, err := deriver(t)
	if err != nil {
		return zero, apperrors.ProfileFailed(profile, err)
	}
	return rep, nil
}
