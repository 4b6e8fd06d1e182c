package http

import (
	"net/http"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/export"
	applog "expensetracker/internal/log"
	"expensetracker/internal/report"
)

type indexData struct {
	Summary   report.Summary
	Form      formValues
	DarkMode  bool
	StartDate string
	EndDate   string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)
	now := s.now()

	dark, err := s.prefs.DarkMode(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Theme read failed, using light theme", applog.FieldError, err)
	}

	q := r.URL.Query()
	data := indexData{
		Summary: report.Summarize(s.store.All(), now),
		Form: formValues{
			Date:   q.Get("date"),
			Item:   q.Get("item"),
			Amount: q.Get("amount"),
		},
		DarkMode:  dark,
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
	}
	if data.Form.Date == "" {
		data.Form.Date = core.FormatDate(now)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		logger.ErrorContext(ctx, "Index template execution failed", applog.FieldError, err, "template", "index.html")
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		logger.WarnContext(ctx, "Parse form error", applog.FieldError, err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	date := strings.TrimSpace(r.PostForm.Get("date"))
	item := sanitizeInput(r.PostForm.Get("item"))
	amount := core.ParseAmount(r.PostForm.Get("amount"))

	id, err := s.store.Create(ctx, date, item, amount)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to save expense", applog.NewFields().
			WithOperation(applog.OpCreate).
			WithExpense(id, date, amount).
			WithError(err).
			ToSlice()...)
		http.Error(w, "could not save expense", http.StatusInternalServerError)
		return
	}

	logger.InfoContext(ctx, "Expense created", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithExpense(id, date, amount).
		ToSlice()...)
	redirectHome(w, r, "")
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	id, ok := parseID(r)
	if !ok {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}

	if err := s.store.Delete(ctx, id); err != nil {
		logger.ErrorContext(ctx, "Failed to delete expense",
			applog.FieldOperation, applog.OpDelete, applog.FieldExpenseID, id, applog.FieldError, err)
		http.Error(w, "could not delete expense", http.StatusInternalServerError)
		return
	}
	redirectHome(w, r, "")
}

// handleEditExpense loads the record into the entry form and removes it
// right away. Submitting the form creates a new record with a new id.
func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	id, ok := parseID(r)
	if !ok {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}

	e, found := s.store.Find(id)
	if !found {
		redirectHome(w, r, "")
		return
	}
	if err := s.store.Delete(ctx, id); err != nil {
		logger.ErrorContext(ctx, "Failed to remove expense for editing",
			applog.FieldOperation, applog.OpUpdate, applog.FieldExpenseID, id, applog.FieldError, err)
		http.Error(w, "could not edit expense", http.StatusInternalServerError)
		return
	}

	redirectHome(w, r, prefillQuery(formValues{
		Date:   e.Date,
		Item:   e.Item,
		Amount: core.FormatAmount(e.Amount),
	}))
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	records := s.store.All()
	var body string
	if q := r.URL.Query(); q.Has("start") || q.Has("end") {
		body = s.exporter.ExportRange(records, q.Get("start"), q.Get("end"))
	} else {
		body = s.exporter.ExportAll(records)
	}

	if err := export.Download(w, body); err != nil {
		logger.WarnContext(ctx, "CSV download interrupted", applog.FieldOperation, applog.OpExport, applog.FieldError, err)
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	records := s.store.All()
	if q := r.URL.Query(); q.Has("start") || q.Has("end") {
		records = export.InRange(records, q.Get("start"), q.Get("end"))
	}

	body, err := export.ToXLSX(records)
	if err != nil {
		logger.ErrorContext(ctx, "XLSX export failed", applog.FieldOperation, applog.OpExport, applog.FieldError, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	if err := export.DownloadXLSX(w, body); err != nil {
		logger.WarnContext(ctx, "XLSX download interrupted", applog.FieldOperation, applog.OpExport, applog.FieldError, err)
	}
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	dark, err := s.prefs.ToggleDarkMode(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Theme toggle failed", applog.FieldOperation, applog.OpTheme, applog.FieldError, err)
		http.Error(w, "could not save theme", http.StatusInternalServerError)
		return
	}
	logger.DebugContext(ctx, "Theme toggled", "dark_mode", dark)
	redirectHome(w, r, "")
}
