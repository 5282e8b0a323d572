// Package dashboard serves the report store views of the current session as JSON.
package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/dmarc-atlas/pkg/models/api"
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/de-tools/dmarc-atlas/pkg/server/middleware"
	"github.com/de-tools/dmarc-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type DomainsView struct {
	Domains []string `json:"domains"`
	Loading bool     `json:"loading"`
	Error   string   `json:"error"`
}

type SummaryView struct {
	SummaryReport *domain.SummaryReport `json:"summary_report"`
	Chart         *domain.ChartView     `json:"chart"`
	Loading       bool                  `json:"loading"`
	Error         string                `json:"error"`
}

type DetailView struct {
	DetailReport *domain.DetailReport `json:"detail_report"`
	Loading      bool                 `json:"loading"`
	Error        string               `json:"error"`
}

type Handler struct {
	sessions *Sessions
}

func NewHandler(sessions *Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) store(r *http.Request) *report.Store {
	return h.sessions.Store(middleware.SessionID(r.Context()))
}

func (h *Handler) ListDomains(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := h.store(r)

	store.FetchDomains(ctx)
	state := store.Snapshot()

	writeJSON(w, r, statusFor(state), DomainsView{
		Domains: state.Domains,
		Loading: state.Loading,
		Error:   state.Error,
	})
}

func (h *Handler) GetSummaryReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := h.store(r)
	name := chi.URLParam(r, "domain")
	start, end := requestedRange(r, store)

	store.FetchSummaryReport(ctx, name, start, end)
	state := store.Snapshot()

	writeJSON(w, r, statusFor(state), SummaryView{
		SummaryReport: state.SummaryReport,
		Chart:         store.ChartView(ctx),
		Loading:       state.Loading,
		Error:         state.Error,
	})
}

func (h *Handler) GetDetailReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := h.store(r)
	name := chi.URLParam(r, "domain")
	query := r.URL.Query()

	source := query.Get("source")
	if source == "" {
		writeError(w, r, http.StatusBadRequest, "query parameter source is required")
		return
	}
	start, end := requestedRange(r, store)

	store.FetchDetailReport(ctx, name, source, start, end, query.Get("source_type"))
	state := store.Snapshot()

	writeJSON(w, r, statusFor(state), DetailView{
		DetailReport: state.DetailReport,
		Loading:      state.Loading,
		Error:        state.Error,
	})
}

func (h *Handler) GetRange(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.store(r).SelectedRange(r.Context()))
}

func (h *Handler) PutRange(w http.ResponseWriter, r *http.Request) {
	var dr domain.DateRange
	if err := json.NewDecoder(r.Body).Decode(&dr); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date range payload")
		return
	}

	store := h.store(r)
	if err := store.SelectRange(r.Context(), dr); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, dr)
}

func (h *Handler) DeleteRange(w http.ResponseWriter, r *http.Request) {
	h.store(r).ResetRange(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearReports(w http.ResponseWriter, r *http.Request) {
	h.store(r).ClearReports()
	w.WriteHeader(http.StatusNoContent)
}

// requestedRange prefers explicit query dates and falls back to the range the
// session selected last.
func requestedRange(r *http.Request, store *report.Store) (string, string) {
	query := r.URL.Query()
	start, end := query.Get("start"), query.Get("end")
	if start == "" && end == "" {
		selected := store.SelectedRange(r.Context())
		return selected.StartDate, selected.EndDate
	}
	return start, end
}

func statusFor(state report.State) int {
	if state.Error != "" {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, api.ErrorResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
