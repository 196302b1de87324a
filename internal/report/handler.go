package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/frahmantamala/restaurant-ledger/internal"
	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	"github.com/frahmantamala/restaurant-ledger/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Generate(ctx context.Context, from, to datamodel.Date) (*Summary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.GetReport)
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/export.xlsx", h.ExportXLSX)
}

// ParseWindow reads ?from=&to= as YYYY-MM-DD; missing values stay empty.
func ParseWindow(r *http.Request) (datamodel.Date, datamodel.Date, error) {
	q := r.URL.Query()
	var bounds [2]datamodel.Date
	for i, key := range []string{"from", "to"} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		d, err := datamodel.ParseDate(raw)
		if err != nil {
			return "", "", internal.NewValidationFieldError(key, err.Error(), internal.ErrCodeInvalidDate)
		}
		bounds[i] = d
	}
	return bounds[0], bounds[1], nil
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) (*Summary, bool) {
	from, to, err := ParseWindow(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return nil, false
	}

	summary, err := h.Service.Generate(r.Context(), from, to)
	if err != nil {
		h.Logger.Error("report: failed to generate", "error", err, "from", from, "to", to)
		h.HandleServiceError(w, err)
		return nil, false
	}
	return summary, true
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.generate(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.generate(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", CSVMediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", summary.Filename("csv")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(summary.CSV()); err != nil {
		h.Logger.Error("ExportCSV: failed to write response", "error", err)
	}
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.generate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := summary.WriteXLSX(&buf); err != nil {
		h.Logger.Error("ExportXLSX: failed to build workbook", "error", err)
		h.HandleServiceError(w, internal.NewInternalError("failed to build workbook", err))
		return
	}

	w.Header().Set("Content-Type", XLSXMediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", summary.Filename("xlsx")))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("ExportXLSX: failed to write response", "error", err)
	}
}
