package income

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	"github.com/frahmantamala/restaurant-ledger/internal/transport"
	"github.com/frahmantamala/restaurant-ledger/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Income, error)
	ListBetween(ctx context.Context, from, to datamodel.Date) ([]*Income, error)
	Get(ctx context.Context, id int64) (*Income, error)
	Create(ctx context.Context, dto CreateIncomeDTO) (*Income, error)
	Update(ctx context.Context, id int64, dto CreateIncomeDTO) (*Income, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListIncome)
	r.Post("/", h.CreateIncome)
	r.Get("/{id}", h.GetIncome)
	r.Put("/{id}", h.UpdateIncome)
	r.Delete("/{id}", h.DeleteIncome)
}

func (h *Handler) ListIncome(w http.ResponseWriter, r *http.Request) {
	incomes, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListIncome: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, IncomesResponse{Incomes: incomes})
}

func (h *Handler) GetIncome(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	inc, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.Logger.Error("GetIncome: service error", "error", err, "income_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var dto CreateIncomeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("CreateIncome: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	inc, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateIncome: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateIncome: income created successfully", "income_id", inc.ID, "date", inc.Date)
	h.WriteJSON(w, http.StatusCreated, inc)
}

func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto CreateIncomeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("UpdateIncome: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	inc, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateIncome: service error", "error", err, "income_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteIncome: service error", "error", err, "income_id", id)
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
