package purchase

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	"github.com/frahmantamala/restaurant-ledger/internal/transport"
	"github.com/frahmantamala/restaurant-ledger/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Purchase, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*Purchase, error)
	ListByExpenseDate(ctx context.Context, from, to datamodel.Date) ([]*Purchase, error)
	Get(ctx context.Context, id int64) (*Purchase, error)
	Create(ctx context.Context, dto CreatePurchaseDTO) (*Purchase, error)
	Update(ctx context.Context, id int64, dto CreatePurchaseDTO) (*Purchase, error)
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
	r.Get("/", h.ListPurchases)
	r.Post("/", h.CreatePurchase)
	r.Get("/{id}", h.GetPurchase)
	r.Put("/{id}", h.UpdatePurchase)
	r.Delete("/{id}", h.DeletePurchase)
}

func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListPurchases: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, PurchasesResponse{Purchases: purchases})
}

func (h *Handler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.Logger.Error("GetPurchase: service error", "error", err, "purchase_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var dto CreatePurchaseDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("CreatePurchase: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreatePurchase: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreatePurchase: purchase created successfully", "purchase_id", p.ID, "expense_id", p.ExpenseID)
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto CreatePurchaseDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("UpdatePurchase: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdatePurchase: service error", "error", err, "purchase_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeletePurchase: service error", "error", err, "purchase_id", id)
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
