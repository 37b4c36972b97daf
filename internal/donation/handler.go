package donation

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/levkatan/lending-management/internal/auth"
	"github.com/levkatan/lending-management/internal/product"
	"github.com/levkatan/lending-management/internal/transport"
	"github.com/levkatan/lending-management/pkg/logger"
)

type ServiceAPI interface {
	Create(userID int64, dto CreateDonationDTO) (*DonationRequest, error)
	ListMine(userID int64) ([]*DonationRequest, error)
	ListPending() ([]*DonationRequest, error)
	Approve(id int64) (*DonationRequest, *product.Product, error)
	Reject(id int64) error
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

func (h *Handler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateDonationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	donation, err := h.Service.Create(principal.ID, dto)
	if err != nil {
		h.Logger.Error("CreateDonation: service error", "error", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "donation request submitted",
		"donation": donation,
	})
}

func (h *Handler) ListMyDonations(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	donations, err := h.Service.ListMine(principal.ID)
	if err != nil {
		h.Logger.Error("ListMyDonations: service error", "error", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"donations": donations})
}

func (h *Handler) ListPendingDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.Service.ListPending()
	if err != nil {
		h.Logger.Error("ListPendingDonations: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"donations": donations})
}

func (h *Handler) ApproveDonation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.donationID(w, r)
	if !ok {
		return
	}

	donation, created, err := h.Service.Approve(id)
	if err != nil {
		h.Logger.Error("ApproveDonation: service error", "error", err, "donation_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "donation approved",
		"donation": donation,
		"product":  created,
	})
}

func (h *Handler) RejectDonation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.donationID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Reject(id); err != nil {
		h.Logger.Error("RejectDonation: service error", "error", err, "donation_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "donation rejected"})
}

func (h *Handler) donationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid donation ID")
		return 0, false
	}
	return id, true
}
