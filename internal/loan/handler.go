package loan

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/levkatan/lending-management/internal/auth"
	"github.com/levkatan/lending-management/internal/transport"
	"github.com/levkatan/lending-management/pkg/logger"
)

type ServiceAPI interface {
	Borrow(userID int64, dto CreateBorrowDTO) (*BorrowRequest, error)
	ListMine(userID int64) ([]*BorrowRequest, error)
	ListPending() ([]*BorrowRequest, error)
	Approve(id int64) (*BorrowRequest, error)
	Reject(id int64) (*BorrowRequest, error)
	Return(id int64, requesterID int64, isStaff bool) (*BorrowRequest, error)
	RequestExtension(borrowID int64, requesterID int64, dto ExtensionDTO) (*ExtensionRequest, error)
	ListPendingExtensions() ([]*ExtensionRequest, error)
	ApproveExtension(id int64) (*ExtensionRequest, error)
	RejectExtension(id int64) (*ExtensionRequest, error)
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

func (h *Handler) CreateBorrow(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateBorrowDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.Service.Borrow(principal.ID, dto)
	if err != nil {
		h.Logger.Error("CreateBorrow: service error", "error", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "borrow request submitted",
		"request": request,
	})
}

func (h *Handler) ListMyBorrows(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	requests, err := h.Service.ListMine(principal.ID)
	if err != nil {
		h.Logger.Error("ListMyBorrows: service error", "error", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (h *Handler) ListPendingBorrows(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListPending()
	if err != nil {
		h.Logger.Error("ListPendingBorrows: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (h *Handler) ApproveBorrow(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "invalid request ID")
	if !ok {
		return
	}

	request, err := h.Service.Approve(id)
	if err != nil {
		h.Logger.Error("ApproveBorrow: service error", "error", err, "request_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "borrow request approved",
		"request": request,
	})
}

func (h *Handler) RejectBorrow(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "invalid request ID")
	if !ok {
		return
	}

	request, err := h.Service.Reject(id)
	if err != nil {
		h.Logger.Error("RejectBorrow: service error", "error", err, "request_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "borrow request rejected",
		"request": request,
	})
}

func (h *Handler) ReturnBorrow(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := h.pathID(w, r, "invalid request ID")
	if !ok {
		return
	}

	request, err := h.Service.Return(id, principal.ID, principal.IsStaff())
	if err != nil {
		h.Logger.Error("ReturnBorrow: service error", "error", err, "request_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "loan returned",
		"request": request,
	})
}

func (h *Handler) RequestExtension(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := h.pathID(w, r, "invalid request ID")
	if !ok {
		return
	}

	var dto ExtensionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	extension, err := h.Service.RequestExtension(id, principal.ID, dto)
	if err != nil {
		h.Logger.Error("RequestExtension: service error", "error", err, "request_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "extension request submitted",
		"extension": extension,
	})
}

func (h *Handler) ListPendingExtensions(w http.ResponseWriter, r *http.Request) {
	extensions, err := h.Service.ListPendingExtensions()
	if err != nil {
		h.Logger.Error("ListPendingExtensions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"extensions": extensions})
}

func (h *Handler) ApproveExtension(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "invalid extension ID")
	if !ok {
		return
	}

	extension, err := h.Service.ApproveExtension(id)
	if err != nil {
		h.Logger.Error("ApproveExtension: service error", "error", err, "extension_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "extension approved",
		"extension": extension,
	})
}

func (h *Handler) RejectExtension(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "invalid extension ID")
	if !ok {
		return
	}

	extension, err := h.Service.RejectExtension(id)
	if err != nil {
		h.Logger.Error("RejectExtension: service error", "error", err, "extension_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "extension rejected",
		"extension": extension,
	})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, msg string) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}
