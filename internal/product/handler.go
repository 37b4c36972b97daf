package product

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/levkatan/lending-management/internal/transport"
	"github.com/levkatan/lending-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateProductDTO) (*Product, error)
	GetByID(id int64) (*Product, error)
	List(filter ListFilter) ([]*Product, error)
	Update(id int64, dto UpdateProductDTO) (*Product, error)
	Delete(id int64) error
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

// ListProducts is the public catalog endpoint.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	}

	products, err := h.Service.List(filter)
	if err != nil {
		h.Logger.Error("ListProducts: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	p, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetProduct: service error", "error", err, "product_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateProduct: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "product created",
		"product": p,
	})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var dto UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateProduct: service error", "error", err, "product_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "product updated",
		"product": p,
	})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteProduct: service error", "error", err, "product_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid product ID")
		return 0, false
	}
	return id, true
}
