package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/levkatan/lending-management/internal/transport"
	"github.com/levkatan/lending-management/pkg/logger"
)

type ServiceAPI interface {
	BorrowPolicy() (BorrowPolicy, error)
	Update(dto UpdateSettingDTO) error
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

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	policy, err := h.Service.BorrowPolicy()
	if err != nil {
		h.Logger.Error("GetSettings: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to read settings")
		return
	}

	h.WriteJSON(w, http.StatusOK, policy)
}

func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var dto UpdateSettingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Update(dto); err != nil {
		h.Logger.Error("UpdateSetting: service error", "error", err, "key", dto.Key)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "setting updated"})
}
