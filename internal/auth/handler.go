package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/levkatan/lending-management/internal"
	"github.com/levkatan/lending-management/internal/transport"
	"github.com/levkatan/lending-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "error", err, "email", dto.Email)

		switch {
		case err == internal.ErrDuplicateIdentity:
			h.WriteError(w, http.StatusConflict, "email or username already in use")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "registered successfully",
		"userId":  userID,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case internal.ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "login successful",
		"username":      result.Username,
		"role":          result.Role,
		"token":         result.Tokens.AccessToken,
		"refresh_token": result.Tokens.RefreshToken,
	})
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch err {
		case internal.ErrInvalidToken, internal.ErrTokenExpired:
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware verifies the bearer token and stores the principal from its
// claims in the request context. The claims are trusted; there is no user
// reload per request.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.Logger.Warn("auth middleware: missing authorization token", "path", r.URL.Path)
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("auth middleware: token validation failed", "error", err, "path", r.URL.Path)
			switch err {
			case internal.ErrTokenExpired:
				h.WriteError(w, http.StatusUnauthorized, "token has expired")
			default:
				h.WriteError(w, http.StatusUnauthorized, "invalid token")
			}
			return
		}

		principal := &Principal{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		}

		ctx := ContextWithPrincipal(r.Context(), principal)
		ctx = logger.With(ctx, "user_id", principal.ID, "role", principal.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route group on the principal's role. It is the single
// authorization interceptor used by every protected surface.
func (h *Handler) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				h.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !principal.HasRole(roles...) {
				h.Logger.Warn("access denied: insufficient role",
					"user_id", principal.ID,
					"role", principal.Role,
					"required_roles", roles)
				h.WriteError(w, http.StatusForbidden, "insufficient role for this operation")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
