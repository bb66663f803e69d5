package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	dto "shop_backend/internal/api/dto/auth"
	"shop_backend/internal/converter"
	"shop_backend/internal/middleware"
	"shop_backend/internal/service"
	"shop_backend/pkg/req"
	"shop_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv   service.AuthService
	Logger *zap.Logger
}

type Handler struct {
	serv   service.AuthService
	logger *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:   deps.Serv,
		logger: deps.Logger,
	}
}

// Login выдает пару access/refresh токенов по email и паролю
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	data, err := h.serv.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTokenResponse(*data))
}

// Refresh обменивает истекший access токен + refresh токен на новую пару
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.RefreshRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if payload.AccessToken == "" || payload.RefreshToken == "" {
		http.Error(w, "accessToken and refreshToken are required", http.StatusBadRequest)
		return
	}

	data, err := h.serv.Refresh(r.Context(), payload.AccessToken, payload.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			http.Error(w, service.ErrUnauthorized.Error(), http.StatusUnauthorized)
			return
		}
		h.logger.Error("refresh failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTokenResponse(*data))
}

// Revoke отзывает refresh токен аккаунта вызывающего.
// Identity берется только из проверенного access токена, тело не читается.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	err := h.serv.Revoke(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			http.Error(w, service.ErrAccountNotFound.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("revoke failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
