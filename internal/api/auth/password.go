package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	dto "shop_backend/internal/api/dto/auth"
	"shop_backend/internal/service"
	"shop_backend/pkg/req"
)

// ForgotPassword запускает поток сброса пароля.
// Ответ одинаков для известного и неизвестного email
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ForgotPasswordRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if payload.Email == "" || payload.ClientURI == "" {
		http.Error(w, "email and clientURI are required", http.StatusBadRequest)
		return
	}

	if err := h.serv.ForgotPassword(r.Context(), payload.Email, payload.ClientURI); err != nil {
		h.logger.Error("forgot password failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetPassword потребляет одноразовый токен из письма и меняет пароль
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ResetPasswordRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if payload.Email == "" || payload.Token == "" || payload.Password == "" {
		http.Error(w, "email, token and password are required", http.StatusBadRequest)
		return
	}
	if payload.Password != payload.ConfirmPassword {
		http.Error(w, "password and confirmation password mismatch", http.StatusBadRequest)
		return
	}

	err = h.serv.ResetPassword(r.Context(), payload.Email, payload.Token, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			http.Error(w, service.ErrInvalidResetToken.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("reset password failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
