package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"shop_backend/internal/model"
	"shop_backend/pkg/token"
)

type ctxKey int

const claimsKey ctxKey = iota

// Auth проверяет bearer access токен (подпись, издатель, аудитория, срок)
// и кладет claims в контекст запроса. Срок действия здесь проверяется всегда.
func Auth(codec *token.Codec, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := codec.Decode(tokenStr, false)
			if err != nil {
				logger.Debug("bearer token rejected", zap.Error(err))
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims *model.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*model.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*model.UserClaims)
	return claims, ok
}

// UserIDFromContext - subject (ID аккаунта) из проверенного токена
func UserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
