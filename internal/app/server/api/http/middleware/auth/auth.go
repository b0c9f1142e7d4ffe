package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Auth проверяет bearer API-ключ по bcrypt-хэшу из конфигурации.
// С пустым хэшем проверка выключена.
type Auth struct {
	tokenHash []byte
	log       *slog.Logger
}

func New(tokenHash string, log *slog.Logger) *Auth {
	a := &Auth{
		log: log.With("component", "auth_middleware"),
	}
	if tokenHash != "" {
		a.tokenHash = []byte(tokenHash)
	}
	return a
}

type contextKey string

const authenticatedKey contextKey = "authenticated"

// Enabled включена ли проверка ключа
func (a *Auth) Enabled() bool {
	return len(a.tokenHash) > 0
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !a.Enabled() {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			a.log.Warn("missing bearer token", "path", ctx.URL().Path)
			a.unauthorized(ctx)
			return
		}

		if err := bcrypt.CompareHashAndPassword(a.tokenHash, []byte(token)); err != nil {
			a.log.Warn("invalid api token", "path", ctx.URL().Path)
			a.unauthorized(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), authenticatedKey, true)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(http.StatusUnauthorized)

	err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"status": "Error",
		"error":  "Unauthorized",
	})
	if err != nil {
		a.log.Error("failed to write response", "error", err)
	}
}

// IsAuthenticated запрос прошел проверку ключа
func IsAuthenticated(ctx context.Context) bool {
	ok, _ := ctx.Value(authenticatedKey).(bool)
	return ok
}
