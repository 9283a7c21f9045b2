package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/middleware"
)

// Routes holds the handlers mounted by NewRouter. Auth and Presets are
// optional; their routes are only registered when a database is available.
type Routes struct {
	Generator *GeneratorHandler
	Auth      *AuthHandler
	Presets   *PresetHandler

	Tokens  *crypto.TokenIssuer
	Limiter *middleware.IPRateLimiter
}

// NewRouter builds the API router.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/v1/classes", rt.Generator.HandleClasses)

	r.Group(func(r chi.Router) {
		if rt.Limiter != nil {
			r.Use(middleware.RateLimit(rt.Limiter))
		}
		r.Post("/api/v1/generate", rt.Generator.HandleGenerate)
		if rt.Auth != nil {
			r.Post("/api/v1/auth/register", rt.Auth.HandleRegister)
			r.Post("/api/v1/auth/login", rt.Auth.HandleLogin)
		}
	})

	if rt.Auth == nil || rt.Tokens == nil {
		return r
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(rt.Tokens))
		r.Get("/api/v1/auth/me", rt.Auth.HandleMe)

		if rt.Presets != nil {
			r.Get("/api/v1/presets", rt.Presets.HandleList)
			r.Post("/api/v1/presets", rt.Presets.HandleCreate)
			r.Delete("/api/v1/presets/{preset_id}", rt.Presets.HandleDelete)
			r.Post("/api/v1/presets/{preset_id}/generate", rt.Presets.HandleGenerate)
		}
	})

	return r
}
