package main

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/siahsang/blogapi/internal/apperror"
	"github.com/siahsang/blogapi/internal/auth"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/filter"
)

const requestIDHeader = "X-Request-Id"

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.internalErrorResponse(w, r, fmt.Errorf("%v", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		app.logger.Info("Request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// enableCORS echoes the request origin when it is allowed. An empty origin list
// allows nothing unless AllowAll is set.
func (app *application) enableCORS(next http.Handler) http.Handler {
	allowAll, origins := app.config.CORS.AllowAll, app.config.CORS.AllowedOrigins

	opts := cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return allowAll || slices.Contains(origins, origin)
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   filter.ExposedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	}
	return cors.Handler(opts)(next)
}

// authGuard resolves the bearer token to a user and stores it in the request context.
func (app *application) authGuard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		token = strings.TrimSpace(token)
		if !ok || scheme != "Bearer" || token == "" {
			app.errorResponse(w, r, apperror.NoToken())
			return
		}

		claim, err := app.auth.Authenticate(token)
		if err != nil {
			app.errorResponse(w, r, apperror.TokenInvalid(err))
			return
		}

		user, err := app.core.GetUserByID(r.Context(), claim.ID)
		if err != nil {
			if core.IsNotFound(err) {
				app.errorResponse(w, r, apperror.TokenInvalid(err))
				return
			}
			app.internalErrorResponse(w, r, err)
			return
		}

		next(w, auth.SetAuthenticatedUser(r, user))
	}
}

// adminGuard must run after authGuard.
func (app *application) adminGuard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetAuthenticatedUser(r)
		if err != nil || !user.Admin {
			app.errorResponse(w, r, apperror.NotAdmin())
			return
		}
		next(w, r)
	}
}

func (app *application) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return app.authGuard(app.adminGuard(next))
}
