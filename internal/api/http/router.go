package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository"
	"fashionswap-backend/internal/security"
	"fashionswap-backend/internal/service"
	"fashionswap-backend/internal/storage"
	"fashionswap-backend/internal/utils"
)

// Pinger reports database health; *sql.DB and *postgres.Store satisfy it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	listingSvc     service.ListingService
	images         storage.ImageStore
	tokens         security.TokenManager
	db             Pinger
	maxUploadBytes int64
}

func NewHandler(listingSvc service.ListingService, images storage.ImageStore, tokens security.TokenManager, db Pinger, maxUploadBytes int64) *Handler {
	return &Handler{
		listingSvc:     listingSvc,
		images:         images,
		tokens:         tokens,
		db:             db,
		maxUploadBytes: maxUploadBytes,
	}
}

// Router registers the HTTP endpoints that sit beside the gRPC API
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/listings/{id}/quote", h.Quote).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/images", h.requireWallet(h.UploadImage)).Methods(http.MethodPut, http.MethodPost)
	router.HandleFunc("/api/v1/images/{key}", h.GetImage).Methods(http.MethodGet)
	router.Use(logRequests)
	return router
}

type walletKey struct{}

// requireWallet validates the bearer token and stores the caller's wallet
// address in the request context.
func (h *Handler) requireWallet(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}
		claims, err := h.tokens.ValidateToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), walletKey{}, claims.Address)))
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrInvalidArgument), errors.Is(err, storage.ErrUnsupportedImage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("HTTP handler failed", "error", err)
		writeError(w, code, "internal error")
		return
	}
	writeError(w, code, err.Error())
}
