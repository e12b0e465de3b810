package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/storage"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type quoteResponse struct {
	ItemID string             `json:"item_id"`
	Quote  domain.RentalQuote `json:"quote"`
}

// Quote handles GET /api/v1/listings/{id}/quote?days=N.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "days must be an integer")
		return
	}

	listing, quote, err := h.listingSvc.Quote(r.Context(), mux.Vars(r)["id"], days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{ItemID: listing.ID, Quote: quote})
}

// UploadImage handles PUT /api/v1/images. The body is the raw photo; the
// response carries the URL to set as a listing's image_url.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	processed, err := storage.Process(data)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	key, err := h.images.Save(r.Context(), processed)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	owner, _ := r.Context().Value(walletKey{}).(string)
	logger.Info("Listing image uploaded", "owner", owner, "key", key, "size", len(processed))
	writeJSON(w, http.StatusCreated, map[string]string{"key": key, "image_url": h.images.URL(key)})
}

// GetImage handles GET /api/v1/images/{key}.
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	rc, err := h.images.Open(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	// Keys are content hashes, so the bytes behind a key never change.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, rc); err != nil {
		logger.Warn("Failed to stream image", "error", err)
	}
}
