package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ectopass/vault/internal/middleware"
	"github.com/ectopass/vault/internal/model"
	"github.com/ectopass/vault/internal/service"
)

// VaultHandler handles HTTP requests for password operations.
type VaultHandler struct {
	service *service.VaultService
}

// NewVaultHandler creates a new VaultHandler.
func NewVaultHandler(svc *service.VaultService) *VaultHandler {
	return &VaultHandler{service: svc}
}

// HandleList handles GET /api/v1/passwords requests.
func (h *VaultHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	entries, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, service.ErrVaultNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		slog.Error("list passwords failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// HandleAdd handles POST /api/v1/passwords requests. Add never updates an
// existing entry.
func (h *VaultHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.AddPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.service.Add(r.Context(), ownerID, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDataRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			slog.Error("add password failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleUpdate handles PUT /api/v1/passwords requests. Update never creates
// an entry; an unknown id is a 404.
func (h *VaultHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.UpdatePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.service.Update(r.Context(), ownerID, req.ID, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrDataRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrVaultNotFound), errors.Is(err, service.ErrEntryNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			slog.Error("update password failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleDelete handles DELETE /api/v1/passwords requests, returning the
// removed entry's snapshot.
func (h *VaultHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.DeletePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.service.Delete(r.Context(), ownerID, req.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIDRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrVaultNotFound), errors.Is(err, service.ErrEntryNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			slog.Error("delete password failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// decodeBody decodes a size-limited JSON request body into dst, writing the
// error response itself when decoding fails.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}
