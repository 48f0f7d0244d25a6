package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dukerupert/shoplisl/internal/colorfilter"
	"github.com/dukerupert/shoplisl/internal/shopping"
)

// maxBodyBytes caps request bodies; seed requests are the largest.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error      string   `json:"error"`
	Code       string   `json:"code,omitempty"`
	ExistingID string   `json:"existingId,omitempty"`
	Lists      []string `json:"lists,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// writeError maps service errors onto HTTP responses. Store failures are
// logged and reported without detail.
func writeError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	var (
		dup     *shopping.DuplicateNameError
		active  *shopping.ArticleActiveInListsError
		invalid *shopping.ValidationError
	)
	switch {
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:      err.Error(),
			Code:       "duplicate_name",
			ExistingID: dup.ExistingID,
		})
	case errors.As(err, &active):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: err.Error(),
			Code:  "article_active",
			Lists: active.ListNames,
		})
	case errors.As(err, &invalid):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, colorfilter.ErrInvalidColor):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shopping.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, context.Canceled):
		logger.Debug("request canceled", "op", op)
	default:
		logger.Error("request failed", "op", op, "error", err)
		writeMessage(w, http.StatusInternalServerError, "failed to "+op)
	}
}
