package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/shoplisl/internal/colorfilter"
)

type filterResponse struct {
	Color string `json:"color"`
	colorfilter.Result
}

type FilterHandler struct {
	svc    *colorfilter.Service
	logger *slog.Logger
}

func NewFilterHandler(svc *colorfilter.Service, logger *slog.Logger) *FilterHandler {
	return &FilterHandler{svc: svc, logger: logger}
}

// Get returns the CSS filter that turns black into {hex}. The leading '#'
// is optional since it cannot appear unescaped in a path.
func (h *FilterHandler) Get(w http.ResponseWriter, r *http.Request) {
	hex := r.PathValue("hex")
	result, err := h.svc.Filter(r.Context(), hex)
	if err != nil {
		writeError(w, h.logger, "solve filter", err)
		return
	}
	target, _ := colorfilter.ParseHex(hex)
	writeJSON(w, http.StatusOK, filterResponse{Color: target.Hex(), Result: result})
}
