package plant

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List serves GET /api/plants with optional minHeight, maxHeight and color
// query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f Filter
	f.Color = q.Get("color")
	if v := q.Get("minHeight"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid minHeight"})
			return
		}
		f.MinHeight = n
	}
	if v := q.Get("maxHeight"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid maxHeight"})
			return
		}
		f.MaxHeight = n
	}

	plants, err := h.service.List(r.Context(), f)
	if err != nil {
		slog.Error("list plants failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, plants)
}

type distributionRequest struct {
	PlantIDs []string `json:"plantIds"`
}

// ColorDistribution serves POST /api/plants/distribution: the bloom-color
// histogram for a plant selection.
func (h *Handler) ColorDistribution(w http.ResponseWriter, r *http.Request) {
	var req distributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	counts, err := h.service.ColorDistribution(r.Context(), req.PlantIDs)
	if err != nil {
		slog.Error("color distribution failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
