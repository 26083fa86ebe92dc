package export

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/regenesis/regenesis/backend-go/internal/document"
)

const maxBodySize = 10 << 20 // 10MB

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type exportRequest struct {
	Document   document.PlotDocument `json:"document"`
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	ShowLabels *bool                 `json:"showLabels"`
}

// ExportSVG renders a posted plot document to SVG.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Document.Project.Root == "" {
		http.Error(w, "document has no root node", http.StatusBadRequest)
		return
	}

	opts := DefaultSVGOptions()
	if req.Width > 0 {
		opts.Width = req.Width
	}
	if req.Height > 0 {
		opts.Height = req.Height
	}
	if req.ShowLabels != nil {
		opts.ShowLabels = *req.ShowLabels
	}

	svg := RenderSVG(&req.Document, opts)

	slog.Info("exported plot", "project", req.Document.Project.ID, "bytes", len(svg))
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="plot.svg"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}
