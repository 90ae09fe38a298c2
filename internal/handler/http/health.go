package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Subscribers int    `json:"subscribers"`
}

// health is probed by clients to decide whether they are online.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, healthResponse{
		Status:      "ok",
		Version:     h.version,
		Subscribers: h.hub.Subscribers(),
	}, http.StatusOK)
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.version))
}
