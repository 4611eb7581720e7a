package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/focusnow-app/focusnow-backend/internal/config"
	"github.com/focusnow-app/focusnow-backend/internal/services"
)

var (
	cfg        *config.Config
	cloudinary *services.CloudinaryService
)

// Init wires the handlers to the loaded configuration. The Cloudinary
// service may be nil when upload credentials are absent.
func Init(c *config.Config, cld *services.CloudinaryService) {
	cfg = c
	cloudinary = cld
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
