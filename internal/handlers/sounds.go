package handlers

import (
	"log"
	"net/http"

	"github.com/focusnow-app/focusnow-backend/internal/services"
)

// Catalog handles GET /api/catalog: the static sound catalog with its
// unlock rules. Public, so the unlock screen renders before login.
func Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.SoundCatalog)
}

const maxSoundUploadBytes = 25 << 20 // 25 MB

// UploadSound handles POST /api/admin/sounds: uploads a sound asset to
// Cloudinary. Guarded by the admin API key header.
func UploadSound(w http.ResponseWriter, r *http.Request) {
	if cfg.AdminAPIKey == "" || r.Header.Get("X-Admin-Key") != cfg.AdminAPIKey {
		writeError(w, http.StatusForbidden, "Acesso negado")
		return
	}
	if cloudinary == nil {
		writeError(w, http.StatusServiceUnavailable, "Upload de sons não configurado")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSoundUploadBytes)
	if err := r.ParseMultipartForm(maxSoundUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Arquivo inválido ou muito grande")
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Campo 'file' é obrigatório")
		return
	}

	url, err := cloudinary.UploadFileFromHeader(r.Context(), header, "focusnow/sounds")
	if err != nil {
		log.Printf("⚠️ Sound upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Falha no upload")
		return
	}

	log.Printf("✅ Sound asset uploaded: %s", header.Filename)
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
