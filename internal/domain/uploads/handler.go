package uploads

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el proxy de subida de imágenes (solo rol ong).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/uploads", func(ur chi.Router) {
		ur.Post("/pet-image", uploadPetImageHandler(svc))
		ur.Delete("/pet-image", deletePetImageHandler(svc))
	})
}

type uploadResponse struct {
	URL string `json:"url"`
}

// uploadPetImageHandler godoc
// @Summary Subir imagen de mascota
// @Description Multipart con campo "image" (.jpg/.jpeg/.png/.webp, máx 5MB). Devuelve la URL pública.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Imagen"
// @Success 201 {object} uploadResponse
// @Failure 400 {string} string "unsupported image type / file too large"
// @Failure 503 {string} string "object store not configured"
// @Router /uploads/pet-image [post]
func uploadPetImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RoleOng {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := r.ParseMultipartForm(MaxImageSize); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "missing image field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		url, err := svc.UploadPetImage(r.Context(), header.Filename, file)
		if err != nil {
			writeUploadError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, uploadResponse{URL: url})
	}
}

func deletePetImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RoleOng {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		url := strings.TrimSpace(r.URL.Query().Get("url"))
		if url == "" {
			http.Error(w, "url query param is required", http.StatusBadRequest)
			return
		}

		if err := svc.DeleteImage(r.Context(), url); err != nil {
			writeUploadError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnsupported):
		http.Error(w, "unsupported image type", http.StatusBadRequest)
	case errors.Is(err, ErrTooLarge):
		http.Error(w, "file too large", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotConfigured):
		http.Error(w, "uploads not configured", http.StatusServiceUnavailable)
	default:
		http.Error(w, "upload failed", http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
