package rest

import (
	"net/http"
	"strings"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/port/usecases_port"
	"realty-backoffice/internal/wire"
)

type ImageHandlers struct {
	uploadUC       usecases_port.UploadImageUseCase
	deleteUC       usecases_port.DeleteImageUseCase
	existsUC       usecases_port.ImageExistsUseCase
	maxUploadBytes int64
}

func NewImageHandlers(
	uploadUC usecases_port.UploadImageUseCase,
	deleteUC usecases_port.DeleteImageUseCase,
	existsUC usecases_port.ImageExistsUseCase,
	maxUploadBytes int64,
) *ImageHandlers {
	return &ImageHandlers{uploadUC: uploadUC, deleteUC: deleteUC, existsUC: existsUC, maxUploadBytes: maxUploadBytes}
}

// Upload обрабатывает POST /images/upload
func (h *ImageHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	uploadImage(w, r, h.uploadUC, h.maxUploadBytes)
}

func uploadImage(w http.ResponseWriter, r *http.Request, uc usecases_port.UploadImageUseCase, maxBytes int64) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UploadImage"})

	form, err := parseMultipart(w, r, maxBytes)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	defer form.RemoveAll()

	files := form.File["image"]
	if len(files) == 0 {
		writeError(w, r, &domain.ValidationError{Fields: map[string]string{"image": "is required"}}, nil)
		return
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	defer f.Close()

	img, err := uc.Execute(r.Context(), fh.Filename, f)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}

	logger.Info("Image uploaded", port.Fields{"url": img.URL, "size": img.Size})
	RespondWithJSON(w, http.StatusOK, wire.ImageDTO{
		Success:  true,
		ImageURL: img.URL,
		Message:  "Image uploaded",
	})
}

func imageURLParam(r *http.Request) (string, error) {
	u := strings.TrimSpace(r.URL.Query().Get("imageUrl"))
	if u == "" {
		return "", &domain.ValidationError{Fields: map[string]string{"imageUrl": "is required"}}
	}
	return u, nil
}

// Delete обрабатывает DELETE /images/delete?imageUrl=
func (h *ImageHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	u, err := imageURLParam(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	if err := h.deleteUC.Execute(r.Context(), u); err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.MessageDTO{Success: true, Message: "Image deleted"})
}

// Exists обрабатывает GET /images/exists?imageUrl=
func (h *ImageHandlers) Exists(w http.ResponseWriter, r *http.Request) {
	u, err := imageURLParam(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	exists, err := h.existsUC.Execute(r.Context(), u)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.ImageDTO{Success: true, ImageURL: u, Exists: &exists})
}
