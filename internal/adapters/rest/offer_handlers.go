package rest

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/port/usecases_port"
	"realty-backoffice/internal/wire"
)

// OfferUseCases - все сценарии, нужные маршрутам /offres
type OfferUseCases struct {
	List    usecases_port.ListRecordsUseCase[domain.Offer]
	All     usecases_port.FindAllRecordsUseCase[domain.Offer]
	Get     usecases_port.GetRecordUseCase[domain.Offer]
	Delete  usecases_port.DeleteRecordUseCase
	Create  usecases_port.CreateOfferUseCase
	Update  usecases_port.UpdateOfferUseCase
	Status  usecases_port.ChangeOfferStatusUseCase
	Photos  usecases_port.AddOfferPhotosUseCase
	Export  usecases_port.ExportOffersUseCase
	Filters usecases_port.GetFilterOptionsUseCase
	Upload  usecases_port.UploadImageUseCase
}

type OfferHandlers struct {
	listingHandlers[domain.Offer, wire.OfferDTO]
	uc             OfferUseCases
	maxUploadBytes int64
}

func NewOfferHandlers(uc OfferUseCases, maxUploadBytes int64) *OfferHandlers {
	return &OfferHandlers{
		listingHandlers: listingHandlers[domain.Offer, wire.OfferDTO]{
			entity:     domain.EntityOffer,
			fieldNames: wire.OfferFieldNames,
			toDTO:      wire.NewOfferDTO,
			listUC:     uc.List,
			allUC:      uc.All,
			getUC:      uc.Get,
			deleteUC:   uc.Delete,
		},
		uc:             uc,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create обрабатывает POST /offres
func (h *OfferHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var dto wire.OfferDTO
	if err := decodeJSON(r, &dto); err != nil {
		writeError(w, r, err, nil)
		return
	}
	offer, err := h.uc.Create.Execute(r.Context(), dto.Draft())
	if err != nil {
		writeError(w, r, err, h.fieldNames)
		return
	}
	RespondWithJSON(w, http.StatusCreated, wire.NewOfferDTO(*offer))
}

// Update обрабатывает PUT /offres/{id}
func (h *OfferHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	var dto wire.OfferDTO
	if err := decodeJSON(r, &dto); err != nil {
		writeError(w, r, err, nil)
		return
	}
	offer, err := h.uc.Update.Execute(r.Context(), id, dto.Draft())
	if err != nil {
		writeError(w, r, err, h.fieldNames)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.NewOfferDTO(*offer))
}

// ChangeStatus обрабатывает PATCH /offres/{id}/status
func (h *OfferHandlers) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	var dto wire.StatusPatchDTO
	if err := decodeJSON(r, &dto); err != nil {
		writeError(w, r, err, nil)
		return
	}
	status, ok := wire.ParseOfferStatus(dto.StatutOffre)
	if !ok {
		writeError(w, r, &domain.ValidationError{Fields: map[string]string{
			"statutOffre": fmt.Sprintf("has unsupported value %q", dto.StatutOffre),
		}}, nil)
		return
	}
	offer, err := h.uc.Status.Execute(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err, h.fieldNames)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.NewOfferDTO(*offer))
}

// AddPhotos обрабатывает POST /offres/{id}/photos, файлы в поле "photos"
func (h *OfferHandlers) AddPhotos(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddPhotos"})

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	form, err := parseMultipart(w, r, h.maxUploadBytes)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	defer form.RemoveAll()

	headers := form.File["photos"]
	uploads := make([]usecases_port.PhotoUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			logger.Error("Failed to open uploaded photo", err, port.Fields{"filename": fh.Filename})
			writeError(w, r, err, nil)
			return
		}
		defer f.Close()
		uploads = append(uploads, usecases_port.PhotoUpload{Filename: fh.Filename, Content: f})
	}

	offer, err := h.uc.Photos.Execute(r.Context(), id, uploads)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	logger.Info("Photos attached to offer", port.Fields{"offer_id": id, "count": len(uploads)})
	RespondWithJSON(w, http.StatusOK, wire.NewOfferDTO(*offer))
}

// UploadImage обрабатывает POST /offres/upload-image, файл в поле "image"
func (h *OfferHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	uploadImage(w, r, h.uc.Upload, h.maxUploadBytes)
}

// Filters обрабатывает GET /offres/filters
func (h *OfferHandlers) Filters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.uc.Filters.Execute(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.NewFilterOptionsDTO(*opts))
}

// Export обрабатывает GET /offres/export с теми же фильтрами, что и список
func (h *OfferHandlers) Export(w http.ResponseWriter, r *http.Request) {
	q, err := h.decodeQuery(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}

	// файл собирается целиком, чтобы ошибка не оборвала ответ на середине
	var buf bytes.Buffer
	rows, err := h.uc.Export.Execute(r.Context(), q, &buf)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}

	filename := fmt.Sprintf("offres-%s%s", time.Now().UTC().Format("20060102-150405"), h.uc.Export.FileExtension())
	w.Header().Set("Content-Type", h.uc.Export.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("X-Total-Count", fmt.Sprint(rows))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseMultipart ограничивает тело запроса и разбирает форму
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) (*multipart.Form, error) {
	// запас на границы и заголовки частей
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes*10+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.ErrImageTooLarge
		}
		return nil, &domain.ValidationError{Fields: map[string]string{"body": "must be multipart/form-data"}}
	}
	return r.MultipartForm, nil
}
