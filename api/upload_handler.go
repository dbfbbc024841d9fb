package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rpupo63/blog-admin-backend/errs"
	"github.com/rpupo63/blog-admin-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxImageSize = 10 << 20 // 10MB

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ImageUploader stores an image and returns the URL to serve it from.
type ImageUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	images    ImageUploader
}

func newUploadHandler(images ImageUploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		images:    images,
	}
}

// uploadFeaturedImage stores the "file" form field and returns its public URL
// for use as a post's featuredImage.
// @Summary Upload featured image
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image (jpeg, png, gif or webp, max 10MB)"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Image storage is not configured"
// @Router /uploads/featured-image [post]
func (h uploadHandler) uploadFeaturedImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.images == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "image storage is not configured"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1024)
		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxImageSize))
				return
			}
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read uploaded file"))
			return
		}
		if len(data) > maxImageSize {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxImageSize))
			return
		}

		contentType := http.DetectContentType(data)
		if !isAllowedImageType(contentType) {
			h.responder.WriteError(w, errs.NewUnsupportedMediaTypeError(contentType, allowedImageTypes))
			return
		}

		url, err := h.images.Upload(r.Context(), storage.FeaturedImageKey(header.Filename), data, contentType)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store image", err))
			return
		}

		h.logger.Info().Str("url", url).Int("size", len(data)).Msg("featured image uploaded")
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, UploadResponse{URL: url})
	}
}

func isAllowedImageType(contentType string) bool {
	for _, allowed := range allowedImageTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
