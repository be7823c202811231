package http_handlers

import (
	"net/http"

	"github.com/webstack-labs/account-service/internal/application/account"
	"github.com/webstack-labs/account-service/internal/domain"
	"github.com/webstack-labs/account-service/internal/logger"
	"github.com/webstack-labs/account-service/internal/transport/http/dto"
	"github.com/webstack-labs/account-service/internal/transport/http/middleware"
	"github.com/webstack-labs/account-service/internal/transport/http/response"
)

// maxImageBytes bounds the in-memory multipart parse.
const maxImageBytes = 10 << 20 // 10 MiB

// ImageHandler serves the single profile image attached to an account.
// All routes sit behind the basic-auth gate.
type ImageHandler struct {
	svc *account.Service
}

func NewImageHandler(svc *account.Service) *ImageHandler {
	return &ImageHandler{svc: svc}
}

func (h *ImageHandler) Attach(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrCredentialsMissing())
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.WriteError(w, r, domain.ErrImageMissing())
		return
	}

	file, header, err := r.FormFile("pic")
	if err != nil {
		response.WriteError(w, r, domain.ErrImageMissing())
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	img, err := h.svc.AttachImage(r.Context(), a.ID, header.Filename, contentType, file, header.Size)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("account_id", a.ID).
		Str("object_key", img.ObjectKey).
		Msg("image_attached")

	response.OK(w, dto.NewImageView(img))
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrCredentialsMissing())
		return
	}

	img, err := h.svc.GetImage(r.Context(), a.ID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewImageView(img))
}

func (h *ImageHandler) Remove(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrCredentialsMissing())
		return
	}

	if err := h.svc.RemoveImage(r.Context(), a.ID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("account_id", a.ID).
		Msg("image_removed")

	response.NoContent(w)
}
