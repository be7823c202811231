package http_handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/webstack-labs/account-service/internal/application/account"
	"github.com/webstack-labs/account-service/internal/domain"
	"github.com/webstack-labs/account-service/internal/logger"
	"github.com/webstack-labs/account-service/internal/transport/http/dto"
	"github.com/webstack-labs/account-service/internal/transport/http/middleware"
	"github.com/webstack-labs/account-service/internal/transport/http/response"
)

type AccountHandler struct {
	svc      *account.Service
	validate *validator.Validate
}

func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		middleware.RegistrationsTotal.WithLabelValues("invalid").Inc()
		response.WriteError(w, r, err)
		return
	}

	if err := req.Validate(h.validate); err != nil {
		middleware.RegistrationsTotal.WithLabelValues("invalid").Inc()
		response.WriteError(w, r, err)
		return
	}

	created, err := h.svc.Register(r.Context(), account.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if domain.Is(err, "email_already_exists") {
			middleware.RegistrationsTotal.WithLabelValues("email_already_exists").Inc()
		} else {
			middleware.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("account_id", created.ID).
		Str("email", created.Email).
		Msg("account_registered")

	middleware.RegistrationsTotal.WithLabelValues("created").Inc()

	response.Created(w, dto.RegisterResponse{
		Message: "account created, verification pending",
		User:    dto.NewAccountView(created),
	})
}

func (h *AccountHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q, err := dto.VerifyQueryFromRequest(r)
	if err != nil {
		middleware.VerificationsTotal.WithLabelValues("rejected").Inc()
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Confirm(r.Context(), q.Email, q.Token); err != nil {
		var de *domain.Error
		status := "error"
		if errors.As(err, &de) && de.Kind == domain.KindValidation {
			status = "rejected"
		}
		middleware.VerificationsTotal.WithLabelValues(status).Inc()
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("email", q.Email).
		Msg("account_verified")

	middleware.VerificationsTotal.WithLabelValues("verified").Inc()

	response.OK(w, dto.MessageResponse{Message: "account verified"})
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrCredentialsMissing())
		return
	}

	response.OK(w, dto.NewAccountView(a))
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrCredentialsMissing())
		return
	}

	req, err := dto.DecodeUpdateProfile(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	// Nothing to change: acknowledge without touching the row.
	if req.Empty() {
		response.NoContent(w)
		return
	}

	updated, err := h.svc.UpdateProfile(r.Context(), a.ID, account.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("account_id", a.ID).
		Msg("account_updated")

	response.OK(w, dto.NewAccountView(updated))
}
