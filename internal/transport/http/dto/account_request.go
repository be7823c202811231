package dto

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/webstack-labs/account-service/internal/domain"
)

// -------- Registration --------

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// Validate normalizes and checks the request, mapping validator failures to
// stable domain error codes.
func (r *RegisterRequest) Validate(v *validator.Validate) error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	return mapValidation(v.Struct(r))
}

// -------- Verification --------

// VerifyQuery is filled from query params, not JSON.
type VerifyQuery struct {
	Email string
	Token string
}

func VerifyQueryFromRequest(r *http.Request) (VerifyQuery, error) {
	q := VerifyQuery{
		Email: strings.TrimSpace(r.URL.Query().Get("email")),
		Token: strings.TrimSpace(r.URL.Query().Get("token")),
	}
	if q.Email == "" {
		return VerifyQuery{}, domain.ErrMissingField("email")
	}
	if q.Token == "" {
		return VerifyQuery{}, domain.ErrMissingField("token")
	}
	return q, nil
}

// -------- Profile update --------

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

func (r *UpdateProfileRequest) Empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Password == nil
}

var updatableFields = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"password":   true,
}

// DecodeUpdateProfile reads the body against an explicit allow-list: any key
// outside it is rejected, an empty body decodes to an empty update. A field
// set to the empty string is a no-op, same as omitting it.
func DecodeUpdateProfile(r *http.Request) (UpdateProfileRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return UpdateProfileRequest{}, domain.ErrInvalidJSON(err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return UpdateProfileRequest{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return UpdateProfileRequest{}, domain.ErrInvalidJSON(err)
	}
	for field := range raw {
		if !updatableFields[field] {
			return UpdateProfileRequest{}, domain.ErrUnsupportedField(field)
		}
	}

	var req UpdateProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return UpdateProfileRequest{}, domain.ErrInvalidJSON(err)
	}

	req.FirstName = dropBlank(req.FirstName)
	req.LastName = dropBlank(req.LastName)
	req.Password = dropBlank(req.Password)
	return req, nil
}

func dropBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// -------- validator mapping --------

func mapValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ErrInternal(err)
	}

	fe := verrs[0]
	field := jsonFieldName(fe.Field())
	if fe.Tag() == "required" {
		return domain.ErrMissingField(field)
	}
	return domain.ErrInvalidField(field, fe.Tag())
}

// jsonFieldName maps struct field names back to their wire names.
func jsonFieldName(field string) string {
	switch field {
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	default:
		return strings.ToLower(field)
	}
}
