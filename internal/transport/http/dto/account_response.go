package dto

import (
	"time"

	"github.com/webstack-labs/account-service/internal/domain"
)

// AccountView is the public shape of an account. The password hash and the
// verification token never appear here.
type AccountView struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewAccountView(a domain.Account) AccountView {
	return AccountView{
		ID:                 a.ID,
		Email:              a.Email,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		VerificationStatus: string(a.VerificationStatus),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

type RegisterResponse struct {
	Message string      `json:"message"`
	User    AccountView `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ImageView struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	ObjectKey  string    `json:"object_key"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func NewImageView(img domain.ProfileImage) ImageView {
	return ImageView{
		ID:         img.ID,
		AccountID:  img.AccountID,
		ObjectKey:  img.ObjectKey,
		URL:        img.URL,
		UploadedAt: img.UploadedAt,
	}
}
