package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/webstack-labs/account-service/internal/application/account"
	"github.com/webstack-labs/account-service/internal/domain"
)

type JWTSigner struct {
	secret []byte
	issuer string
}

func NewJWTSigner(secret string, issuer string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type verifyClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(email, firstName string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := verifyClaims{
		Email:     email,
		FirstName: firstName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

// Validate rejects tampered tokens and tokens past their embedded expiry.
// Both surface as token_invalid: the authoritative expiry check lives on the
// stored window, not here.
func (s *JWTSigner) Validate(token string) (account.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &verifyClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid(nil)
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return account.TokenClaims{}, domain.ErrTokenInvalid(err)
	}

	claims, ok := parsed.Claims.(*verifyClaims)
	if !ok || !parsed.Valid {
		return account.TokenClaims{}, domain.ErrTokenInvalid(nil)
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return account.TokenClaims{
		Email:     claims.Email,
		FirstName: claims.FirstName,
		Exp:       exp,
	}, nil
}
