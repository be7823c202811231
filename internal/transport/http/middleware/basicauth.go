package middleware

import (
	"context"
	"net/http"

	"github.com/webstack-labs/account-service/internal/domain"
	"github.com/webstack-labs/account-service/internal/transport/http/response"
)

type ctxKey string

const accountKey ctxKey = "account"

// Authenticator is the slice of the account service the gate needs.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (domain.Account, error)
}

// BasicAuth gates a route subtree behind Basic credentials. The credential
// check lives in the service; the middleware only decodes the header and
// injects the authenticated account into the request context.
func BasicAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, password, ok := r.BasicAuth()
			if !ok || email == "" || password == "" {
				response.WriteError(w, r, domain.ErrCredentialsMissing())
				return
			}

			a, err := auth.Authenticate(r.Context(), email, password)
			if err != nil {
				response.WriteError(w, r, err)
				return
			}

			ctx := WithAccount(r.Context(), a)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithAccount(ctx context.Context, a domain.Account) context.Context {
	return context.WithValue(ctx, accountKey, a)
}

// AccountFromContext returns the account injected by BasicAuth.
func AccountFromContext(ctx context.Context) (domain.Account, bool) {
	a, ok := ctx.Value(accountKey).(domain.Account)
	return a, ok
}
