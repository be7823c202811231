package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/webstack-labs/account-service/internal/application/account"
	"github.com/webstack-labs/account-service/internal/infrastructure/memory"
	"github.com/webstack-labs/account-service/internal/infrastructure/security"
	"github.com/webstack-labs/account-service/internal/transport/http/middleware"
)

// testServer wires the real service against in-memory adapters so handler
// tests exercise the full request path, auth gate included.
type testServer struct {
	router   http.Handler
	accounts *memory.AccountRepo
	images   *memory.ImageRepo
	store    *memory.ObjectStore
	svc      *account.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	accounts := memory.NewAccountRepo()
	images := memory.NewImageRepo()
	store := memory.NewObjectStore()
	hasher := security.NewBcryptHasher(4) // low cost for test speed
	signer := security.NewJWTSigner("test-secret", "account-service")

	svc := account.NewService(accounts, images, hasher, signer, store, nil, account.Config{
		TokenTTL:     time.Hour,
		VerifyWindow: 2 * time.Minute,
	})

	accountH := NewAccountHandler(svc)
	imageH := NewImageHandler(svc)
	authMW := middleware.BasicAuth(svc)

	r := chi.NewRouter()
	r.Post("/v1/accounts", accountH.Register)
	r.Get("/v1/verify", accountH.Verify)
	r.Route("/v1/accounts/self", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", accountH.Me)
		r.Put("/", accountH.UpdateProfile)
		r.Route("/image", func(r chi.Router) {
			r.Post("/", imageH.Attach)
			r.Get("/", imageH.Get)
			r.Delete("/", imageH.Remove)
		})
	})

	return &testServer{
		router:   r,
		accounts: accounts,
		images:   images,
		store:    store,
		svc:      svc,
	}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register creates and returns the raw register response body, failing the
// test unless the handler answers 201.
func (s *testServer) register(t *testing.T, email, password, first, last string) map[string]any {
	t.Helper()

	req := httptest.NewRequest("POST", "/v1/accounts", mustJSONBody(t, map[string]string{
		"email":      email,
		"password":   password,
		"first_name": first,
		"last_name":  last,
	}))
	req.Header.Set("Content-Type", "application/json")

	rec := s.do(t, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d; body=%s", rec.Code, rec.Body.String())
	}

	var out map[string]any
	mustReadJSON(t, rec.Body, &out)
	return out
}

// verify drives the stored token through GET /v1/verify.
func (s *testServer) verify(t *testing.T, email string) {
	t.Helper()

	a, err := s.accounts.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("verify: account lookup: %v", err)
	}

	req := httptest.NewRequest("GET", "/v1/verify?email="+email+"&token="+a.VerificationToken, nil)
	rec := s.do(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
}

func reqCtx() context.Context { return context.Background() }

// mustAccountID resolves an email to its account ID through the repo.
func mustAccountID(t *testing.T, s *testServer, email string) string {
	t.Helper()

	a, err := s.accounts.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("account lookup: %v", err)
	}
	return a.ID
}

func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func mustReadJSON(t *testing.T, r io.Reader, out any) {
	t.Helper()

	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode json failed; body=%s", string(raw))
	}
}

// multipartImage builds a multipart body with a single "pic" part.
func multipartImage(t *testing.T, filename string, content []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("pic", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
