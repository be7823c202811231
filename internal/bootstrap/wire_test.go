package bootstrap

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/webstack-labs/account-service/internal/application/account"
	"github.com/webstack-labs/account-service/internal/config"
	"github.com/webstack-labs/account-service/internal/infrastructure/memory"
	"github.com/webstack-labs/account-service/internal/transport/http/router"
)

func testConfig(env, rabbitURL string) *config.Config {
	return &config.Config{
		Env:             env,
		HTTPAddr:        ":0",
		JWTSecret:       "test-secret",
		VerifyTokenTTL:  time.Hour,
		VerifyWindow:    2 * time.Minute,
		DBAddr:          "postgres://test",
		RabbitURL:       rabbitURL,
		S3Bucket:        "test-bucket",
		NotifyQueueSize: 4,
	}
}

// testDeps wires fakes everywhere except the router, which is real.
func testDeps(cfg *config.Config) (Deps, *memory.NoopPublisher) {
	pub := memory.NewNoopPublisher()

	return Deps{
		LoadConfig: func() (*config.Config, error) { return cfg, nil },
		NewDB: func(addr string) (DBCloser, error) {
			db, _, err := sqlmock.New()
			return db, err
		},
		NewObjectStore: func(*config.Config) (account.ObjectStore, error) {
			return memory.NewObjectStore(), nil
		},
		NewPublisher: func(string) (account.EventPublisher, error) {
			return pub, nil
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}, pub
}

func TestNewServer_ConfigLoadFails(t *testing.T) {
	deps, _ := testDeps(nil)
	deps.LoadConfig = func() (*config.Config, error) {
		return nil, errors.New("missing required env var: JWT_SECRET")
	}

	srv, cleanup, err := newServer(deps)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if srv != nil || cleanup != nil {
		t.Fatalf("expected nil server and cleanup")
	}
}

func TestNewServer_DBConnectFails(t *testing.T) {
	deps, _ := testDeps(testConfig("dev", ""))
	deps.NewDB = func(string) (DBCloser, error) {
		return nil, errors.New("connection refused")
	}

	srv, cleanup, err := newServer(deps)
	if err == nil {
		t.Fatalf("expected db connect error")
	}
	if srv != nil || cleanup != nil {
		t.Fatalf("expected nil server and cleanup")
	}
}

func TestNewServer_ObjectStoreFails(t *testing.T) {
	deps, _ := testDeps(testConfig("dev", ""))
	deps.NewObjectStore = func(*config.Config) (account.ObjectStore, error) {
		return nil, errors.New("no credentials")
	}

	if _, _, err := newServer(deps); err == nil {
		t.Fatalf("expected object store error")
	}
}

func TestNewServer_NoRabbitURL_UsesNoopPublisher(t *testing.T) {
	deps, _ := testDeps(testConfig("dev", ""))
	publisherCalled := false
	deps.NewPublisher = func(string) (account.EventPublisher, error) {
		publisherCalled = true
		return nil, errors.New("should not be called")
	}

	srv, cleanup, err := newServer(deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if publisherCalled {
		t.Fatalf("expected publisher dial skipped without RABBIT_URL")
	}
	if srv == nil {
		t.Fatalf("expected server")
	}
	cleanup()
}

func TestNewServer_RabbitUnavailable_Dev_Allows(t *testing.T) {
	deps, _ := testDeps(testConfig("dev", "amqp://invalid"))
	deps.NewPublisher = func(string) (account.EventPublisher, error) {
		return nil, errors.New("dial refused")
	}

	srv, cleanup, err := newServer(deps)
	if err != nil {
		t.Fatalf("unexpected error in dev: %v", err)
	}
	if srv == nil || cleanup == nil {
		t.Fatalf("expected server and cleanup")
	}
	cleanup()
}

func TestNewServer_RabbitUnavailable_Prod_Fails(t *testing.T) {
	deps, _ := testDeps(testConfig("prod", "amqp://invalid"))
	deps.NewPublisher = func(string) (account.EventPublisher, error) {
		return nil, errors.New("dial refused")
	}

	srv, cleanup, err := newServer(deps)
	if err == nil {
		t.Fatalf("expected error in prod when rabbit unavailable")
	}
	if srv != nil || cleanup != nil {
		t.Fatalf("expected nil server and cleanup")
	}
}

func TestNewServer_RouterFails_RunsCleanup(t *testing.T) {
	deps, _ := testDeps(testConfig("dev", ""))
	deps.NewRouter = func(router.Deps) (http.Handler, error) {
		return nil, errors.New("bad router deps")
	}

	if _, _, err := newServer(deps); err == nil {
		t.Fatalf("expected router error")
	}
}

func TestNewServer_Success_ServerConfigured(t *testing.T) {
	cfg := testConfig("dev", "amqp://localhost")
	cfg.HTTPReadTimeout = 10 * time.Second
	deps, _ := testDeps(cfg)

	srv, cleanup, err := newServer(deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	if srv.Addr != ":0" {
		t.Fatalf("unexpected addr: %q", srv.Addr)
	}
	if srv.Handler == nil {
		t.Fatalf("expected handler wired")
	}
	if srv.ReadTimeout != 10*time.Second {
		t.Fatalf("unexpected read timeout: %v", srv.ReadTimeout)
	}
}
