package bootstrap

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webstack-labs/account-service/internal/application/account"
	"github.com/webstack-labs/account-service/internal/config"
	"github.com/webstack-labs/account-service/internal/infrastructure/db/postgres"
	"github.com/webstack-labs/account-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/webstack-labs/account-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/webstack-labs/account-service/internal/infrastructure/security"
	"github.com/webstack-labs/account-service/internal/infrastructure/storage"
	"github.com/webstack-labs/account-service/internal/logger"
	"github.com/webstack-labs/account-service/internal/notify"
	http_handlers "github.com/webstack-labs/account-service/internal/transport/http/handlers"
	"github.com/webstack-labs/account-service/internal/transport/http/middleware"
	"github.com/webstack-labs/account-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewObjectStore func(cfg *config.Config) (account.ObjectStore, error)

	NewPublisher func(rabbitURL string) (account.EventPublisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	// 2) repositories
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	accountRepo := postgres.NewAccountRepo(sqlDB)
	imageRepo := postgres.NewImageRepo(sqlDB)

	// 3) object storage
	store, err := deps.NewObjectStore(cfg)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 4) publisher; an absent broker downgrades to log-only in dev
	var pub account.EventPublisher
	if cfg.RabbitURL == "" {
		logger.Logger.Warn().Msg("RABBIT_URL not set; using noop publisher")
		pub = memory.NewNoopPublisher()
	} else {
		pub, err = deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
				pub = memory.NewNoopPublisher()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		}
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// cleanup runs in reverse, so the dispatcher drains before the publisher closes
	dispatcher := notify.NewDispatcher(pub, cfg.NotifyQueueSize, logger.Logger)
	cleanupFns = append(cleanupFns, dispatcher.Close)

	// 5) security
	hasher := security.NewBcryptHasher(12)
	signer := security.NewJWTSigner(cfg.JWTSecret, "account-service")

	// 6) service
	svc := account.NewService(
		accountRepo,
		imageRepo,
		hasher,
		signer,
		store,
		dispatcher,
		account.Config{
			TokenTTL:     cfg.VerifyTokenTTL,
			VerifyWindow: cfg.VerifyWindow,
		},
	)

	// 7) handlers + middleware
	accountH := http_handlers.NewAccountHandler(svc)
	imageH := http_handlers.NewImageHandler(svc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.BasicAuth(svc)

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:         healthH,
		Account:        accountH,
		Image:          imageH,
		AuthMW:         authMW,
		MetricsHandler: promhttp.Handler(),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewObjectStore: func(cfg *config.Config) (account.ObjectStore, error) {
			return storage.NewS3Store(cfg, prometheus.DefaultRegisterer, logger.Logger)
		},
		NewPublisher: func(url string) (account.EventPublisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
