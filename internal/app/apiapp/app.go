package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/config"
	"github.com/novatidelabs/synkpay-banking-service/internal/infra/httpclient"
	redrepo "github.com/novatidelabs/synkpay-banking-service/internal/repo/redis"
	currenciessvc "github.com/novatidelabs/synkpay-banking-service/internal/services/currencies"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/dispatch"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/internalauth"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/sdkfinance"
	sessionssvc "github.com/novatidelabs/synkpay-banking-service/internal/services/sessions"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/tokens"
)

const redisPingTimeout = 3 * time.Second

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	upstream, err := sdkfinance.NewFactory(cfg.Upstream.BaseURL, httpclient.New(cfg.Upstream.Timeout))
	if err != nil {
		return nil, fmt.Errorf("init sdk finance client: %w", err)
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	if err := redrepo.Ping(pingCtx, redisClient); err != nil {
		log.Warn("redis ping failed, session lookups will fail until it recovers", zap.Error(err))
	}
	cancel()

	if cfg.HTTP.WriteTimeout > 0 && cfg.HTTP.WriteTimeout <= requestTimeout {
		log.Warn("http write timeout does not outlast the request deadline, timed out requests will get no response",
			zap.Duration("write_timeout", cfg.HTTP.WriteTimeout),
			zap.Duration("request_timeout", requestTimeout),
		)
	}

	guard := internalauth.NewGuard(cfg.InternalAuth.Secret, cfg.InternalAuth.Header)
	if !guard.Configured() {
		log.Warn("internal auth secret is not configured, every guarded request will be rejected",
			zap.String("header", guard.Header()),
		)
	}

	sessionService := sessionssvc.NewService(redrepo.NewKVRepo(redisClient), log)
	resolver := tokens.NewResolver(sessionService, log)
	dispatcher := dispatch.New(func(accessToken string) sdkfinance.API {
		return upstream.Authenticated(accessToken)
	}, log)
	currencyService := currenciessvc.NewService(resolver, dispatcher, log)

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)
	RegisterRoutes(r, Dependencies{
		CurrencyService: currencyService,
		SessionService:  sessionService,
		Guard:           guard,
		Logger:          log,
		StartedAt:       time.Now(),
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

// StartupFields describes the effective configuration for the startup log
// line. Secrets are never included.
func StartupFields(cfg config.Config) []zap.Field {
	return []zap.Field{
		zap.String("env", cfg.Env),
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("upstream_base_url", redactURL(cfg.Upstream.BaseURL)),
		zap.Duration("upstream_timeout", cfg.Upstream.Timeout),
		zap.String("redis_addr", cfg.Redis.Addr),
		zap.Bool("internal_auth_configured", internalauth.NewGuard(cfg.InternalAuth.Secret, cfg.InternalAuth.Header).Configured()),
	}
}

func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return parsed.Redacted()
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr), zap.String("env", a.cfg.Env))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
