package dailylens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/daily-lens/internal/config"
	"github.com/magabrotheeeer/daily-lens/internal/lib/jwt"
	"github.com/magabrotheeeer/daily-lens/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/metrics"
	"github.com/magabrotheeeer/daily-lens/internal/migrations"
	"github.com/magabrotheeeer/daily-lens/internal/paymentprovider"
	"github.com/magabrotheeeer/daily-lens/internal/services/access"
	"github.com/magabrotheeeer/daily-lens/internal/services/account"
	"github.com/magabrotheeeer/daily-lens/internal/services/article"
	"github.com/magabrotheeeer/daily-lens/internal/services/payment"
	"github.com/magabrotheeeer/daily-lens/internal/services/subscription"
	"github.com/magabrotheeeer/daily-lens/internal/services/sweeper"
	"github.com/magabrotheeeer/daily-lens/internal/storage/cache"
	"github.com/magabrotheeeer/daily-lens/internal/storage/repository"

	_ "github.com/magabrotheeeer/daily-lens/docs"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер вместе с фоновым sweeper и открытыми подключениями.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *repository.Storage
	cache   *cache.Cache
	amqp    *amqp.Connection
	sweeper *sweeper.Sweeper
}

// New подключается к хранилищам, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "dailylens.New"

	app := &App{logger: logger}

	db, err := repository.New(cfg.StorageConnectionString, cfg.QueryTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.db = db
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.cache = cacheRedis

	publisher, err := app.publisher(cfg.RabbitMQ)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	now := time.Now

	accounts := account.New(db, cacheRedis, cfg.AccountTTL, logger)
	checker := access.NewChecker(accounts, now)
	subscriptions := subscription.New(db, accounts, publisher, m, now, logger)
	provider := paymentprovider.NewClient(cfg.StripeSecretKey, paymentprovider.Options{
		APIURL:  cfg.APIURL,
		Timeout: cfg.Payment.Timeout,
	})
	payments := payment.New(provider, cfg.Currency, cfg.Payment.Timeout, m, logger)
	articles := article.New(db, logger)

	app.sweeper = sweeper.New(db, accounts, publisher, m, logger, sweeper.Options{
		Interval: cfg.Sweeper.Interval,
		Timeout:  cfg.Sweeper.Timeout,
		Now:      now,
	})

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Log:           logger,
		Tokens:        jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Accounts:      accounts,
		Access:        checker,
		Subscriptions: subscriptions,
		Payments:      payments,
		Articles:      articles,
		Metrics:       m,
		Limiter:       rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		Now:           now,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return app, nil
}

// publisher подключается к RabbitMQ. Без URL события только пишутся в лог.
func (a *App) publisher(cfg config.RabbitMQ) (rabbitmq.Publisher, error) {
	if cfg.RabbitMQURL == "" {
		a.logger.Warn("rabbitmq url is empty, entitlement events will not be published")
		return rabbitmq.NewNoopPublisher(a.logger), nil
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	a.amqp = conn

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEntitlementQueues())
	if err != nil {
		return nil, err
	}
	return rabbitmq.NewChannelPublisher(ch), nil
}

// Run запускает sweeper и HTTP-сервер, при отмене ctx корректно их останавливает.
func (a *App) Run(ctx context.Context) error {
	a.sweeper.Start(ctx)
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

func (a *App) close() {
	if a.sweeper != nil {
		a.sweeper.Stop()
	}
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close storage", sl.Err(err))
		}
	}
}
