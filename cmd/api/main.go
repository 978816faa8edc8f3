package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundry-hub/config"
	"laundry-hub/internal/adapter/events"
	"laundry-hub/internal/adapter/events/kafka"
	"laundry-hub/internal/adapter/gateway"
	httpHandler "laundry-hub/internal/adapter/http/handler"
	"laundry-hub/internal/adapter/storage/memory"
	pgStorage "laundry-hub/internal/adapter/storage/postgres"
	redisStorage "laundry-hub/internal/adapter/storage/redis"
	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/internal/service"
	"laundry-hub/pkg/logger"
	"laundry-hub/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const (
	receiptCacheTTL = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

// storage bundles the repositories of one backend.
type storage struct {
	wallets    ports.WalletRepository
	orders     ports.OrderRepository
	tokens     ports.TokenRepository
	receipts   ports.WebhookReceiptRepository
	transactor ports.DBTransactor
	checkers   []ports.HealthChecker
}

// closers collects shutdown hooks; Close runs them in reverse.
type closers []func() error

func (c closers) Close() error {
	var err error
	for i := len(c) - 1; i >= 0; i-- {
		err = multierr.Append(err, c[i]())
	}
	return err
}

func main() {
	cfg, err := config.Load(os.Getenv("LH_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting Laundry Hub fulfillment engine")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("engine stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Server exited")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var cleanup closers
	defer func() {
		if err := cleanup.Close(); err != nil {
			log.Error().Err(err).Msg("closing resources")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engineMetrics := metrics.NewEngineMetrics(registry)

	store, err := openStorage(ctx, cfg, engineMetrics, log, &cleanup)
	if err != nil {
		return err
	}

	var (
		receiptCache ports.ReceiptCache
		rateLimiter  ports.RateLimiter
	)
	if cfg.Storage.Driver == "postgres" {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		cleanup = append(cleanup, rdb.Close)
		receiptCache = redisStorage.NewReceiptCache(rdb)
		rateLimiter = redisStorage.NewRateLimitStore(rdb)
		store.checkers = append(store.checkers, redisStorage.NewHealthCheck(rdb))
	}

	keys, err := service.DeriveKeyRing(cfg.AES.Key)
	if err != nil {
		return fmt.Errorf("derive keys: %w", err)
	}
	encSvc, err := service.NewAESEncryptionService(keys.BalanceKey())
	if err != nil {
		return fmt.Errorf("init encryption: %w", err)
	}

	payments, err := newGateway(cfg.Gateway, log)
	if err != nil {
		return err
	}

	var publisher ports.EventPublisher = events.NewLogPublisher(logger.Component(log, "events"))
	if cfg.Kafka.Enabled {
		kp := kafka.NewPublisher(kafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger.Component(log, "kafka")), log)
		cleanup = append(cleanup, kp.Close)
		publisher = kp
	}

	platformRate, err := decimal.NewFromString(cfg.Fees.PlatformRate)
	if err != nil {
		return fmt.Errorf("fees.platform_rate: %w", err)
	}
	fees := domain.FeeSchedule{
		PlatformRate: platformRate,
		BaseFare:     cfg.Fees.BaseFare,
		PerBlockFare: cfg.Fees.PerBlockFare,
		BlockKm:      cfg.Fees.BlockKm,
		IncludedKm:   cfg.Fees.IncludedKm,
	}

	walletSvc := service.NewWalletService(store.wallets, encSvc, store.transactor, payments, service.WalletPolicy{
		MinWithdrawal:  cfg.Wallet.MinWithdrawal,
		WithdrawalLock: cfg.Wallet.WithdrawalLock,
		HoldTTL:        cfg.Wallet.HoldTTL,
		Currency:       cfg.Gateway.Currency,
		SuccessURL:     cfg.Gateway.SuccessURL,
		CancelURL:      cfg.Gateway.CancelURL,
	}, engineMetrics, logger.Component(log, "wallet"))
	tokenGate := service.NewTokenGateService(store.tokens, store.orders, store.transactor,
		service.NewHMACSignatureService(), service.NewQRCodeRenderer(0),
		keys.TokenSigningKey(), cfg.Tokens.Freshness, logger.Component(log, "tokens"))
	settlement := service.NewSettlementService(walletSvc, payments, fees, engineMetrics, logger.Component(log, "settlement"))
	orderSvc := service.NewOrderService(store.orders, store.transactor, walletSvc, tokenGate, settlement, payments, publisher, fees,
		service.OrderPolicy{
			CheckoutTTL:    cfg.Orders.CheckoutTTL,
			TokenFreshness: cfg.Tokens.Freshness,
			Currency:       cfg.Gateway.Currency,
			SuccessURL:     cfg.Gateway.SuccessURL,
			CancelURL:      cfg.Gateway.CancelURL,
		}, engineMetrics, logger.Component(log, "orders"))
	reconSvc := service.NewReconciliationService(store.orders, store.receipts, store.transactor, walletSvc, settlement,
		payments, receiptCache, publisher, receiptCacheTTL, engineMetrics, logger.Component(log, "reconciliation"))

	deps := httpHandler.RouterDeps{
		OrderSvc:       orderSvc,
		TokenGate:      tokenGate,
		WalletSvc:      walletSvc,
		ReconSvc:       reconSvc,
		Identity:       service.NewJWTIdentityService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer),
		RateLimiter:    rateLimiter,
		WebhookSecret:  cfg.Gateway.WebhookSecret,
		HealthCheckers: store.checkers,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		deps.MetricsPath = cfg.Metrics.Path
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpHandler.SetupRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStorage(ctx context.Context, cfg *config.Config, m *metrics.EngineMetrics, log zerolog.Logger, cleanup *closers) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("using in-memory storage; state is lost on restart")
		store := memory.NewStore()
		return &storage{
			wallets:    memory.NewWalletRepo(store),
			orders:     memory.NewOrderRepo(store),
			tokens:     memory.NewTokenRepo(store),
			receipts:   memory.NewReceiptRepo(store),
			transactor: store,
			checkers:   []ports.HealthChecker{store},
		}, nil
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	*cleanup = append(*cleanup, func() error {
		pool.Close()
		return nil
	})
	return &storage{
		wallets:    pgStorage.NewWalletRepo(pool),
		orders:     pgStorage.NewOrderRepo(pool),
		tokens:     pgStorage.NewTokenRepo(pool),
		receipts:   pgStorage.NewReceiptRepo(pool),
		transactor: pgStorage.NewTransactor(pool, cfg.Database.TxMaxRetries, m, logger.Component(log, "tx")),
		checkers:   []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
	}, nil
}

// newGateway talks to the real gateway when a secret key is configured and
// falls back to the offline sandbox otherwise.
func newGateway(cfg config.GatewayConfig, log zerolog.Logger) (ports.PaymentGateway, error) {
	gwLog := logger.Component(log, "gateway")
	if cfg.SecretKey == "" {
		gwLog.Warn().Msg("gateway.secret_key not set; using sandbox gateway")
		return gateway.NewSandbox(cfg.SuccessURL, gwLog), nil
	}
	client, err := gateway.NewClient(cfg.BaseURL, cfg.SecretKey, cfg.Timeout, gwLog)
	if err != nil {
		return nil, fmt.Errorf("init gateway client: %w", err)
	}
	return client, nil
}
