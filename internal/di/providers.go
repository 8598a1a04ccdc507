package di

import (
	"context"
	"fmt"
	"time"

	domrepo "ChartPulse/internal/domain/repository"
	"ChartPulse/internal/handler/api"
	internalrepo "ChartPulse/internal/repository"
	"ChartPulse/internal/service/cache"
	"ChartPulse/internal/service/metrics"
	"ChartPulse/internal/service/ratelimit"
	"ChartPulse/internal/services/analysis"
	"ChartPulse/internal/services/marketdata"
	"ChartPulse/internal/usecase"
	pkgch "ChartPulse/pkg/clickhouse"
	"ChartPulse/pkg/config"
	xhttp "ChartPulse/pkg/http"
	pkgkafka "ChartPulse/pkg/kafka"
	applogger "ChartPulse/pkg/logger"
	"ChartPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.NewRecorder()
}

// ProvideBarProvider creates the upstream market-data client.
func ProvideBarProvider(cfg *config.Config, log *applogger.Logger, m domrepo.Metrics) domrepo.BarProvider {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.Market.Timeout))
	opts := []marketdata.Option{
		marketdata.WithRetryPolicy(marketdata.RetryPolicy{
			MaxAttempts: cfg.Market.Retry.MaxAttempts,
			Delay:       cfg.Market.Retry.Delay,
		}),
		marketdata.WithMetrics(m),
	}
	if cfg.Market.UserAgent != "" {
		opts = append(opts, marketdata.WithUserAgent(cfg.Market.UserAgent))
	}
	return marketdata.NewClient(httpClient, cfg.Market.ChartURL, cfg.Market.QuoteSummaryURL, log, opts...)
}

// ProvideAssembler creates the report assembler.
func ProvideAssembler(provider domrepo.BarProvider, cfg *config.Config, log *applogger.Logger) *analysis.Assembler {
	return analysis.NewAssembler(provider, cfg.Market.Benchmark, log)
}

// ProvideBytesCache creates the response cache per config.
func ProvideBytesCache(cfg *config.Config) cache.BytesCache {
	if cfg.Cache.Type == "redis" {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return cache.NewTTLCache()
}

// ProvideRateLimiter creates the per-client token bucket limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideSymbolStore creates the symbol reference store. Without ClickHouse it
// degrades to an in-process store so symbol search still answers.
func ProvideSymbolStore(cfg *config.Config, log *applogger.Logger) (domrepo.SymbolStore, error) {
	if !cfg.ClickHouse.Enabled {
		return internalrepo.NewMemorySymbolStore(), nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	store := internalrepo.NewCHSymbolStore(client)
	store.SetLogger(log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideReportPublisher creates the report event publisher, a no-op when the
// event stream is disabled.
func ProvideReportPublisher(cfg *config.Config, log *applogger.Logger) (domrepo.ReportPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NopReportPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic, log), nil
}

// ProvideReportUseCase creates the report use case.
func ProvideReportUseCase(
	assembler *analysis.Assembler,
	publisher domrepo.ReportPublisher,
	m domrepo.Metrics,
	log *applogger.Logger,
) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(assembler, publisher, m, log)
}

// ProvideInfoUseCase creates the company-info use case.
func ProvideInfoUseCase(provider domrepo.BarProvider, m domrepo.Metrics) *usecase.InfoUseCase {
	return usecase.NewInfoUseCase(provider, m)
}

// ProvideSymbolsUseCase creates the symbol-search use case.
func ProvideSymbolsUseCase(store domrepo.SymbolStore) *usecase.SymbolsUseCase {
	return usecase.NewSymbolsUseCase(store)
}

// ProvideHandler creates the HTTP handler with cache and rate limiting.
func ProvideHandler(
	cfg *config.Config,
	log *applogger.Logger,
	reports *usecase.ReportUseCase,
	info *usecase.InfoUseCase,
	symbols *usecase.SymbolsUseCase,
	bytesCache cache.BytesCache,
	limiter *ratelimit.Limiter,
	m domrepo.Metrics,
) xhttp.Handler {
	return api.NewStockEchoHandler(
		log, reports, info, symbols,
		bytesCache, cfg.Cache.TTL,
		limiter, api.RateLimitConfig{
			Capacity:     cfg.RateLimit.Capacity,
			RefillPerSec: cfg.RateLimit.RefillPerSec,
		},
		m,
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	store domrepo.SymbolStore,
	publisher domrepo.ReportPublisher,
) *server.App {
	return server.New(cfg, log, handler, store, publisher)
}
