package di

import (
	"fmt"

	"github.com/energy-oracle/eo-api/internal/analytics"
	domrepo "github.com/energy-oracle/eo-api/internal/domain/repository"
	"github.com/energy-oracle/eo-api/internal/handler/api"
	internalrepo "github.com/energy-oracle/eo-api/internal/repository"
	"github.com/energy-oracle/eo-api/internal/stream"
	"github.com/energy-oracle/eo-api/internal/usecase"
	"github.com/energy-oracle/eo-api/pkg/cache"
	pkgch "github.com/energy-oracle/eo-api/pkg/clickhouse"
	"github.com/energy-oracle/eo-api/pkg/config"
	xhttp "github.com/energy-oracle/eo-api/pkg/http"
	pkgkafka "github.com/energy-oracle/eo-api/pkg/kafka"
	applogger "github.com/energy-oracle/eo-api/pkg/logger"
	"github.com/energy-oracle/eo-api/pkg/metrics"
	"github.com/energy-oracle/eo-api/pkg/server"
)

// ProvideLogger creates the application logger. Development gets readable
// console output at debug level; everything else logs JSON at info.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		lc.Level = "debug"
		lc.Format = "console"
	}
	l, err := applogger.New(lc)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideClickHouseClient creates a ClickHouse client. The schema is owned
// by the ingestion pipeline; this service only ever reads from it.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvidePriceStore creates the ClickHouse price repository.
func ProvidePriceStore(ch *pkgch.Client, l *applogger.Logger, m domrepo.Metrics) domrepo.PriceStore {
	store := internalrepo.NewCHPriceStore(ch)
	store.SetLogger(l)
	store.SetMetrics(m)
	return store
}

// ProvideCarbonStore creates the ClickHouse carbon/fuel-mix repository.
func ProvideCarbonStore(ch *pkgch.Client, l *applogger.Logger, m domrepo.Metrics) domrepo.CarbonStore {
	store := internalrepo.NewCHCarbonStore(ch)
	store.SetLogger(l)
	store.SetMetrics(m)
	return store
}

// ProvideCache creates the layered response cache, or nil when caching is
// disabled. A nil cache means every request goes straight to the store.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideEngine creates the analytics engine from configured thresholds.
func ProvideEngine(cfg *config.Config) *analytics.Engine {
	return analytics.NewEngine(analytics.Config{
		SpikeThresholdSystem:   cfg.Analytics.SpikeThreshold.System,
		SpikeThresholdDayAhead: cfg.Analytics.SpikeThreshold.DayAhead,
		PeakStartPeriod:        cfg.Analytics.PeakStartPeriod,
		PeakEndPeriod:          cfg.Analytics.PeakEndPeriod,
	})
}

// ProvidePricesUseCase creates the price query use case.
func ProvidePricesUseCase(store domrepo.PriceStore, c cache.Service, cfg *config.Config, m domrepo.Metrics) *usecase.PricesUseCase {
	return usecase.NewPricesUseCase(store, c, cfg.Cache.TTL.Prices, m)
}

// ProvideCarbonUseCase creates the carbon/fuel-mix query use case.
func ProvideCarbonUseCase(store domrepo.CarbonStore, c cache.Service, cfg *config.Config, m domrepo.Metrics) *usecase.CarbonUseCase {
	return usecase.NewCarbonUseCase(store, c, cfg.Cache.TTL.Carbon, m)
}

// ProvideAnalyticsUseCase creates the derived-analytics use case.
func ProvideAnalyticsUseCase(
	prices domrepo.PriceStore,
	carbon domrepo.CarbonStore,
	engine *analytics.Engine,
	c cache.Service,
	cfg *config.Config,
	m domrepo.Metrics,
) *usecase.AnalyticsUseCase {
	return usecase.NewAnalyticsUseCase(prices, carbon, engine, c, cfg.Cache.TTL.Analytics, m)
}

// ProvideSettlementUseCase creates the PPA settlement use case.
func ProvideSettlementUseCase(store domrepo.PriceStore) *usecase.SettlementUseCase {
	return usecase.NewSettlementUseCase(store)
}

// ProvideHub creates the WebSocket broadcast hub.
func ProvideHub(cfg *config.Config, l *applogger.Logger, m domrepo.Metrics) *stream.Hub {
	return stream.NewHub(
		stream.WithSendBuffer(cfg.Stream.SendBuffer),
		stream.WithWriteTimeout(cfg.Stream.WriteTimeout),
		stream.WithPingInterval(cfg.Stream.PingInterval),
		stream.WithHubLogger(l),
		stream.WithHubMetrics(m),
	)
}

// ProvideTickHandler registers the price-tick decoder for the ingestion topic.
func ProvideTickHandler(cfg *config.Config, hub *stream.Hub, l *applogger.Logger) pkgkafka.MessageHandler {
	return stream.NewTickHandler(cfg.Kafka.Topic, hub, l)
}

// ProvideKafkaConsumer creates the tick consumer, or nil when no brokers
// are configured. Without Kafka the service still serves the REST API;
// stream clients just never receive pushes.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideRouter assembles all route groups into one HTTP handler.
func ProvideRouter(
	l *applogger.Logger,
	store domrepo.PriceStore,
	pricesUC *usecase.PricesUseCase,
	carbonUC *usecase.CarbonUseCase,
	analyticsUC *usecase.AnalyticsUseCase,
	settlementUC *usecase.SettlementUseCase,
	hub *stream.Hub,
) xhttp.Handler {
	return api.NewRouter(
		api.NewHealthHandler(l, store, ""),
		api.NewPricesHandler(l, pricesUC),
		api.NewCarbonHandler(l, carbonUC),
		api.NewAnalyticsHandler(l, analyticsUC),
		api.NewSettlementHandler(l, settlementUC),
		api.NewStreamHandler(l, hub),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	tick pkgkafka.MessageHandler,
	hub *stream.Hub,
	cacheSvc cache.Service,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, l, handler, consumer, tick, hub, cacheSvc, chClient)
}
