package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"StarChart/internal/astro"
	"StarChart/internal/domain/repository"
	"StarChart/internal/handler/api"
	internalrepo "StarChart/internal/repository"
	"StarChart/internal/service/stream"
	"StarChart/internal/usecase"
	"StarChart/pkg/cache"
	pkgch "StarChart/pkg/clickhouse"
	"StarChart/pkg/config"
	xhttp "StarChart/pkg/http"
	pkgkafka "StarChart/pkg/kafka"
	applogger "StarChart/pkg/logger"
	"StarChart/pkg/metrics"
	"StarChart/pkg/server"
)

const archiveTable = "ephemeris_daily"

// ProvideLogger creates the app logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		lc.Level = "debug"
		lc.Format = "console"
	}
	return applogger.New(lc)
}

// ProvideEngine creates the chart computation engine.
func ProvideEngine(cfg *config.Config) *astro.Engine {
	params := astro.DefaultParams()
	if cfg.Engine.Ayanamsa > 0 {
		params.Ayanamsa = cfg.Engine.Ayanamsa
	}
	if cfg.Engine.WeightScheme != "" {
		params.WeightScheme = astro.WeightScheme(cfg.Engine.WeightScheme)
	}
	params.IncludeMinor = cfg.Engine.IncludeMinor
	return astro.NewEngine(astro.NewModelSource(), params)
}

// ProvideCache creates the configured cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	redisOpts := func() []cache.RedisOption {
		host, port := splitHostPort(cfg.Cache.Redis.Addr)
		opts := []cache.RedisOption{
			cache.WithRedisHost(host),
			cache.WithRedisPort(port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		}
		if ps := cfg.Cache.Redis.PoolSize; ps > 0 {
			opts = append(opts, cache.WithRedisPool(ps, ps/2, 30*time.Second))
		}
		return opts
	}
	memOpts := func() []cache.MemoryOption {
		var opts []cache.MemoryOption
		if cfg.Cache.Memory.MaxEntries > 0 {
			opts = append(opts, cache.WithMemoryMaxSize(cfg.Cache.Memory.MaxEntries))
		}
		if cfg.Cache.Memory.CleanupInterval > 0 {
			opts = append(opts, cache.WithMemoryCleanup(cfg.Cache.Memory.CleanupInterval))
		}
		return opts
	}

	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryCache(memOpts()...), nil
	case "redis":
		return cache.NewRedisCache(redisOpts()...)
	case "layered":
		redis, err := cache.NewRedisCache(redisOpts()...)
		if err != nil {
			return nil, err
		}
		layered := []cache.LayeredOption{}
		if cfg.Cache.Memory.MaxEntries > 0 {
			layered = append(layered, cache.WithLayeredMemorySize(cfg.Cache.Memory.MaxEntries))
		}
		return cache.NewLayeredCache(redis, layered...), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func splitHostPort(addr string) (string, int) {
	if addr == "" {
		return "localhost", 6379
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 6379
	}
	return host, port
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when archiving is
// enabled. Returns nil otherwise; downstream providers tolerate it.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
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

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.SchemaStatements(cfg.ClickHouse.Database, archiveTable)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideArchive creates the ClickHouse-backed snapshot archive.
func ProvideArchive(chClient *pkgch.Client, cfg *config.Config) repository.Archive {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseArchive(chClient.DB(), cfg.ClickHouse.Database+"."+archiveTable)
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSnapshotPublisher creates the Kafka-backed snapshot publisher.
func ProvideSnapshotPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaSnapshotPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer when the archive routes
// through Kafka.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Archive.Enabled || cfg.Archive.Backend != "kafka" {
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

// ProvideSnapshotHandler registers handler for the snapshot topic.
func ProvideSnapshotHandler(archive repository.Archive, m repository.Metrics, cfg *config.Config) *usecase.KafkaSnapshotHandler {
	if archive == nil {
		return nil
	}
	return usecase.NewKafkaSnapshotHandler(cfg.Kafka.Topic, archive, m)
}

// ProvideChartService creates the cached chart usecase.
func ProvideChartService(engine *astro.Engine, c cache.Service, archive repository.Archive, m repository.Metrics, log *applogger.Logger, cfg *config.Config) *usecase.ChartService {
	svc := usecase.NewChartService(engine, c, m, log, cfg.Cache.TTL)
	if archive != nil && cfg.Archive.ServeFirst {
		svc.UseArchive(archive)
	}
	return svc
}

// ProvideArchiveService creates ranged archive reads for the API.
func ProvideArchiveService(archive repository.Archive, m repository.Metrics) *usecase.ArchiveService {
	if archive == nil {
		return nil
	}
	return usecase.NewArchiveService(archive, m)
}

// ProvideTransitStream creates the WebSocket pusher when enabled.
func ProvideTransitStream(charts *usecase.ChartService, m repository.Metrics, log *applogger.Logger, cfg *config.Config) *stream.TransitStream {
	if !cfg.Stream.Enabled {
		return nil
	}
	return stream.NewTransitStream(charts, m, log, cfg.Stream.PushInterval, cfg.Stream.PingInterval, cfg.Stream.BufferSize)
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(log *applogger.Logger, charts *usecase.ChartService, archive *usecase.ArchiveService, transit *stream.TransitStream) xhttp.Handler {
	return api.NewChartEchoHandler(log, charts, archive, transit)
}

// ProvideSnapshotWriter creates the backfill writer. The backend follows
// config: kafka publishes, clickhouse writes directly.
func ProvideSnapshotWriter(engine *astro.Engine, archive repository.Archive, m repository.Metrics, log *applogger.Logger, cfg *config.Config) (*usecase.SnapshotWriter, error) {
	var publisher repository.Publisher
	if cfg.Archive.Backend == "kafka" {
		producer, err := ProvideKafkaProducer(cfg)
		if err != nil {
			return nil, err
		}
		publisher = ProvideSnapshotPublisher(producer, cfg)
	}
	return usecase.NewSnapshotWriter(engine, publisher, archive, m, log, cfg.Archive.BatchSize), nil
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaSnapshotHandler,
	chClient *pkgch.Client,
	cacheSvc cache.Service,
	transit *stream.TransitStream,
) *server.App {
	var mh pkgkafka.MessageHandler
	if kh != nil {
		mh = kh
	}
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, log, handler, consumer, mh, chClient, cacheSvc, transit)
}
