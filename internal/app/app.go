package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/Inu41123/api-almacen/internal/cfg"
	v1Http "github.com/Inu41123/api-almacen/internal/delivery/v1/http"
	kafkaInfra "github.com/Inu41123/api-almacen/internal/infrastructure/kafka"
	minioInfra "github.com/Inu41123/api-almacen/internal/infrastructure/minio"
	s3Repo "github.com/Inu41123/api-almacen/internal/repository/minio"
	"github.com/Inu41123/api-almacen/internal/repository/mongodb"
	redisRepo "github.com/Inu41123/api-almacen/internal/repository/redis"
	"github.com/Inu41123/api-almacen/internal/usecase"
	"github.com/Inu41123/api-almacen/pkg/clients"
	"github.com/Inu41123/api-almacen/pkg/closer"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/Inu41123/api-almacen/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const shutdownTimeout = 10 * time.Second

// App wires the repositories, infrastructure and HTTP delivery together and
// owns the lifecycle of every external client.
type App struct {
	cfg            *config.Config
	logger         logger.Logger
	httpSrv        *v1Http.Server
	media          *minioInfra.MediaInfrastructure
	closer         *closer.Closer
	shutdownCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(2 * time.Second)

	// Base context for background media cleanup; canceled last, after the
	// cleanup queue has drained.
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer bootCancel()

	mongoClient, err := clients.NewMongoClient(bootCtx, cfg.Mongo)
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return mongoClient.Disconnect(ctx)
	})

	productRepo := mongodb.NewProductRepo(mongoClient.Database(cfg.Mongo.Database))

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := clients.EnsureBucket(bootCtx, minioClient, cfg.Minio.BucketName); err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	media := minioInfra.NewMediaInfrastructure(imageRepo, cfg.Minio, log, shutdownCtx)

	redisClient := clients.NewRedisClient(cfg.Redis)
	if err := redisClient.Ping(bootCtx); err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redisRepo.NewCacheRepo(redisClient, cfg.Redis, log)

	var events usecase.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := kafkaInfra.NewProducer(log, cfg.Kafka)
		if err != nil {
			shutdownCancel()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := producer.EnsureTopic(10 * time.Second); err != nil {
			shutdownCancel()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		cl.Add(func(ctx context.Context) error {
			return producer.Close()
		})
		events = producer
	} else {
		log.Infof("KAFKA_BROKERS not set, product change events disabled")
	}

	productUC := usecase.NewProductUC(productRepo, media, cacheRepo, events, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(productUC)

	return &App{
		cfg:            cfg,
		logger:         log,
		httpSrv:        v1Http.NewServer(r, cfg.Http),
		media:          media,
		closer:         cl,
		shutdownCancel: shutdownCancel,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal or a fatal
// server error, then shuts everything down gracefully.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.media.WaitForCleanup(shutdownCtx); err != nil {
		a.logger.Warnf("media cleanup did not finish before shutdown: %v", err)
	} else {
		a.logger.Infof("media cleanup completed")
	}
	a.shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("resource shutdown error: %v", err)
	}

	a.logger.Infof("application shutdown complete")
	return appErr
}
