package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/identity-server/internal/api/grpc/context"
	"github.com/dtroode/identity-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/identity-server/internal/api/grpc/server"
	adminhttp "github.com/dtroode/identity-server/internal/api/http"
	"github.com/dtroode/identity-server/internal/config"
	"github.com/dtroode/identity-server/internal/hasher"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/repository/memory"
	"github.com/dtroode/identity-server/internal/repository/postgres"
	redisrepo "github.com/dtroode/identity-server/internal/repository/redis"
	"github.com/dtroode/identity-server/internal/server"
	"github.com/dtroode/identity-server/internal/service"
	storage "github.com/dtroode/identity-server/internal/storage/minio"
	"github.com/dtroode/identity-server/internal/storage/snapshot"
	"github.com/dtroode/identity-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const defaultJWTSecret = "devsecret"

type userBackend interface {
	model.UserStore
	model.ActiveSessionStore
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	if cfg.JWT.Secret == defaultJWTSecret {
		logger.Warn("JWT_SECRET is not set, using development secret")
	}

	checks := make(map[string]adminhttp.HealthCheck)

	users, closeUsers, err := openUserStore(ctx, cfg, checks, logger)
	if err != nil {
		logger.Fatal("failed to initialize user store", "backend", cfg.UserStore.Backend, "error", err)
	}
	defer closeUsers()

	otpStore, sessionStore, closeRegistries := openRegistries(cfg, checks)
	defer closeRegistries()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	passwordHasher := hasher.NewArgon2id(hasher.Params{
		Time:      cfg.KDF.Time,
		MemoryKiB: cfg.KDF.MemKiB,
		Threads:   cfg.KDF.Par,
	}, cfg.KDF.Pepper)
	tokenManager := token.NewJWT(cfg.JWT.Secret, time.Now)

	otps := service.NewOTPRegistry(otpStore, service.NewLogNotifier(cfg.OTP.TTL, logger), cfg.OTP.TTL, time.Now, logger)
	sessions := service.NewSessionRegistry(tokenManager, sessionStore, service.SessionTTLs{
		Default:    cfg.Session.TTL,
		Remembered: cfg.Session.RememberTTL,
	}, time.Now, logger)
	identity := service.NewIdentity(users, users, passwordHasher, otps, sessions, metrics.New(registry), time.Now, logger)

	if count, err := users.Count(ctx); err == nil {
		logger.Info("user store ready", "backend", cfg.UserStore.Backend, "users", count)
	}

	ctxMgr := grpcctx.NewManager()
	r := router.New(identity, identity, ctxMgr, cfg.OTP.ExposeCode, logger)
	gs := r.Register()
	reflection.Register(gs)

	servers := []struct {
		server        model.Server
		securityLayer model.SecurityLayer
	}{
		{
			server:        grpcServer.NewGRPCServer(gs, fmt.Sprintf(":%s", cfg.GRPC.Port)),
			securityLayer: server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName),
		},
		{
			server:        adminhttp.NewServer(adminhttp.NewRouter(registry, checks, logger), cfg.HTTP.Address),
			securityLayer: server.NewPlainListener(),
		},
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.server, s.securityLayer)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.server.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func openUserStore(
	ctx context.Context,
	cfg *config.Config,
	checks map[string]adminhttp.HealthCheck,
	logger *logger.Logger,
) (userBackend, func(), error) {
	noop := func() {}

	switch cfg.UserStore.Backend {
	case config.UserStorePostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, noop, err
		}
		checks["postgres"] = db.Ping
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}
		return postgres.NewUserRepository(db.DB), closeDB, nil

	case config.UserStoreMinio:
		minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create minio client: %w", err)
		}
		storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
		if err != nil {
			return nil, noop, err
		}
		repo, err := memory.OpenUserRepository(ctx, snapshot.NewBlob(storageClient, cfg.UserStore.ObjectKey))
		return repo, noop, err

	default:
		repo, err := memory.OpenUserRepository(ctx, snapshot.NewFile(cfg.UserStore.FilePath))
		return repo, noop, err
	}
}

func openRegistries(
	cfg *config.Config,
	checks map[string]adminhttp.HealthCheck,
) (model.OTPStore, model.SessionStore, func()) {
	if cfg.Registry.Backend != config.RegistryRedis {
		return memory.NewOTPRepository(), memory.NewSessionRepository(), func() {}
	}

	client := redisrepo.NewClient(cfg.Redis.Addrs, cfg.Redis.Password, cfg.Redis.UseCluster)
	checks["redis"] = func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
	return redisrepo.NewOTPRepository(client), redisrepo.NewSessionRepository(client), func() { _ = client.Close() }
}
