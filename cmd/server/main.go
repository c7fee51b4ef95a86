package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/config"
	"liyu1981.xyz/predictive-maintenance/pkg/db"
	pdmGrpc "liyu1981.xyz/predictive-maintenance/pkg/grpc"
	"liyu1981.xyz/predictive-maintenance/pkg/history"
	pdmHttp "liyu1981.xyz/predictive-maintenance/pkg/http"
	"liyu1981.xyz/predictive-maintenance/pkg/metrics"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
)

const limiterSweepInterval = time.Minute

func main() {
	if err := godotenv.Load(); err != nil && common.IsProduction() {
		log.Fatal("Error loading .env file in production")
	}

	configPath := os.Getenv(common.EnvKeyPDMConfigPath)
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	common.ConfigureLogger(cfg.Log.Options())
	logger := common.GetLogger()
	defer func() { _ = logger.Sync() }()

	dialector, err := db.DialectorFor(cfg.DB.Type, cfg.DB.Path, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DB.Type == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o755); err != nil {
			log.Fatalf("create db dir: %v", err)
		}
	}
	dbInstance := db.GetInstance(dialector)
	defer func() { _ = dbInstance.Close() }()

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatalf("register metrics: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Model.Path), 0o755); err != nil {
		log.Fatalf("create model dir: %v", err)
	}
	model, err := pdm.LoadHandle(cfg.Model.Path, cfg.Model.Hyperparameters)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}
	status := model.Status()
	logger.Info("Model ready",
		zap.String("source", string(status.Source)),
		zap.String("path", status.ArtifactPath),
		zap.Float64("validation_accuracy", status.Report.ValidationAccuracy),
	)

	pdmCore := pdm.New(history.NewStore(dbInstance), model, cfg.RetentionDays)
	limiters := cfg.Limiter.NewClientLimiters()
	logger.Info("Client limiter created with:",
		zap.Float64("default_rate", cfg.Limiter.Rate),
		zap.Int("default_burst", cfg.Limiter.Burst),
		zap.Int("overrides", len(cfg.Limiter.Overrides)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Model.Watch {
		g.Go(func() error {
			return pdm.WatchArtifact(ctx, model, nil)
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(limiterSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := limiters.Sweep(); n > 0 {
					logger.Debug("Swept idle client limiters", zap.Int("count", n))
				}
			}
		}
	})

	if cfg.GRPC.HostPort != "" {
		grpcServer := pdmGrpc.NewServer(&pdmGrpc.PDMServer{PDM: pdmCore, Limiters: limiters})
		g.Go(func() error {
			listener, err := net.Listen("tcp", cfg.GRPC.HostPort)
			if err != nil {
				return err
			}
			logger.Info("Starting gRPC server on " + cfg.GRPC.HostPort)
			return grpcServer.Serve(listener)
		})
		g.Go(func() error {
			<-ctx.Done()
			grpcServer.GracefulStop()
			return nil
		})
	}

	if !common.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	rs := &pdmHttp.RestfulServer{
		Server:   gin.Default(),
		PDM:      pdmCore,
		DB:       dbInstance,
		Limiters: limiters,
	}
	rs.Setup()
	httpServer := &http.Server{Addr: cfg.HTTP.HostPort, Handler: rs.Server}

	g.Go(func() error {
		logger.Info("Starting HTTP server on " + cfg.HTTP.HostPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
