package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tinyhttpd/internal/config"
	"tinyhttpd/internal/dispatcher"
	"tinyhttpd/internal/health"
	"tinyhttpd/internal/middleware"
	"tinyhttpd/internal/router"
	"tinyhttpd/internal/version"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

type Bootstrap struct {
	Config     config.Config
	Logger     *zap.Logger
	Handler    router.Handler
	Dispatcher dispatcher.Transport
	SignalChan chan os.Signal
}

func New(conf config.Config) (*Bootstrap, error) {
	logger, err := NewLogger(conf.LogLevel(), conf.LogDevelopment())
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	handler := middleware.Chain(
		router.NewDefault(router.NewDirStore(conf.Directory()), logger),
		middleware.AccessLog(logger),
	)

	d := dispatcher.New(dispatcher.Options{
		Address:        conf.ListenAddress(),
		Workers:        conf.Workers(),
		BufferSize:     conf.BufferSize(),
		MaxRequestSize: conf.MaxRequestSize(),
	}, handler, logger)

	return &Bootstrap{
		Config:     conf,
		Logger:     logger,
		Handler:    handler,
		Dispatcher: d,
		SignalChan: make(chan os.Signal, 1),
	}, nil
}

// NewLogger builds a JSON production logger, or a console logger when
// development is set.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func startPprof(ctx context.Context, pprofPort string, logger *zap.Logger) error {
	pprofAddr := net.JoinHostPort("localhost", pprofPort)
	srv := &http.Server{
		Addr:              pprofAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
	defer stop()

	logger.Info("starting pprof server", zap.String("url", fmt.Sprintf("http://%s/debug/pprof/", pprofAddr)))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("pprof server error: %w", err)
	}
	return nil
}

func startHealth(ctx context.Context, address string, logger *zap.Logger) error {
	srv := health.NewServer(address, logger)
	ln, err := srv.Listen()
	if err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}
	return srv.Serve(ctx, ln)
}

// Run serves until a signal arrives or one of the services fails. Every
// service is stopped before Run returns.
func (b *Bootstrap) Run() error {
	defer func() { _ = b.Logger.Sync() }()

	ln, err := b.Dispatcher.Listen()
	if err != nil {
		return fmt.Errorf("failed to start dispatcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signal.Notify(b.SignalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(b.SignalChan)

	g, gctx := errgroup.WithContext(ctx)
	run := func(fn func() error) {
		g.Go(func() error {
			defer cancel()
			return fn()
		})
	}

	run(func() error {
		if err := b.Dispatcher.Serve(gctx, ln); err != nil {
			return fmt.Errorf("error when serving dispatcher: %w", err)
		}
		return nil
	})

	if b.Config.HealthEnabled() {
		address := net.JoinHostPort(b.Config.Address(), b.Config.HealthPort())
		run(func() error { return startHealth(gctx, address, b.Logger) })
	}

	if b.Config.PprofEnabled() {
		run(func() error { return startPprof(gctx, b.Config.PprofPort(), b.Logger) })
	}

	g.Go(func() error {
		select {
		case sig := <-b.SignalChan:
			b.Logger.Info("received signal, initiating graceful shutdown", zap.Stringer("signal", sig))
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	b.Logger.Info("all services started successfully",
		zap.String("version", version.GetVersion()),
		zap.Stringer("address", ln.Addr()),
		zap.String("directory", b.Config.Directory()),
	)

	if err = g.Wait(); err != nil {
		return fmt.Errorf("service error: %w", err)
	}
	return nil
}
