package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ascend-app/ascend/internal/ai"
	"github.com/ascend-app/ascend/internal/api"
	"github.com/ascend-app/ascend/internal/app/gamification"
	"github.com/ascend-app/ascend/internal/app/habit"
	"github.com/ascend-app/ascend/internal/app/motivation"
	"github.com/ascend-app/ascend/internal/health"
	_ "github.com/ascend-app/ascend/internal/infra/metrics" // Register Prometheus metrics
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Daemon is the core Ascend runtime. It wires together all services.
type Daemon struct {
	Config     Config
	DB         *sqlite.DB
	Game       *gamification.Service
	Habits     *habit.Service
	Motivation *motivation.Service
	AI         *ai.Client
	Health     *health.Checker
	Server     *api.Server
	cancel     context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(ascendHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{Config: cfg, DB: db}

	d.Motivation = motivation.NewService(db, cfg.Notifications.Policy())

	d.Game = gamification.NewService(db)
	d.Game.SetNotifier(d.Motivation)

	d.Habits = habit.NewService(db)
	d.Habits.SetNotifier(d.Motivation)

	d.Health = health.NewChecker(db, ascendHome())

	srv := api.NewServer(d.Game, d.Habits, d.Motivation)
	srv.SetHealth(d.Health)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	if cfg.AI.APIKey != "" {
		d.AI = ai.NewClient(cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.APIKey)
		srv.SetAI(d.AI)
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.Motivation.Start(ctx)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		d.Motivation.Stop()
		_ = d.DB.Close()
	}()

	fmt.Printf("Ascend serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}
	if d.AI == nil {
		fmt.Println("  AI collaborator: disabled (set ASCEND_AI_KEY to enable)")
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
