package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/souqline/internal/config"
	"github.com/souqline/internal/jobs"
	"github.com/souqline/internal/logger"
	"github.com/souqline/internal/provider"
	"github.com/souqline/internal/router"
	"github.com/souqline/internal/worker"
)

// Run modes.
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// BuildRunner assembles the services for the requested mode.
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		httpService := NewHTTPService(addr, engine)
		services = append(services, httpService)
	}

	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		}
		staleJob := jobs.NewStaleOrderJob(&cfg.Delivery, container.OrderRepo, container.NotificationService)
		services = append(services, staleJob)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run builds the runner for the mode and blocks until shutdown. The
// given signals trigger a graceful stop.
func Run(cfg *config.Config, mode string, signals ...os.Signal) error {
	if mode == "" {
		mode = ModeAll
	}
	runner, err := BuildRunner(cfg, mode)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if len(signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, signals...)
		defer cancel()
	}

	logger.Infow("app_start", "addr", cfg.Server.Host+":"+cfg.Server.Port, "mode", mode)
	return runner.Run(ctx, defaultShutdownTimeout)
}
