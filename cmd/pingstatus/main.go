package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hamed0406/pingstatus/internal/config"
	"github.com/hamed0406/pingstatus/internal/domain"
	"github.com/hamed0406/pingstatus/internal/logging"
	"github.com/hamed0406/pingstatus/internal/probe"
	"github.com/hamed0406/pingstatus/internal/prober"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ep, err := probe.NewExecProbe(cfg.ProbeCommand)
	if err != nil {
		return err
	}
	p := prober.New(logger, ep, os.Stdout, cfg.SuccessMarkers, cfg.ProbeTimeout)
	if cfg.DNSDiagnose {
		p.Diagnose = probe.Diagnose
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	targets := domain.DefaultTargets()
	logger.Info("run_start",
		zap.Int("targets", len(targets)),
		zap.String("command", ep.Command()),
		zap.Strings("markers", cfg.SuccessMarkers),
	)
	if _, err := p.Run(ctx, targets); err != nil {
		logger.Error("run_failed", zap.Error(err))
		return err
	}
	return nil
}
