package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/pingstatus/internal/config"
	"github.com/hamed0406/pingstatus/internal/domain"
	"github.com/hamed0406/pingstatus/internal/httpapi"
	"github.com/hamed0406/pingstatus/internal/logging"
	"github.com/hamed0406/pingstatus/internal/probe"
	"github.com/hamed0406/pingstatus/internal/prober"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ep, err := probe.NewExecProbe(cfg.ProbeCommand)
	if err != nil {
		log.Fatal(err)
	}
	p := prober.New(logger, ep, nil, cfg.SuccessMarkers, cfg.ProbeTimeout)
	if cfg.DNSDiagnose {
		p.Diagnose = probe.Diagnose
	}
	api := httpapi.NewServer(logger, p, domain.DefaultTargets())

	logger.Info("api_listen", zap.String("addr", cfg.Addr), zap.Bool("auth", len(cfg.APIKeys) > 0))
	if err := http.ListenAndServe(cfg.Addr, api.Router(cfg.APIKeys, cfg.APIRPM, cfg.APIBurst)); err != nil {
		log.Fatal(err)
	}
}
