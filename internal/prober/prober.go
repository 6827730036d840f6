package prober

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingstatus/internal/domain"
	"github.com/hamed0406/pingstatus/internal/probe"
)

// DiagnoseFunc explains a DOWN target for the logs. It never changes the output.
type DiagnoseFunc func(ctx context.Context, host string) probe.DNSStatus

type Prober struct {
	Logger   *zap.Logger
	Probe    probe.Probe
	Out      io.Writer
	Markers  []string
	Timeout  time.Duration // per probe; 0 means unbounded
	Diagnose DiagnoseFunc
}

func New(logger *zap.Logger, p probe.Probe, out io.Writer, markers []string, timeout time.Duration) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(markers) == 0 {
		markers = []string{probe.DefaultMarker}
	}
	if timeout < 0 {
		timeout = 0
	}
	return &Prober{
		Logger:  logger,
		Probe:   p,
		Out:     out,
		Markers: markers,
		Timeout: timeout,
	}
}

// Run probes each target once, in order, one at a time, and writes one status
// line per target to Out. Probe failures are reported as DOWN. Run only stops
// early when ctx is done or a line cannot be written.
func (p *Prober) Run(ctx context.Context, targets []domain.Target) ([]domain.Status, error) {
	out := make([]domain.Status, 0, len(targets))
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		st := p.check(ctx, t)
		if _, err := fmt.Fprintln(p.Out, st.Line()); err != nil {
			return out, fmt.Errorf("write status for %s: %w", t, err)
		}
		out = append(out, st)
	}

	p.Logger.Info("run_complete", zap.Int("targets", len(targets)))
	return out, nil
}

func (p *Prober) check(ctx context.Context, t domain.Target) domain.Status {
	host := string(t)
	pctx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	start := time.Now()
	report, err := p.Probe.Run(pctx, host)
	elapsed := time.Since(start)
	if err != nil {
		p.Logger.Warn("probe_error",
			zap.String("target", host),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	}

	st := domain.Status{Target: t, State: probe.Classify(report, p.Markers)}
	p.Logger.Debug("probe_checked",
		zap.String("target", host),
		zap.Stringer("state", st.State),
		zap.Duration("elapsed", elapsed),
		zap.Int("report_bytes", len(report)),
	)

	if st.State == domain.Down && p.Diagnose != nil {
		dns := p.Diagnose(ctx, host)
		p.Logger.Info("dns_check",
			zap.String("domain", dns.Domain),
			zap.String("class", dns.Class),
			zap.Int("addresses", dns.Addresses),
			zap.Strings("nameservers", dns.Nameservers),
			zap.String("cname", dns.CNAME),
			zap.String("resolver_error", dns.ResolverError),
		)
	}
	return st
}
