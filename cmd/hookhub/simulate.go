package hookhub

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arthur-debert/hookhub/pkg/bus"
	"github.com/arthur-debert/hookhub/pkg/config"
	"github.com/arthur-debert/hookhub/pkg/dispatcher"
	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/exchange"
	"github.com/arthur-debert/hookhub/pkg/hooks"
	"github.com/arthur-debert/hookhub/pkg/metrics"
	"github.com/arthur-debert/hookhub/pkg/plugins/trace"
	"github.com/arthur-debert/hookhub/pkg/settings"
	"github.com/arthur-debert/hookhub/pkg/ui"
)

// SimulateOptions controls one simulated session
type SimulateOptions struct {
	Config *config.Config
	// Phases are fired in order once the capability phase has run
	Phases []string
	Once   bool
	// Registerer receives the dispatch metrics; nil uses a private registry
	Registerer prometheus.Registerer
}

// Simulate drives an in-memory host through a full plugin lifecycle
func Simulate(opts SimulateOptions) (ui.Report, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	store, err := settings.Load(cfg.Settings.File)
	if err != nil {
		return ui.Report{}, errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadSettings)
	}

	host := bus.New()
	var faults []string
	dispatcherOpts := []dispatcher.Option{
		dispatcher.WithBootstrapPhase(cfg.Phases.Bootstrap),
		dispatcher.WithAPIPhase(cfg.Phases.API),
		dispatcher.WithVersionInfo(cfg.VersionInfo()),
		dispatcher.WithSettings(store),
		dispatcher.WithFaultHandler(func(f hooks.Fault) {
			faults = append(faults, f.Error())
		}),
	}
	if cfg.Metrics.Enabled {
		dispatcherOpts = append(dispatcherOpts, dispatcher.WithMetrics(metrics.New(opts.Registerer)))
	}

	d := dispatcher.New(host, dispatcherOpts...)
	if err := d.Build(); err != nil {
		return ui.Report{}, errors.Wrap(err, errors.GetErrorCode(err), MsgErrBuildSession)
	}

	mode := hooks.ModeOf(opts.Once)
	loader := dispatcher.NewLoader()
	if err := loader.Add(trace.New(unique(opts.Phases), trace.WithMode(mode))); err != nil {
		return ui.Report{}, err
	}
	for _, err := range loader.Attach(host) {
		faults = append(faults, err.Error())
	}

	host.Fire(cfg.Phases.Bootstrap)
	host.Fire(cfg.Phases.API)
	for _, phase := range opts.Phases {
		host.Fire(phase)
	}

	report := ui.Report{
		State:         d.State().String(),
		Plugins:       loader.Names(),
		Phases:        append([]string{cfg.Phases.Bootstrap, cfg.Phases.API}, opts.Phases...),
		Subscriptions: d.Subscriptions(),
		Faults:        faults,
	}

	lines, err := exchange.RequireAs[func() []string](d.Namespace(), trace.Name, trace.CapLines)
	if err != nil {
		return report, err
	}
	report.Lines = lines()
	return report, nil
}

func unique(phases []string) []string {
	seen := make(map[string]bool, len(phases))
	out := make([]string, 0, len(phases))
	for _, p := range phases {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
