package commands

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output          string `short:"o" help:"Override the configured output directory"`
	ContinueOnError bool   `name:"continue-on-error" help:"Render every file and report all failures at the end"`
	MetricsFile     string `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, false)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.OutputDir = b.Output
	}
	if b.ContinueOnError {
		cfg.ContinueOnError = true
	}

	gen := cfg.Generator()
	gen.Logger = g.logger()
	var reg *prom.Registry
	if b.MetricsFile != "" {
		reg = prom.NewRegistry()
		gen.Recorder = metrics.NewPrometheusRecorder(reg)
	}

	tasks, err := cfg.Tasks()
	if err != nil {
		return err
	}
	report, runErr := gen.Run(tasks...)

	if reg != nil {
		if err := metrics.WriteTextfile(b.MetricsFile, reg); err != nil {
			g.logger().Warn("Failed to write metrics", logfields.Path(b.MetricsFile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}
	_, _ = fmt.Fprintf(g.out(), "Built %d files into %s in %s\n", len(report.Files), gen.OutputDir, report.Duration().Round(1e6))
	return nil
}
