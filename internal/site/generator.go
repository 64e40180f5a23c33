package site

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/markdown"
	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
	"git.home.luguber.info/inful/pagebuilder/internal/render"
	"git.home.luguber.info/inful/pagebuilder/internal/templates"
	"git.home.luguber.info/inful/pagebuilder/internal/util/paths"
)

const (
	DefaultContentDir   = "content"
	DefaultTemplatesDir = "templates"
	DefaultOutputDir    = "public"
	DefaultOutputExt    = ".html"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Generator holds the three roots of a site and the collaborators used to
// render it. The zero value is not usable; call New.
type Generator struct {
	ContentDir   string
	TemplatesDir string
	OutputDir    string
	OutputExt    string

	// Store overrides the template directory when set.
	Store templates.Store
	// CacheTemplates snapshots the template directory once at the start of
	// a run instead of reading a template on every lookup.
	CacheTemplates bool

	Engine          templates.Engine
	Markdown        markdown.Converter
	ContentOptions  content.Options
	ContinueOnError bool
	Recorder        metrics.Recorder
	Logger          *slog.Logger
}

// New returns a generator over the given roots with the default engine,
// Markdown options and a no-op recorder.
func New(contentDir, templatesDir, outputDir string) *Generator {
	return &Generator{
		ContentDir:   contentDir,
		TemplatesDir: templatesDir,
		OutputDir:    outputDir,
		OutputExt:    DefaultOutputExt,
		Engine:       templates.NewHandlebars(templates.DefaultHelpers()),
		Markdown:     markdown.New(markdown.DefaultOptions()),
		Recorder:     metrics.NoopRecorder{},
		Logger:       slog.Default(),
	}
}

// Task is one unit of site production.
type Task interface {
	// Name identifies the task in logs, metrics and reports.
	Name() string
	run(r *run) error
}

// Run executes tasks in order. Without ContinueOnError the first failure
// aborts the run. With it, per-file failures are logged and returned joined
// once every task has run. A template store that cannot be opened aborts
// before anything is written.
func (g *Generator) Run(tasks ...Task) (*Report, error) {
	buildID := uuid.NewString()
	report := newReport(buildID)
	logger := g.logger().With(logfields.BuildID(buildID))

	err := g.run(logger, report, tasks)
	report.finish(err)
	g.recorder().ObserveBuildDuration(report.Duration())

	if err == nil && len(report.Failures) > 0 {
		err = errors.Join(report.Failures...)
	}
	if err != nil {
		logger.Error("Build failed",
			slog.String("outcome", string(report.Outcome)),
			slog.Int("failures", len(report.Failures)),
			logfields.Error(err))
		return report, err
	}
	logger.Info("Build complete",
		logfields.Count(len(report.Files)),
		logfields.DurationMS(float64(report.Duration().Microseconds())/1000))
	return report, nil
}

func (g *Generator) run(logger *slog.Logger, report *Report, tasks []Task) error {
	store, err := g.openStore()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(g.OutputDir, dirPerm); err != nil {
		return berrors.OutputWrite(g.OutputDir, err)
	}

	r := &run{
		gen:      g,
		renderer: render.New(store, g.Engine, content.NewLoader[content.Fields](g.Markdown, g.ContentOptions)),
		logger:   logger,
		report:   report,
	}
	r.renderer.Logger = logger
	logger.Info("Build started", slog.Int("tasks", len(tasks)), logfields.Output(g.OutputDir))

	for _, t := range tasks {
		r.task = t.Name()
		start := time.Now()
		failuresBefore := len(report.Failures)

		err := t.run(r)
		d := time.Since(start)
		report.TaskDurations[t.Name()] = d
		g.recorder().ObserveTaskDuration(t.Name(), d)

		if err != nil || len(report.Failures) > failuresBefore {
			g.recorder().IncTaskResult(t.Name(), metrics.ResultFailed)
		} else {
			g.recorder().IncTaskResult(t.Name(), metrics.ResultSuccess)
		}
		if err != nil {
			return err
		}
		logger.Debug("Task complete", logfields.Task(t.Name()), logfields.DurationMS(float64(d.Microseconds())/1000))
	}
	return nil
}

func (g *Generator) openStore() (templates.Store, error) {
	if g.Store != nil {
		return g.Store, nil
	}
	if g.CacheTemplates {
		return templates.LoadDir(g.TemplatesDir)
	}
	ds := templates.NewDirStore(g.TemplatesDir)
	if err := ds.Check(); err != nil {
		return nil, err
	}
	return ds, nil
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Generator) recorder() metrics.Recorder {
	if g.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return g.Recorder
}

func (g *Generator) outputExt() string {
	if g.OutputExt == "" {
		return DefaultOutputExt
	}
	return g.OutputExt
}

// run is the state shared by the tasks of one Generator.Run.
type run struct {
	gen      *Generator
	renderer *render.Renderer
	logger   *slog.Logger
	report   *Report
	task     string
}

// fail records err. It returns err when the run must stop and nil when the
// generator continues past failures.
func (r *run) fail(err error) error {
	r.gen.recorder().IncFailures(string(berrors.GetCategory(err)))
	if !r.gen.ContinueOnError {
		return err
	}
	r.report.Failures = append(r.report.Failures, err)
	r.logger.Error("Render failed, continuing",
		logfields.Task(r.task),
		logfields.Category(string(berrors.GetCategory(err))),
		logfields.Error(err))
	return nil
}

// write stores data at rel (relative to the output root, extension
// appended). Parent directories are created; rel may not leave the root.
func (r *run) write(rel, data string) error {
	rel += r.gen.outputExt()
	path, err := paths.Within(r.gen.OutputDir, rel)
	if err != nil {
		return berrors.OutputWrite(rel, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return berrors.OutputWrite(path, err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(data)); err != nil {
		return berrors.OutputWrite(path, err)
	}
	// #nosec G302 -- generated pages are meant to be world-readable.
	if err := os.Chmod(path, filePerm); err != nil {
		return berrors.OutputWrite(path, fmt.Errorf("chmod: %w", err))
	}

	r.report.Files = append(r.report.Files, filepath.ToSlash(rel))
	r.gen.recorder().IncFilesRendered(r.task)
	r.logger.Debug("Wrote output", logfields.Task(r.task), logfields.Output(path))
	return nil
}
