package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/kbits/internal/config"
	ferrors "git.home.luguber.info/inful/kbits/internal/foundation/errors"
	"git.home.luguber.info/inful/kbits/internal/git"
	"git.home.luguber.info/inful/kbits/internal/logfields"
	"git.home.luguber.info/inful/kbits/internal/metrics"
)

// Builder runs the generator for a loaded site configuration.
// Runs are serialised; a Builder is safe for concurrent use.
type Builder struct {
	cfg       *config.Config
	runner    Runner
	recorder  metrics.Recorder
	reportDir string
	now       func() time.Time

	mu sync.Mutex
}

// NewBuilder creates a Builder. A nil runner falls back to BinaryRunner.
func NewBuilder(cfg *config.Config, runner Runner) *Builder {
	if runner == nil {
		runner = &BinaryRunner{}
	}
	return &Builder{cfg: cfg, runner: runner, recorder: metrics.NoopRecorder{}, now: time.Now}
}

// WithRecorder attaches a metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithReportDir makes every run persist its Report into dir.
func (b *Builder) WithReportDir(dir string) *Builder {
	b.reportDir = dir
	return b
}

// Config returns the configuration the builder runs with.
func (b *Builder) Config() *config.Config { return b.cfg }

// Run executes the generator once. The returned Report is never nil, even
// when the run fails.
func (b *Builder) Run(ctx context.Context, mode Mode) (*Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	report := &Report{
		ID:      uuid.NewString(),
		Mode:    mode,
		Profile: b.cfg.Source,
		Output:  b.cfg.OutputDir(),
		Start:   b.now(),
	}
	log := slog.With(logfields.BuildID(report.ID), logfields.Mode(string(mode)))

	err := b.run(ctx, mode, report, log)
	report.End = b.now()

	switch {
	case err == nil:
		report.Outcome = metrics.OutcomeSuccess
		b.recorder.SetLastSuccess(report.End)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		report.Outcome = metrics.OutcomeCanceled
	default:
		report.Outcome = metrics.OutcomeFailed
	}
	if err != nil {
		report.Error = err.Error()
	}
	b.recorder.ObserveBuildDuration(string(mode), report.Duration())
	b.recorder.IncBuildOutcome(string(mode), report.Outcome)

	if b.reportDir != "" {
		if perr := report.Persist(b.reportDir); perr != nil {
			log.Warn("Failed to persist build report", logfields.Error(perr))
		}
	}

	attrs := []any{
		slog.String("outcome", string(report.Outcome)),
		logfields.DurationMS(float64(report.Duration().Milliseconds())),
		logfields.Output(report.Output),
	}
	if err != nil {
		log.Error("Site build failed", append(attrs, logfields.Error(err))...)
		return report, err
	}
	log.Info("Site build complete", attrs...)
	return report, nil
}

func (b *Builder) run(ctx context.Context, mode Mode, report *Report, log *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := b.cfg.ContentDir()
	if st, err := os.Stat(content); err != nil || !st.IsDir() {
		return ferrors.NotFoundError("content directory not found").
			WithContext("path", content).WithCause(err).Build()
	}
	if mode.deletesOutput(b.cfg) && within(b.cfg.OutputDir(), content) {
		return ferrors.ValidationError("refusing to delete an output directory that contains the content").
			WithContext("output", b.cfg.OutputDir()).WithContext("content", content).Build()
	}

	b.describeSource(report, log)

	inv, err := BuildInvocation(b.cfg, mode)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "prepare generator invocation").Build()
	}

	log.Info("Running generator",
		logfields.Command(inv.Command),
		logfields.Content(content),
		logfields.Profile(report.Profile),
		logfields.Revision(report.Revision))

	if err := b.runner.Execute(ctx, inv); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ErrGeneratorNotFound) {
			return ferrors.WrapError(err, ferrors.CategoryNotFound, "generator command not available").
				WithContext("command", inv.Command).Fatal().Build()
		}
		return ferrors.WrapError(err, ferrors.CategoryGenerator, fmt.Sprintf("%s failed", mode)).
			WithContext("command", inv.Command).Build()
	}
	return nil
}

// describeSource fills in revision details. Neither a missing repository nor
// an unreadable content tree fails the build.
func (b *Builder) describeSource(report *Report, log *slog.Logger) {
	rev, err := git.HeadRevision(b.cfg.BaseDir())
	switch {
	case errors.Is(err, git.ErrNotRepository):
		log.Debug("Site is not a git repository", logfields.Path(b.cfg.BaseDir()))
	case err != nil:
		log.Warn("Could not read source revision", logfields.Error(err))
	default:
		report.Revision = rev.Short()
		report.Branch = rev.Branch
	}

	hash, err := git.ContentHash(b.cfg.ContentDir(), b.cfg.Paths.IgnoreFiles)
	if err != nil {
		log.Warn("Could not fingerprint content", logfields.Error(err))
		return
	}
	report.ContentHash = hash
}

// within reports whether child is parent or lies below it.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
