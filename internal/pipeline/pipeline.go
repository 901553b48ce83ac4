package pipeline

import (
	"context"
	"log/slog"

	"github.com/ittijoseph/assetmirror/internal/model"
)

// Step defines the interface all pipeline steps implement. Steps run in
// sequence, each receiving the document as mutated by previous steps.
//
// Design decision: an interface rather than function types because:
//  1. Steps carry configuration state (extractor rules, fetch modes)
//  2. Name() supports logging and debugging
//  3. It keeps the stage boundaries explicit and independently testable
type Step interface {
	// Do executes the step against the document. A returned error means
	// the step failed as a whole; per-asset failures are recorded in
	// the document's report and return nil.
	Do(ctx context.Context, doc *model.Document) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of steps over one document.
// The fixed processing order (extract, fetch, rewrite, ensure tags,
// normalize links) is expressed by the order steps are added.
type Pipeline struct {
	// steps is the ordered list of steps to execute.
	steps []Step

	// logger for structured logging during execution.
	logger *slog.Logger

	// continueOnError keeps executing steps after one fails.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps the pipeline running after a step fails.
// The failure is logged and recorded in the file report; subsequent
// steps still execute. The default is to stop, because a failed extract
// leaves nothing for later stages to work on.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a Pipeline with the given options. Steps are added with
// AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step. Steps execute in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence against the document.
// Cancellation is checked between steps; steps bound their own I/O.
// Returns the first step error when continueOnError is false.
func (p *Pipeline) Execute(ctx context.Context, doc *model.Document) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"file", doc.Path,
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name(), "file", doc.Path)

		if err := step.Do(ctx, doc); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"file", doc.Path,
				"error", err,
			)
			doc.Report.AddMessage(step.Name() + " failed: " + err.Error())
			if !p.continueOnError {
				return err
			}
		}
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
