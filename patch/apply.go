package patch

import (
	"fmt"
	"log/slog"

	"github.com/brunoga/sitepatch/internal/core"
)

// Cloner returns a deep copy of a document value.
type Cloner = core.Cloner

// ClonerByName returns one of the built-in cloners: "go-clone" (default),
// "copystructure" or "deepcopy".
func ClonerByName(name string) (Cloner, error) {
	return core.ClonerByName(name)
}

// Result is the outcome of applying a Patch. Document is only set when
// Success is true.
type Result struct {
	Success  bool
	Document map[string]any
	Errors   []error
}

// Err returns an *ApplyError holding every error of the batch, or nil.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &ApplyError{errors: r.Errors}
}

func failed(err error) Result {
	return Result{Errors: []error{err}}
}

// Applier applies patches to documents. The zero value is not usable; use
// NewApplier.
type Applier struct {
	exec   executor
	log    *slog.Logger
	strict bool
	cond   *Condition
}

// Option configures an Applier.
type Option func(*Applier)

// WithCloner sets the function used to copy documents and values.
func WithCloner(c Cloner) Option {
	return func(a *Applier) {
		if c != nil {
			a.exec.clone = c
		}
	}
}

// WithLogger sets the logger used to report failed operations.
func WithLogger(l *slog.Logger) Option {
	return func(a *Applier) {
		if l != nil {
			a.log = l
		}
	}
}

// WithStrict makes Apply validate every patch against strict RFC 6902
// semantics before executing it.
func WithStrict(strict bool) Option {
	return func(a *Applier) {
		a.strict = strict
	}
}

// WithCondition makes Apply evaluate c against the document first and
// refuse the patch when it does not hold.
func WithCondition(c *Condition) Option {
	return func(a *Applier) {
		a.cond = c
	}
}

// NewApplier returns an Applier configured with opts.
func NewApplier(opts ...Option) *Applier {
	a := &Applier{
		exec: executor{clone: core.CloneGo},
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultApplier = NewApplier()

// Apply applies p to doc with the default Applier.
func Apply(doc map[string]any, p Patch) Result {
	return defaultApplier.Apply(doc, p)
}

// Apply copies doc and executes every operation of p against the copy, in
// order. Execution continues after a failed operation so that all errors of
// the batch are reported together, but the copy is returned only when no
// operation failed. doc itself is never modified.
func (a *Applier) Apply(doc map[string]any, p Patch) Result {
	if a.cond != nil {
		ok, err := a.cond.Evaluate(doc)
		if err != nil {
			return failed(fmt.Errorf("condition evaluation failed: %w", err))
		}
		if !ok {
			return failed(fmt.Errorf("%w: %s", ErrConditionFailed, a.cond))
		}
	}

	if a.strict {
		if err := ValidateStrict(doc, p); err != nil {
			return failed(err)
		}
	}

	root, err := core.CloneMap(a.exec.clone, doc)
	if err != nil {
		return failed(fmt.Errorf("cloning document: %w", err))
	}

	var errs []error
	for i, op := range p {
		if err := a.exec.apply(root, op); err != nil {
			a.log.Debug("patch operation failed", "index", i, "op", op.Op, "path", op.Path, "from", op.From, "error", err)
			errs = append(errs, fmt.Errorf("operation %d (%s %s): %w", i, op.Op, op.Path, err))
		}
	}

	if len(errs) > 0 {
		a.log.Debug("patch discarded", "operations", len(p), "errors", len(errs))
		return Result{Errors: errs}
	}
	return Result{Success: true, Document: root}
}
