// Package preview keeps rendered page markup in sync with a document,
// re-rendering a single block when the change detector allows it and the
// whole page otherwise.
package preview

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/brunoga/sitepatch/block"
	"github.com/brunoga/sitepatch/changes"
)

// Renderer produces markup for a page or a single block. Block markup must
// carry AnchorAttr on its root element.
type Renderer interface {
	RenderPage(doc map[string]any, pageID string) (string, error)
	RenderBlock(doc map[string]any, pageID, blockID string) (string, error)
}

// Mode tells how Update produced its output.
type Mode int

const (
	ModeUnchanged Mode = iota
	ModeTargeted
	ModeFull
)

func (m Mode) String() string {
	switch m {
	case ModeUnchanged:
		return "unchanged"
	case ModeTargeted:
		return "targeted"
	case ModeFull:
		return "full"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Update is the outcome of Updater.Update.
type Update struct {
	HTML    string
	Mode    Mode
	BlockID string // set for ModeTargeted
	Report  changes.Report
}

// Updater drives a Renderer from change reports.
type Updater struct {
	renderer Renderer
	log      *slog.Logger
	opts     []block.Option
}

// Option configures an Updater.
type Option func(*Updater)

// WithLogger sets the logger used to explain full renders.
func WithLogger(l *slog.Logger) Option {
	return func(u *Updater) {
		if l != nil {
			u.log = l
		}
	}
}

// WithBlockOptions sets the traversal options used for change detection.
func WithBlockOptions(opts ...block.Option) Option {
	return func(u *Updater) {
		u.opts = opts
	}
}

// NewUpdater returns an Updater rendering with r.
func NewUpdater(r Renderer, opts ...Option) *Updater {
	u := &Updater{
		renderer: r,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Update brings prevHTML, the markup of page pageID rendered from prev, up
// to date with next. An empty prevHTML always renders the full page.
func (u *Updater) Update(prev, next map[string]any, pageID, prevHTML string) (Update, error) {
	r := changes.Detect(prev, next, pageID, u.opts...)
	if r.Empty() && prevHTML != "" {
		return Update{HTML: prevHTML, Mode: ModeUnchanged, Report: r}, nil
	}

	if c, ok := r.Targeted(); ok && prevHTML != "" {
		out, err := u.splice(next, pageID, c.BlockID, prevHTML)
		if err == nil {
			return Update{HTML: out, Mode: ModeTargeted, BlockID: c.BlockID, Report: r}, nil
		}
		if !errors.Is(err, ErrAnchorNotFound) {
			return Update{}, err
		}
		u.log.Debug("block anchor missing, rendering page", "page", pageID, "block", c.BlockID)
	} else {
		u.log.Debug("rendering page", "page", pageID, "changes", len(r.Changes), "removed", len(r.Removed))
	}

	out, err := u.renderer.RenderPage(next, pageID)
	if err != nil {
		return Update{}, fmt.Errorf("rendering page %q: %w", pageID, err)
	}
	return Update{HTML: out, Mode: ModeFull, Report: r}, nil
}

func (u *Updater) splice(doc map[string]any, pageID, blockID, pageHTML string) (string, error) {
	markup, err := u.renderer.RenderBlock(doc, pageID, blockID)
	if err != nil {
		return "", fmt.Errorf("rendering block %q: %w", blockID, err)
	}
	return Splice(pageHTML, blockID, markup)
}
