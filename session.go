package sitepatch

import (
	"fmt"
	"log/slog"

	"github.com/brunoga/sitepatch/block"
	"github.com/brunoga/sitepatch/changes"
	"github.com/brunoga/sitepatch/config"
	"github.com/brunoga/sitepatch/history"
	"github.com/brunoga/sitepatch/internal/core"
	"github.com/brunoga/sitepatch/patch"
)

// Session is the edit session of one open document: it owns the current
// document, applies patches to it and records them for undo. A Session is
// not safe for concurrent use.
type Session struct {
	doc     Document
	page    string
	applier *patch.Applier
	history *history.Manager
	slots   block.Option
	log     *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger shared by the session, its applier and its
// history.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPage selects the page whose changes Apply, Undo and Redo report. The
// default is the first page.
func WithPage(pageID string) SessionOption {
	return func(s *Session) {
		s.page = pageID
	}
}

// NewSession starts a session on a copy of doc configured by cfg.
func NewSession(doc Document, cfg config.Config, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cloner, err := cfg.Cloner()
	if err != nil {
		return nil, err
	}
	s := &Session{
		slots: block.WithSlots(cfg.SlotFunc()),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.doc, err = core.CloneMap(cloner, doc)
	if err != nil {
		return nil, fmt.Errorf("cloning document: %w", err)
	}
	s.applier = patch.NewApplier(
		patch.WithCloner(cloner),
		patch.WithStrict(cfg.Strict),
		patch.WithLogger(s.log),
	)
	s.history = history.New(
		history.WithMaxSize(cfg.History.MaxSize),
		history.WithApplier(s.applier),
		history.WithLogger(s.log),
	)
	return s, nil
}

// Document returns the current document. It must not be modified.
func (s *Session) Document() Document {
	return s.doc
}

// History returns the undo history of the session.
func (s *Session) History() *history.Manager {
	return s.history
}

// BlockOptions returns the traversal options matching the session
// configuration, for use with the patch helpers.
func (s *Session) BlockOptions() []block.Option {
	return []block.Option{s.slots}
}

// Apply applies p, records it under description and reports what changed
// on the session page. On failure the document is left unchanged and the
// returned error is a *patch.ApplyError.
func (s *Session) Apply(p patch.Patch, description string) (changes.Report, error) {
	res := s.applier.Apply(s.doc, p)
	if !res.Success {
		s.log.Info("patch rejected", "description", description, "errors", len(res.Errors))
		return changes.Report{}, res.Err()
	}
	s.history.Push(p, description)
	return s.swap(res.Document), nil
}

// Undo reverts the last applied patch.
func (s *Session) Undo() (changes.Report, error) {
	next, err := s.history.Undo(s.doc)
	if err != nil {
		return changes.Report{}, err
	}
	return s.swap(next), nil
}

// Redo re-applies the last undone patch.
func (s *Session) Redo() (changes.Report, error) {
	next, err := s.history.Redo(s.doc)
	if err != nil {
		return changes.Report{}, err
	}
	return s.swap(next), nil
}

func (s *Session) swap(next Document) changes.Report {
	r := changes.Detect(s.doc, next, s.page, s.slots)
	s.doc = next
	return r
}
