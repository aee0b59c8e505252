// Package history keeps a bounded, linear undo/redo stack of applied
// patches.
//
// Undo applies an inverse built from the stored patch alone: add becomes
// remove, move is swapped and copy becomes remove. Replace and remove carry
// no prior value, so they have no inverse and are skipped; test needs none.
// Undoing a patch made of such operations therefore leaves the document
// unchanged while still moving the cursor.
package history

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/brunoga/sitepatch/patch"
)

// DefaultMaxSize is the capacity of a Manager built without WithMaxSize.
const DefaultMaxSize = 100

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Entry is one applied patch.
type Entry struct {
	ID          string
	Patch       patch.Patch
	Timestamp   time.Time
	Description string
}

// Manager is a linear undo/redo history. It is owned by a single edit
// session and is not safe for concurrent use.
type Manager struct {
	entries []Entry
	current int
	maxSize int

	applier *patch.Applier
	log     *slog.Logger
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxSize bounds the number of stored entries. Values below 1 are
// ignored.
func WithMaxSize(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxSize = n
		}
	}
}

// WithApplier sets the applier used by Undo and Redo.
func WithApplier(a *patch.Applier) Option {
	return func(m *Manager) {
		if a != nil {
			m.applier = a
		}
	}
}

// WithLogger sets the logger used to report skipped inverse operations.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock sets the time source for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New returns an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		current: -1,
		maxSize: DefaultMaxSize,
		applier: patch.NewApplier(),
		log:     slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Push records a patch that has just been applied. Entries after the cursor
// (the redo branch) are discarded. When the history is full the oldest entry
// is evicted and the cursor stays where it is, so it still points at the new
// last entry.
func (m *Manager) Push(p patch.Patch, description string) Entry {
	if m.current < len(m.entries)-1 {
		clear(m.entries[m.current+1:])
		m.entries = m.entries[:m.current+1]
	}
	e := Entry{
		ID:          uuid.NewString(),
		Patch:       slices.Clone(p),
		Timestamp:   m.now(),
		Description: description,
	}
	m.entries = append(m.entries, e)
	if len(m.entries) > m.maxSize {
		m.entries[0] = Entry{}
		m.entries = m.entries[1:]
	} else {
		m.current++
	}
	m.log.Debug("history push", "id", e.ID, "description", description, "operations", len(p), "size", len(m.entries))
	return e
}

// Undo reverts the entry at the cursor on doc and moves the cursor back. On
// failure the cursor is left unchanged.
func (m *Manager) Undo(doc map[string]any) (map[string]any, error) {
	if !m.CanUndo() {
		return nil, ErrNothingToUndo
	}
	e := m.entries[m.current]
	m.current--

	inv, skipped := inverse(e.Patch)
	for _, op := range skipped {
		m.log.Warn("operation has no inverse", "entry", e.ID, "op", op.Op, "path", op.Path)
	}

	res := m.applier.Apply(doc, inv)
	if !res.Success {
		m.current++
		return nil, fmt.Errorf("undo %q: %w", e.Description, res.Err())
	}
	return res.Document, nil
}

// Redo re-applies the entry after the cursor on doc and advances the cursor.
// On failure the cursor is left unchanged.
func (m *Manager) Redo(doc map[string]any) (map[string]any, error) {
	if !m.CanRedo() {
		return nil, ErrNothingToRedo
	}
	m.current++
	e := m.entries[m.current]

	res := m.applier.Apply(doc, e.Patch)
	if !res.Success {
		m.current--
		return nil, fmt.Errorf("redo %q: %w", e.Description, res.Err())
	}
	return res.Document, nil
}

// CanUndo reports whether an entry is available for Undo.
func (m *Manager) CanUndo() bool {
	return m.current >= 0
}

// CanRedo reports whether an entry is available for Redo.
func (m *Manager) CanRedo() bool {
	return m.current < len(m.entries)-1
}

// Entries returns a copy of the stored entries, oldest first.
func (m *Manager) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Current returns the index of the most recently applied entry, or -1.
func (m *Manager) Current() int {
	return m.current
}

// Len returns the number of stored entries.
func (m *Manager) Len() int {
	return len(m.entries)
}

// MaxSize returns the capacity of the history.
func (m *Manager) MaxSize() int {
	return m.maxSize
}

// Clear drops every entry.
func (m *Manager) Clear() {
	m.entries = nil
	m.current = -1
}

// Inverse returns the patch undoing p as far as p alone allows. See the
// package documentation for the operations that are skipped.
func Inverse(p patch.Patch) patch.Patch {
	inv, _ := inverse(p)
	return inv
}

func inverse(p patch.Patch) (patch.Patch, []patch.Operation) {
	inv := patch.New()
	var skipped []patch.Operation
	for i := len(p) - 1; i >= 0; i-- {
		op := p[i]
		switch op.Op {
		case patch.OperationTypeAdd, patch.OperationTypeCopy:
			inv = inv.Remove(op.Path)
		case patch.OperationTypeMove:
			inv = inv.Move(op.Path, op.From)
		case patch.OperationTypeTest:
		default:
			skipped = append(skipped, op)
		}
	}
	return inv, skipped
}
