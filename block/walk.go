package block

import (
	"fmt"

	"github.com/brunoga/sitepatch/internal/core"
)

// Location describes where a block lives in a document.
type Location struct {
	PageID     string
	PagePath   string // e.g. /pages/0
	Path       string // path of the block itself
	ParentPath string // path of the array holding the block
	Index      int    // index of the block in that array
	ParentID   string // id of the owning block, empty at the page root
	Slot       string // slot name in the owning block, empty at the page root
	Block      map[string]any
}

type options struct {
	slots SlotFunc
}

// Option configures traversal.
type Option func(*options)

// WithSlots replaces DefaultSlots.
func WithSlots(f SlotFunc) Option {
	return func(o *options) {
		if f != nil {
			o.slots = f
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{slots: DefaultSlots}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Pages returns the pages array of doc.
func Pages(doc map[string]any) []any {
	pages, _ := doc["pages"].([]any)
	return pages
}

// Structure returns the root blocks of page.
func Structure(page map[string]any) []any {
	s, _ := page["structure"].([]any)
	return s
}

// FindPage returns the page with the given id and its path. An empty id
// selects the first page.
func FindPage(doc map[string]any, pageID string) (map[string]any, string, error) {
	for i, p := range Pages(doc) {
		page, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if id, _ := page["id"].(string); pageID == "" || id == pageID {
			return page, core.JoinIndex("/pages", i), nil
		}
	}
	if pageID == "" {
		return nil, "", fmt.Errorf("%w: document has no pages", ErrPageNotFound)
	}
	return nil, "", fmt.Errorf("%w: %q", ErrPageNotFound, pageID)
}

// Walk visits every block of structure in pre-order, descending into each
// block's slots in the order reported by the SlotFunc. arrayPath is the path
// of structure itself. Returning false from fn stops the walk.
func Walk(structure []any, arrayPath string, fn func(Location) bool, opts ...Option) {
	o := newOptions(opts)
	walk(structure, arrayPath, "", "", fn, o)
}

func walk(arr []any, arrayPath, parentID, slot string, fn func(Location) bool, o *options) bool {
	for i, e := range arr {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		path := core.JoinIndex(arrayPath, i)
		id, hasID := m["id"].(string)
		if hasID {
			loc := Location{
				Path:       path,
				ParentPath: arrayPath,
				Index:      i,
				ParentID:   parentID,
				Slot:       slot,
				Block:      m,
			}
			if !fn(loc) {
				return false
			}
		}
		props, _ := m["props"].(map[string]any)
		for _, s := range o.slots(props) {
			children, _ := props[s].([]any)
			if !walk(children, core.JoinPath(path, "props", s), id, s, fn, o) {
				return false
			}
		}
	}
	return true
}

// Flatten indexes every block of page by id. When an id appears more than
// once the first occurrence in pre-order wins. The returned slice lists ids
// in pre-order.
func Flatten(page map[string]any, opts ...Option) (map[string]Location, []string) {
	index := make(map[string]Location)
	var order []string
	Walk(Structure(page), "/structure", func(l Location) bool {
		id, _ := l.Block["id"].(string)
		if _, seen := index[id]; !seen {
			index[id] = l
			order = append(order, id)
		}
		return true
	}, opts...)
	return index, order
}
