// Package block models page-builder blocks on top of the generic document
// tree and provides the slot-aware traversal shared by the patch helpers and
// the change detector.
package block

import (
	"errors"
)

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrBlockNotFound = errors.New("block not found")
)

// Block is a typed view of a block node: {id, type, props}.
type Block struct {
	ID    string
	Type  string
	Props map[string]any
}

// New returns a block with empty props.
func New(id, typ string) Block {
	return Block{ID: id, Type: typ, Props: map[string]any{}}
}

// With returns a copy of b with prop name set to value. The props map is
// copied shallowly.
func (b Block) With(name string, value any) Block {
	props := make(map[string]any, len(b.Props)+1)
	for k, v := range b.Props {
		props[k] = v
	}
	props[name] = value
	b.Props = props
	return b
}

// Value converts b to its document representation.
func (b Block) Value() map[string]any {
	props := b.Props
	if props == nil {
		props = map[string]any{}
	}
	return map[string]any{
		"id":    b.ID,
		"type":  b.Type,
		"props": props,
	}
}

// FromValue reads a block from its document representation. It reports
// false when v is not block-shaped.
func FromValue(v any) (Block, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Block{}, false
	}
	id, ok := m["id"].(string)
	if !ok {
		return Block{}, false
	}
	typ, _ := m["type"].(string)
	props, _ := m["props"].(map[string]any)
	return Block{ID: id, Type: typ, Props: props}, true
}

// ID returns the id of a block-shaped value.
func ID(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	id, ok := m["id"].(string)
	return id, ok
}

// Props returns the props of a block value, or nil.
func Props(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	props, _ := m["props"].(map[string]any)
	return props
}
