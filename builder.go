package sitepatch

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/brunoga/sitepatch/block"
	"github.com/brunoga/sitepatch/internal/core"
	"github.com/brunoga/sitepatch/patch"
)

var (
	// ErrInvalidMove is returned when a block would be moved into its own
	// subtree.
	ErrInvalidMove = errors.New("invalid move")
	// ErrDuplicateBlock is returned when a block id is already in use on
	// the target page.
	ErrDuplicateBlock = errors.New("duplicate block id")
	// ErrNotASlot is returned when the target prop exists but does not hold
	// an array of blocks.
	ErrNotASlot = errors.New("not a slot")
	// ErrInvalidProps is returned when a block's props exist but are not
	// an object.
	ErrInvalidProps = errors.New("invalid props")
)

// UpdateBlockProp returns a patch setting one prop of a block. It uses
// replace when the prop already exists and add otherwise; the applier treats
// both the same, strict validation does not.
func UpdateBlockProp(doc Document, pageID, blockID, name string, value any, opts ...block.Option) (patch.Patch, error) {
	return UpdateBlockProps(doc, pageID, blockID, map[string]any{name: value}, opts...)
}

// UpdateBlockProps returns a patch setting several props of a block, one
// operation per prop in key order.
func UpdateBlockProps(doc Document, pageID, blockID string, props map[string]any, opts ...block.Option) (patch.Patch, error) {
	loc, err := block.Locate(doc, pageID, blockID, opts...)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(props))
	for name := range props {
		if name == "" {
			return nil, fmt.Errorf("empty prop name for block %q", blockID)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	p, current, err := ensureProps(patch.New(), loc)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		path := core.JoinPath(loc.Path, "props", name)
		if _, ok := current[name]; ok {
			p = p.Replace(path, props[name])
		} else {
			p = p.Add(path, props[name])
		}
	}
	return p, nil
}

// ensureProps emits an add for a missing props object so that later
// operations have an existing parent. Props of any other type are an error.
func ensureProps(p patch.Patch, loc block.Location) (patch.Patch, map[string]any, error) {
	switch props := loc.Block["props"].(type) {
	case map[string]any:
		return p, props, nil
	case nil:
		return p.Add(core.JoinPath(loc.Path, "props"), map[string]any{}), nil, nil
	default:
		id, _ := block.ID(loc.Block)
		return nil, nil, fmt.Errorf("%w: props of block %q are %T", ErrInvalidProps, id, props)
	}
}

// target resolves the array a block is inserted into: the page structure when
// parentID is empty, otherwise the named slot of the parent block.
type target struct {
	path     string      // array path
	length   int         // current length, 0 when missing
	missing  bool        // the array does not exist yet
	prefix   patch.Patch // operations creating the array and its parents
	ancestor string      // path of the owning block, empty at the page root
}

func resolveTarget(doc Document, pageID, parentID, slot string, opts []block.Option) (target, error) {
	if parentID == "" {
		page, pagePath, err := block.FindPage(doc, pageID)
		if err != nil {
			return target{}, err
		}
		t := target{path: core.JoinPath(pagePath, "structure"), prefix: patch.New()}
		switch s := page["structure"].(type) {
		case []any:
			t.length = len(s)
		case nil:
			t.missing = true
			t.prefix = t.prefix.Add(t.path, []any{})
		default:
			return target{}, fmt.Errorf("%w: structure of page %q is %T", ErrNotASlot, pageID, s)
		}
		return t, nil
	}

	if slot == "" {
		return target{}, fmt.Errorf("%w: empty slot name for parent %q", ErrNotASlot, parentID)
	}
	parent, err := block.Locate(doc, pageID, parentID, opts...)
	if err != nil {
		return target{}, err
	}
	t := target{path: core.JoinPath(parent.Path, "props", slot), ancestor: parent.Path}
	var props map[string]any
	t.prefix, props, err = ensureProps(patch.New(), parent)
	if err != nil {
		return target{}, err
	}
	switch s := props[slot].(type) {
	case []any:
		t.length = len(s)
	case nil:
		t.missing = true
	default:
		return target{}, fmt.Errorf("%w: prop %q of block %q is %T", ErrNotASlot, slot, parentID, s)
	}
	if t.missing {
		t.prefix = t.prefix.Add(t.path, []any{})
	}
	return t, nil
}

// AddBlock returns a patch inserting blk at index in the slot of parentID.
// An empty parentID targets the page structure and ignores slot. A negative
// index appends. When the slot does not exist yet the patch first adds an
// empty array for it.
func AddBlock(doc Document, pageID, parentID, slot string, index int, blk block.Block, opts ...block.Option) (patch.Patch, error) {
	if blk.ID == "" {
		return nil, errors.New("block has no id")
	}
	if _, err := block.Locate(doc, pageID, blk.ID, opts...); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateBlock, blk.ID)
	} else if !errors.Is(err, block.ErrBlockNotFound) {
		return nil, err
	}

	t, err := resolveTarget(doc, pageID, parentID, slot, opts)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		index = t.length
	}
	if index > t.length {
		return nil, fmt.Errorf("index %d out of range [0:%d] in %s", index, t.length, t.path)
	}
	return t.prefix.Add(core.JoinIndex(t.path, index), blk.Value()), nil
}

// RemoveBlock returns a patch removing a block and everything below it.
func RemoveBlock(doc Document, pageID, blockID string, opts ...block.Option) (patch.Patch, error) {
	loc, err := block.Locate(doc, pageID, blockID, opts...)
	if err != nil {
		return nil, err
	}
	return patch.New().Remove(loc.Path), nil
}

// MoveBlock returns a patch moving a block to index in the slot of
// parentID (the page structure when parentID is empty). index refers to
// the destination array as it is before the move; a negative index appends.
// A block cannot be moved into itself or one of its descendants.
func MoveBlock(doc Document, pageID, blockID, parentID, slot string, index int, opts ...block.Option) (patch.Patch, error) {
	src, err := block.Locate(doc, pageID, blockID, opts...)
	if err != nil {
		return nil, err
	}
	if parentID == blockID {
		return nil, fmt.Errorf("%w: %q into itself", ErrInvalidMove, blockID)
	}

	t, err := resolveTarget(doc, pageID, parentID, slot, opts)
	if err != nil {
		return nil, err
	}
	if t.ancestor != "" && core.HasPrefix(t.ancestor, src.Path) {
		return nil, fmt.Errorf("%w: %q into its descendant %q", ErrInvalidMove, blockID, parentID)
	}

	if index > t.length {
		return nil, fmt.Errorf("index %d out of range [0:%d] in %s", index, t.length, t.path)
	}
	sameArray := t.path == src.ParentPath
	switch {
	case index < 0:
		index = t.length
		if sameArray {
			index--
		}
	case sameArray && index > src.Index:
		index--
	}

	dest := shiftAfterRemoval(t.path, src.Path)
	return t.prefix.Move(src.Path, core.JoinIndex(dest, index)), nil
}

// shiftAfterRemoval returns path as it reads once the array element at
// removed has been spliced out: a later sibling of removed on the way to
// path moves down by one.
func shiftAfterRemoval(path, removed string) string {
	rs := core.ParsePointer(removed)
	if len(rs) == 0 {
		return path
	}
	ri, ok := core.ParseIndex(rs[len(rs)-1])
	if !ok {
		return path
	}
	parent := rs[:len(rs)-1]
	ps := core.ParsePointer(path)
	if len(ps) <= len(parent) {
		return path
	}
	for i := range parent {
		if ps[i] != parent[i] {
			return path
		}
	}
	if pi, ok := core.ParseIndex(ps[len(parent)]); ok && pi > ri {
		out := append([]string(nil), ps...)
		out[len(parent)] = strconv.Itoa(pi - 1)
		return core.FormatPointer(out)
	}
	return path
}

// DuplicateBlock returns a patch inserting a copy of a block right after
// it, together with the id of the copy. The copy and every block nested in
// its slots get fresh ids.
func DuplicateBlock(doc Document, pageID, blockID string, opts ...block.Option) (patch.Patch, string, error) {
	loc, err := block.Locate(doc, pageID, blockID, opts...)
	if err != nil {
		return nil, "", err
	}
	v, err := core.CloneGo(loc.Block)
	if err != nil {
		return nil, "", fmt.Errorf("cloning block %q: %w", blockID, err)
	}
	dup := v.(map[string]any)
	reassignIDs(dup, opts)
	id, _ := dup["id"].(string)
	return patch.New().Add(core.JoinIndex(loc.ParentPath, loc.Index+1), dup), id, nil
}

func reassignIDs(b map[string]any, opts []block.Option) {
	b["id"] = uuid.NewString()
	props, _ := b["props"].(map[string]any)
	for _, slot := range block.SlotsOf(block.Location{Block: b}, opts...) {
		children, _ := props[slot].([]any)
		for _, c := range children {
			if m, ok := c.(map[string]any); ok {
				if _, ok := block.ID(m); ok {
					reassignIDs(m, opts)
				}
			}
		}
	}
}

// UpdateTheme returns a patch setting several theme values, one operation
// per key in key order. A missing theme object is added first.
func UpdateTheme(doc Document, values map[string]any) (patch.Patch, error) {
	p := patch.New()
	var theme map[string]any
	switch t := doc["theme"].(type) {
	case map[string]any:
		theme = t
	case nil:
		p = p.Add("/theme", map[string]any{})
	default:
		return nil, fmt.Errorf("theme is %T, want object", t)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "" {
			return nil, errors.New("empty theme key")
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		path := core.JoinPath("/theme", k)
		if _, ok := theme[k]; ok {
			p = p.Replace(path, values[k])
		} else {
			p = p.Add(path, values[k])
		}
	}
	return p, nil
}

// UpdateThemeProp returns a patch setting a single theme value.
func UpdateThemeProp(doc Document, name string, value any) (patch.Patch, error) {
	return UpdateTheme(doc, map[string]any{name: value})
}
