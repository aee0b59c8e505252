package patch

import (
	"fmt"

	"github.com/brunoga/sitepatch/internal/core"
)

type executor struct {
	clone core.Cloner
}

// apply executes a single operation against root, which must already be a
// private copy of the caller's document.
func (e *executor) apply(root map[string]any, op Operation) error {
	switch op.Op {
	case OperationTypeAdd:
		v, err := e.own(op.Value)
		if err != nil {
			return err
		}
		return e.applyAdd(root, op.Path, v)
	case OperationTypeRemove:
		return e.applyRemove(root, op.Path)
	case OperationTypeReplace:
		v, err := e.own(op.Value)
		if err != nil {
			return err
		}
		return e.applyReplace(root, op.Path, v)
	case OperationTypeMove:
		return e.applyMove(root, op.From, op.Path)
	case OperationTypeCopy:
		return e.applyCopy(root, op.From, op.Path)
	case OperationTypeTest:
		return e.applyTest(root, op.Path, op.Value)
	default:
		return fmt.Errorf("invalid operation type: %s", op.Op)
	}
}

// own copies a value carried by an operation so that the document never
// aliases the patch it was built from.
func (e *executor) own(v any) (any, error) {
	c, err := e.clone(v)
	if err != nil {
		return nil, fmt.Errorf("cloning value: %w", err)
	}
	return c, nil
}

// applyAdd implements the "add" operation.
func (e *executor) applyAdd(root map[string]any, path string, value any) error {
	segments := core.ParsePointer(path)
	if len(segments) == 0 {
		obj, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot merge %T into root", value)
		}
		for k, v := range obj {
			root[k] = v
		}
		return nil
	}
	_, err := addIn(root, segments, value)
	return err
}

// addIn walks to the parent of the last segment, creating missing
// containers on the way. Unlike core.Set, a container created here is an
// array when the segment that follows it is numeric.
func addIn(node any, segments []string, value any) (any, error) {
	key := segments[0]
	last := len(segments) == 1

	switch c := node.(type) {
	case map[string]any:
		if last {
			c[key] = value
			return c, nil
		}
		child, ok := c[key]
		if !ok || child == nil {
			child = newContainer(segments[1])
		}
		updated, err := addIn(child, segments[1:], value)
		if err != nil {
			return nil, err
		}
		c[key] = updated
		return c, nil

	case []any:
		if last {
			idx := len(c)
			if key != "-" {
				i, ok := core.ParseIndex(key)
				if !ok || i > len(c) {
					return nil, fmt.Errorf("index out of bounds: %s [0:%d]", key, len(c))
				}
				idx = i
			}
			return insertAt(c, idx, value), nil
		}
		i, ok := core.ParseIndex(key)
		if !ok || i > len(c) {
			return nil, fmt.Errorf("index out of bounds: %s [0:%d]", key, len(c))
		}
		var child any
		if i < len(c) {
			child = c[i]
		}
		if child == nil {
			child = newContainer(segments[1])
		}
		updated, err := addIn(child, segments[1:], value)
		if err != nil {
			return nil, err
		}
		if i == len(c) {
			return append(c, updated), nil
		}
		c[i] = updated
		return c, nil

	default:
		return nil, fmt.Errorf("cannot add %q to %T", key, node)
	}
}

func newContainer(next string) any {
	if _, ok := core.ParseIndex(next); ok {
		return []any{}
	}
	return map[string]any{}
}

func insertAt(s []any, idx int, v any) []any {
	out := make([]any, len(s)+1)
	copy(out, s[:idx])
	out[idx] = v
	copy(out[idx+1:], s[idx:])
	return out
}

// applyRemove implements the "remove" operation. Only the existence of the
// full path is checked; the accessor treats a bad array index as a no-op.
func (e *executor) applyRemove(root map[string]any, path string) error {
	if _, ok := core.Get(root, path); !ok {
		return fmt.Errorf("path not found: %s", path)
	}
	if len(core.ParsePointer(path)) == 0 {
		return fmt.Errorf("cannot remove root")
	}
	return core.Remove(root, path)
}

// applyReplace implements the "replace" operation. A missing target is
// created with add semantics instead of failing.
func (e *executor) applyReplace(root map[string]any, path string, value any) error {
	if len(core.ParsePointer(path)) == 0 {
		obj, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot replace root with %T", value)
		}
		clear(root)
		for k, v := range obj {
			root[k] = v
		}
		return nil
	}
	if _, ok := core.Get(root, path); !ok {
		return e.applyAdd(root, path, value)
	}
	return core.Set(root, path, value)
}

// applyMove implements the "move" operation.
func (e *executor) applyMove(root map[string]any, from, to string) error {
	v, ok := core.Get(root, from)
	if !ok {
		return fmt.Errorf("source path not found: %s", from)
	}
	if err := e.applyRemove(root, from); err != nil {
		return fmt.Errorf("removing from source: %w", err)
	}
	if err := e.applyAdd(root, to, v); err != nil {
		// Best effort restore. If this fails too the value is lost from both
		// locations; the batch is discarded anyway.
		_ = e.applyAdd(root, from, v)
		return fmt.Errorf("adding to destination: %w", err)
	}
	return nil
}

// applyCopy implements the "copy" operation.
func (e *executor) applyCopy(root map[string]any, from, to string) error {
	v, ok := core.Get(root, from)
	if !ok {
		return fmt.Errorf("source path not found: %s", from)
	}
	c, err := e.clone(v)
	if err != nil {
		return fmt.Errorf("cloning source: %w", err)
	}
	if err := e.applyAdd(root, to, c); err != nil {
		return fmt.Errorf("adding to destination: %w", err)
	}
	return nil
}

// applyTest implements the "test" operation.
func (e *executor) applyTest(root map[string]any, path string, value any) error {
	current, ok := core.Get(root, path)
	if !ok {
		return fmt.Errorf("path not found: %s", path)
	}
	if !core.Equal(current, value) {
		return fmt.Errorf("test failed: values are not equal")
	}
	return nil
}
