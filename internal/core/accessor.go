package core

import (
	"fmt"
)

// Get returns the value stored at path inside root. The boolean is false when
// the path cannot be followed: a missing key, a nil or scalar container, or an
// array segment that is not a valid in-range index. A key that is present but
// holds nil resolves to (nil, true).
func Get(root any, path string) (any, bool) {
	return GetSegments(root, ParsePointer(path))
}

// GetSegments is Get for an already parsed path.
func GetSegments(root any, segments []string) (any, bool) {
	current := root
	for _, s := range segments {
		switch c := current.(type) {
		case map[string]any:
			v, ok := c[s]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			idx, ok := ParseIndex(s)
			if !ok || idx >= len(c) {
				return nil, false
			}
			current = c[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set stores value at path, mutating root in place. Missing or nil
// intermediate segments are materialized as objects, even when the following
// segment looks like an array index. The patch executor infers arrays for
// numeric segments instead; the two behaviours are intentionally separate.
func Set(root map[string]any, path string, value any) error {
	segments := ParsePointer(path)
	if len(segments) == 0 {
		return fmt.Errorf("cannot set root value")
	}
	_, err := setIn(root, segments, value)
	return err
}

// setIn returns the (possibly reallocated) container so that callers can
// write appended slices back into their parent.
func setIn(node any, segments []string, value any) (any, error) {
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
			child = map[string]any{}
		}
		updated, err := setIn(child, segments[1:], value)
		if err != nil {
			return nil, err
		}
		c[key] = updated
		return c, nil

	case []any:
		idx, ok := ParseIndex(key)
		if !ok {
			return nil, fmt.Errorf("invalid index %q", key)
		}
		if idx > len(c) {
			return nil, fmt.Errorf("index %d out of bounds [0:%d]", idx, len(c))
		}
		if last {
			if idx == len(c) {
				return append(c, value), nil
			}
			c[idx] = value
			return c, nil
		}
		var child any
		if idx < len(c) {
			child = c[idx]
		}
		if child == nil {
			child = map[string]any{}
		}
		updated, err := setIn(child, segments[1:], value)
		if err != nil {
			return nil, err
		}
		if idx == len(c) {
			return append(c, updated), nil
		}
		c[idx] = updated
		return c, nil

	default:
		return nil, fmt.Errorf("cannot set %q on %T", key, node)
	}
}

// Remove deletes the value at path, mutating root in place. When the parent
// is an array the element is spliced out and later elements shift down; a
// non-numeric or out-of-range index is a silent no-op. When the parent is an
// object the key is deleted. An error is returned only when the parent itself
// cannot be reached.
func Remove(root map[string]any, path string) error {
	segments := ParsePointer(path)
	if len(segments) == 0 {
		return fmt.Errorf("cannot remove root value")
	}
	_, err := removeIn(root, segments)
	return err
}

func removeIn(node any, segments []string) (any, error) {
	key := segments[0]

	if len(segments) == 1 {
		switch c := node.(type) {
		case map[string]any:
			delete(c, key)
			return c, nil
		case []any:
			idx, ok := ParseIndex(key)
			if !ok || idx >= len(c) {
				return c, nil
			}
			return append(c[:idx:idx], c[idx+1:]...), nil
		default:
			return nil, fmt.Errorf("cannot remove %q from %T", key, node)
		}
	}

	switch c := node.(type) {
	case map[string]any:
		child, ok := c[key]
		if !ok {
			return nil, fmt.Errorf("key %q not found", key)
		}
		updated, err := removeIn(child, segments[1:])
		if err != nil {
			return nil, err
		}
		c[key] = updated
		return c, nil
	case []any:
		idx, ok := ParseIndex(key)
		if !ok || idx >= len(c) {
			return nil, fmt.Errorf("index %q out of bounds [0:%d]", key, len(c))
		}
		updated, err := removeIn(c[idx], segments[1:])
		if err != nil {
			return nil, err
		}
		c[idx] = updated
		return c, nil
	default:
		return nil, fmt.Errorf("cannot traverse into %T", node)
	}
}
