// Package patch applies ordered lists of path-addressed operations to
// JSON-like document trees (map[string]any / []any).
//
// Operations follow the JSON Patch vocabulary (add, remove, replace, move,
// copy, test) with a few deliberate relaxations: replace creates a missing
// target, add materializes missing intermediate containers, and removing an
// invalid array index below an existing path is a no-op.
package patch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Patch is a slice of Operations that represents a patch.
type Patch []Operation

// New creates a new empty Patch.
func New() Patch {
	return Patch{}
}

// Decode parses a JSON array of operations.
func Decode(data []byte) (Patch, error) {
	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}
	for i, op := range p {
		if err := op.validate(); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
	}
	return p, nil
}

func (op Operation) validate() error {
	switch op.Op {
	case OperationTypeAdd, OperationTypeRemove, OperationTypeReplace, OperationTypeTest:
		return nil
	case OperationTypeMove, OperationTypeCopy:
		if op.From == "" {
			return fmt.Errorf("%s requires a from path", op.Op)
		}
		return nil
	default:
		return fmt.Errorf("invalid operation type: %q", op.Op)
	}
}

// Add creates a new operation to add a value at the specified path.
func (p Patch) Add(path string, value any) Patch {
	return append(p, Operation{Op: OperationTypeAdd, Path: path, Value: value})
}

// Remove creates a new operation to remove the value at the specified path.
func (p Patch) Remove(path string) Patch {
	return append(p, Operation{Op: OperationTypeRemove, Path: path})
}

// Replace creates a new operation to replace the value at the specified path.
func (p Patch) Replace(path string, value any) Patch {
	return append(p, Operation{Op: OperationTypeReplace, Path: path, Value: value})
}

// Move creates a new operation to move a value from one path to another.
func (p Patch) Move(from, to string) Patch {
	return append(p, Operation{Op: OperationTypeMove, Path: to, From: from})
}

// Copy creates a new operation to copy a value from one path to another.
func (p Patch) Copy(from, to string) Patch {
	return append(p, Operation{Op: OperationTypeCopy, Path: to, From: from})
}

// Test creates a new operation to test the value at the specified path.
func (p Patch) Test(path string, value any) Patch {
	return append(p, Operation{Op: OperationTypeTest, Path: path, Value: value})
}

func (p Patch) String() string {
	parts := make([]string, len(p))
	for i, op := range p {
		parts[i] = op.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
