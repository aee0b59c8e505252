package patch

import "encoding/json"

// OperationType defines the allowed patch operation types.
type OperationType string

const (
	OperationTypeAdd     OperationType = "add"
	OperationTypeRemove  OperationType = "remove"
	OperationTypeReplace OperationType = "replace"
	OperationTypeMove    OperationType = "move"
	OperationTypeCopy    OperationType = "copy"
	OperationTypeTest    OperationType = "test"
)

// Operation represents a single operation in a Patch.
type Operation struct {
	Op    OperationType `json:"op"`
	Path  string        `json:"path"`
	Value any           `json:"value,omitempty"` // Used for "add", "replace", "test"
	From  string        `json:"from,omitempty"`  // Used for "move", "copy"
}

// MarshalJSON always emits "value" for the operations that carry one, even
// when it is null, and "from" only for the operations that read one.
func (op Operation) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"op":   op.Op,
		"path": op.Path,
	}
	switch op.Op {
	case OperationTypeAdd, OperationTypeReplace, OperationTypeTest:
		m["value"] = op.Value
	case OperationTypeMove, OperationTypeCopy:
		m["from"] = op.From
	}
	return json.Marshal(m)
}

func (op Operation) String() string {
	switch op.Op {
	case OperationTypeMove, OperationTypeCopy:
		return string(op.Op) + " " + op.From + " -> " + op.Path
	default:
		return string(op.Op) + " " + op.Path
	}
}
