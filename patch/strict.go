package patch

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/brunoga/sitepatch/internal/core"
)

// ValidateStrict reports whether p would apply to doc under strict RFC 6902
// semantics: replace and remove need an existing target, add needs an
// existing parent, and no intermediate containers are created. doc is not
// modified. Operations whose path is the document root are rejected, even
// the object merges the relaxed Applier allows there. Passing here does not
// guarantee the relaxed Applier accepts the patch: it still applies its own
// checks, such as refusing a copy whose value its cloner cannot handle.
func ValidateStrict(doc map[string]any, p Patch) error {
	cur, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	for i, op := range p {
		if op.Path == "" {
			return fmt.Errorf("%w: operation %d (%s): root path not supported", ErrStrict, i, op.Op)
		}
		switch op.Op {
		case OperationTypeReplace, OperationTypeRemove:
			// Older json-patch releases let replace create a missing
			// object key, so existence is checked here first.
			var tree any
			if err := json.Unmarshal(cur, &tree); err != nil {
				return fmt.Errorf("decoding document: %w", err)
			}
			if _, ok := core.Get(tree, op.Path); !ok {
				return fmt.Errorf("%w: operation %d (%s %s): path not found", ErrStrict, i, op.Op, op.Path)
			}
		}

		raw, err := json.Marshal(Patch{op})
		if err != nil {
			return fmt.Errorf("encoding operation %d: %w", i, err)
		}
		ops, err := jsonpatch.DecodePatch(raw)
		if err != nil {
			return fmt.Errorf("%w: operation %d: %v", ErrStrict, i, err)
		}
		if cur, err = ops.Apply(cur); err != nil {
			return fmt.Errorf("%w: operation %d (%s %s): %v", ErrStrict, i, op.Op, op.Path, err)
		}
	}
	return nil
}
