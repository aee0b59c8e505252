// Package changes compares two snapshots of a page and classifies the
// difference for a preview layer: nothing changed, rebuild the whole page,
// or re-render a single block.
package changes

// Structural is the block id of the change reported when the root-level
// blocks of the page were added, removed or reordered.
const Structural = "__structural__"

// Change is one changed block. ChangedProps is empty for a block that was
// added (or whose type changed), and lists the changed prop names otherwise.
type Change struct {
	BlockID      string   `json:"blockId"`
	ChangedProps []string `json:"changedProps,omitempty"`
}

// Report is the result of Detect.
//
// An empty Report means no change was detected. A Report whose only change
// is Structural, or that lists Removed ids, cannot be applied incrementally.
// Removed is reported with an empty Changes list.
type Report struct {
	Changes []Change `json:"changes"`
	Removed []string `json:"removed,omitempty"`

	// slotChanges holds, per block id, the changed props that are slots.
	slotChanges map[string]map[string]bool
}

// Empty reports whether no change was detected.
func (r Report) Empty() bool {
	return len(r.Changes) == 0 && len(r.Removed) == 0
}

// FullRebuild reports whether the page must be rendered again as a whole:
// on a structural change, when blocks were removed, or when more than one
// block changed.
func (r Report) FullRebuild() bool {
	if len(r.Removed) > 0 || len(r.Changes) > 1 {
		return true
	}
	if len(r.Changes) == 1 {
		_, ok := r.Targeted()
		return !ok
	}
	return false
}

// Targeted returns the single change that can be applied by re-rendering one
// block: exactly one block changed and only its non-slot props differ.
func (r Report) Targeted() (Change, bool) {
	if len(r.Removed) > 0 || len(r.Changes) != 1 {
		return Change{}, false
	}
	c := r.Changes[0]
	if c.BlockID == Structural || len(c.ChangedProps) == 0 {
		return Change{}, false
	}
	if len(r.slotChanges[c.BlockID]) > 0 {
		return Change{}, false
	}
	return c, true
}

// SlotChanged reports whether prop of blockID was compared as a slot and
// found different.
func (r Report) SlotChanged(blockID, prop string) bool {
	return r.slotChanges[blockID][prop]
}

func structural(props ...string) Report {
	if len(props) == 0 {
		props = []string{"children"}
	}
	return Report{Changes: []Change{{BlockID: Structural, ChangedProps: props}}}
}
