package changes

import (
	"sort"

	"github.com/brunoga/sitepatch/block"
	"github.com/brunoga/sitepatch/internal/core"
)

// Detect compares the page pageID of prev and next. An empty pageID selects
// the first page of each snapshot.
//
// Root-level blocks are compared as an ordered id list: any addition,
// removal or reordering yields the Structural change. Below the root each
// block present in both snapshots is compared prop by prop; slot props are
// compared by their ordered child ids only, since the children are visited
// on their own. Blocks only in next are reported without props, and a block
// missing from next aborts the comparison with Removed set.
func Detect(prev, next map[string]any, pageID string, opts ...block.Option) Report {
	oldPage, _, oldErr := block.FindPage(prev, pageID)
	newPage, _, newErr := block.FindPage(next, pageID)
	switch {
	case oldErr != nil && newErr != nil:
		return Report{}
	case oldErr != nil || newErr != nil:
		return structural()
	}

	if core.Equal(oldPage, newPage) {
		return Report{}
	}

	if !sameIDs(rootIDs(oldPage), rootIDs(newPage)) {
		return structural()
	}
	if keys := changedPageKeys(oldPage, newPage); len(keys) > 0 {
		return structural(keys...)
	}

	oldIndex, oldOrder := block.Flatten(oldPage, opts...)
	newIndex, newOrder := block.Flatten(newPage, opts...)

	var removed []string
	for _, id := range oldOrder {
		if _, ok := newIndex[id]; !ok {
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		return Report{Removed: removed}
	}

	var r Report
	for _, id := range newOrder {
		nb := newIndex[id].Block
		ob, ok := oldIndex[id]
		if !ok || !core.Equal(ob.Block["type"], nb["type"]) {
			r.Changes = append(r.Changes, Change{BlockID: id})
			continue
		}
		props, slots := diffProps(block.Props(ob.Block), block.Props(nb), opts)
		if len(props) == 0 {
			continue
		}
		r.Changes = append(r.Changes, Change{BlockID: id, ChangedProps: props})
		if len(slots) > 0 {
			if r.slotChanges == nil {
				r.slotChanges = make(map[string]map[string]bool)
			}
			r.slotChanges[id] = slots
		}
	}
	return r
}

func rootIDs(page map[string]any) []string {
	var ids []string
	for _, v := range block.Structure(page) {
		if id, ok := block.ID(v); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// changedPageKeys lists the page keys other than structure whose values
// differ. Page level settings affect every block.
func changedPageKeys(a, b map[string]any) []string {
	var keys []string
	for _, k := range unionKeys(a, b) {
		if k == "structure" {
			continue
		}
		if !sameValue(a, b, k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// diffProps returns the sorted names of the props that differ, and the
// subset of them compared as slots.
func diffProps(a, b map[string]any, opts []block.Option) ([]string, map[string]bool) {
	var (
		changed []string
		slots   map[string]bool
	)
	for _, k := range unionKeys(a, b) {
		if slotProp(a, b, k, opts) {
			if !sameIDs(childIDs(a[k]), childIDs(b[k])) {
				changed = append(changed, k)
				if slots == nil {
					slots = make(map[string]bool)
				}
				slots[k] = true
			}
			continue
		}
		if !sameValue(a, b, k) {
			changed = append(changed, k)
		}
	}
	return changed, slots
}

// slotProp reports whether k is compared by child ids: it is a slot on at
// least one side and absent or a slot on the other.
func slotProp(a, b map[string]any, k string, opts []block.Option) bool {
	aSlot, bSlot := block.IsSlot(a, k, opts...), block.IsSlot(b, k, opts...)
	if !aSlot && !bSlot {
		return false
	}
	_, aok := a[k]
	_, bok := b[k]
	return (aSlot || !aok) && (bSlot || !bok)
}

func childIDs(v any) []string {
	arr, _ := v.([]any)
	ids := make([]string, 0, len(arr))
	for _, e := range arr {
		if id, ok := block.ID(e); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func sameValue(a, b map[string]any, k string) bool {
	av, aok := a[k]
	bv, bok := b[k]
	if aok != bok {
		return false
	}
	return core.Equal(av, bv)
}

func unionKeys(a, b map[string]any) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
