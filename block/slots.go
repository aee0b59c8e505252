package block

import "sort"

// SlotFunc reports, in traversal order, the names of the props that hold
// nested blocks. Blocks expose slots by shape; nothing in the traversal
// depends on a particular block type.
type SlotFunc func(props map[string]any) []string

// DefaultSlotNames are the slots used by the built-in composite blocks.
var DefaultSlotNames = []string{"children", "header", "content", "footer"}

// DefaultSlots recognises DefaultSlotNames and any other prop holding blocks.
var DefaultSlots = Slots(DefaultSlotNames...)

// Slots returns a SlotFunc that reports the named props when they hold an
// empty array or an array of blocks, followed by any other prop whose value
// is a non-empty array made only of blocks, in key order. A named prop
// holding scalars is an ordinary value prop.
func Slots(names ...string) SlotFunc {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	return func(props map[string]any) []string {
		if len(props) == 0 {
			return nil
		}
		var out []string
		for _, n := range names {
			if arr, ok := props[n].([]any); ok && (len(arr) == 0 || isBlockArray(arr)) {
				out = append(out, n)
			}
		}
		var extra []string
		for k, v := range props {
			if known[k] {
				continue
			}
			if isBlockArray(v) {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		return append(out, extra...)
	}
}

func isBlockArray(v any) bool {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return false
	}
	for _, e := range arr {
		if _, ok := FromValue(e); !ok {
			return false
		}
	}
	return true
}

// IsSlot reports whether name is one of the slots of props.
func (f SlotFunc) IsSlot(props map[string]any, name string) bool {
	for _, s := range f(props) {
		if s == name {
			return true
		}
	}
	return false
}
