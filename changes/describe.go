package changes

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/brunoga/sitepatch/block"
	"github.com/brunoga/sitepatch/internal/core"
)

// PropDiff is a textual diff of one changed prop. Non-string values are
// compared through their canonical serialization.
type PropDiff struct {
	BlockID string
	Prop    string
	Old     string
	New     string
	Diffs   []diffpatch.Diff
}

// String renders the diff inline, marking deletions as [-text-] and
// insertions as {+text+}.
func (d PropDiff) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.%s: ", d.BlockID, d.Prop)
	for _, diff := range d.Diffs {
		switch diff.Type {
		case diffpatch.DiffDelete:
			b.WriteString("[-" + diff.Text + "-]")
		case diffpatch.DiffInsert:
			b.WriteString("{+" + diff.Text + "+}")
		default:
			b.WriteString(diff.Text)
		}
	}
	return b.String()
}

// Describe returns a text diff for every changed prop of r, in report order.
// Slot props and added blocks are not described.
func Describe(prev, next map[string]any, pageID string, r Report, opts ...block.Option) []PropDiff {
	if len(r.Changes) == 0 {
		return nil
	}
	oldPage, _, err := block.FindPage(prev, pageID)
	if err != nil {
		return nil
	}
	newPage, _, err := block.FindPage(next, pageID)
	if err != nil {
		return nil
	}
	oldIndex, _ := block.Flatten(oldPage, opts...)
	newIndex, _ := block.Flatten(newPage, opts...)

	dmp := diffpatch.New()
	var out []PropDiff
	for _, c := range r.Changes {
		ob, ok := oldIndex[c.BlockID]
		if !ok {
			continue
		}
		nb := newIndex[c.BlockID]
		oldProps, newProps := block.Props(ob.Block), block.Props(nb.Block)
		for _, prop := range c.ChangedProps {
			if r.SlotChanged(c.BlockID, prop) {
				continue
			}
			d := PropDiff{
				BlockID: c.BlockID,
				Prop:    prop,
				Old:     text(oldProps, prop),
				New:     text(newProps, prop),
			}
			multiline := strings.Contains(d.Old, "\n") && strings.Contains(d.New, "\n")
			d.Diffs = dmp.DiffCleanupSemantic(dmp.DiffMain(d.Old, d.New, multiline))
			out = append(out, d)
		}
	}
	return out
}

func text(props map[string]any, name string) string {
	v, ok := props[name]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := core.Canonical(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
