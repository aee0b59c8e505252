package block

import (
	"fmt"

	"github.com/brunoga/sitepatch/internal/core"
)

// Locate finds the first block with the given id on a page, searching the
// page structure and every slot below it in pre-order.
func Locate(doc map[string]any, pageID, blockID string, opts ...Option) (Location, error) {
	page, pagePath, err := FindPage(doc, pageID)
	if err != nil {
		return Location{}, err
	}

	var (
		found Location
		ok    bool
	)
	Walk(Structure(page), core.JoinPath(pagePath, "structure"), func(l Location) bool {
		if id, _ := l.Block["id"].(string); id == blockID {
			found, ok = l, true
			return false
		}
		return true
	}, opts...)

	if !ok {
		return Location{}, fmt.Errorf("%w: %q on page %q", ErrBlockNotFound, blockID, pageID)
	}
	found.PageID, _ = page["id"].(string)
	found.PagePath = pagePath
	return found, nil
}

// SlotsOf returns the slot names of a located block.
func SlotsOf(l Location, opts ...Option) []string {
	o := newOptions(opts)
	props, _ := l.Block["props"].(map[string]any)
	return o.slots(props)
}

// IsSlot reports whether name is a slot of props under the configured
// SlotFunc.
func IsSlot(props map[string]any, name string, opts ...Option) bool {
	return newOptions(opts).slots.IsSlot(props, name)
}
