package preview

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/brunoga/sitepatch/block"
	"github.com/brunoga/sitepatch/internal/core"
)

type fakeRenderer struct {
	pages, blocks int
	skipAnchor    bool
}

func (f *fakeRenderer) RenderPage(doc map[string]any, pageID string) (string, error) {
	f.pages++
	page, _, err := block.FindPage(doc, pageID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<main>")
	for _, v := range block.Structure(page) {
		id, _ := block.ID(v)
		b.WriteString(f.block(id, block.Props(v)))
	}
	b.WriteString("</main>")
	return b.String(), nil
}

func (f *fakeRenderer) RenderBlock(doc map[string]any, pageID, blockID string) (string, error) {
	f.blocks++
	loc, err := block.Locate(doc, pageID, blockID)
	if err != nil {
		return "", err
	}
	return f.block(blockID, block.Props(loc.Block)), nil
}

func (f *fakeRenderer) block(id string, props map[string]any) string {
	if f.skipAnchor {
		return fmt.Sprintf("<p>%v</p>", props["text"])
	}
	return fmt.Sprintf(`<p data-block-id="%s">%v</p>`, id, props["text"])
}

func doc() map[string]any {
	return map[string]any{
		"pages": []any{
			map[string]any{"id": "home", "structure": []any{
				map[string]any{"id": "a", "type": "text", "props": map[string]any{"text": "A"}},
				map[string]any{"id": "b", "type": "text", "props": map[string]any{"text": "B"}},
			}},
		},
	}
}

func edit(t *testing.T, d map[string]any, path string, v any) map[string]any {
	t.Helper()
	c, err := core.CloneMap(core.CloneGo, d)
	if err != nil {
		t.Fatal(err)
	}
	if err := core.Set(c, path, v); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestUpdater_Targeted(t *testing.T) {
	r := &fakeRenderer{}
	u := NewUpdater(r)
	prev := doc()
	html, err := r.RenderPage(prev, "home")
	if err != nil {
		t.Fatal(err)
	}

	next := edit(t, prev, "/pages/0/structure/1/props/text", "B2")
	up, err := u.Update(prev, next, "home", html)
	if err != nil {
		t.Fatal(err)
	}
	if up.Mode != ModeTargeted || up.BlockID != "b" {
		t.Fatalf("Update() mode = %s block = %q", up.Mode, up.BlockID)
	}
	want := `<main><p data-block-id="a">A</p><p data-block-id="b">B2</p></main>`
	if up.HTML != want {
		t.Errorf("HTML = %s, want %s", up.HTML, want)
	}
	if r.pages != 1 || r.blocks != 1 {
		t.Errorf("renders: pages=%d blocks=%d", r.pages, r.blocks)
	}
}

func TestUpdater_Full(t *testing.T) {
	r := &fakeRenderer{}
	u := NewUpdater(r)
	prev := doc()
	html, _ := r.RenderPage(prev, "home")

	next := edit(t, prev, "/pages/0/structure/0/props/text", "A2")
	next = edit(t, next, "/pages/0/structure/1/props/text", "B2")
	up, err := u.Update(prev, next, "home", html)
	if err != nil {
		t.Fatal(err)
	}
	if up.Mode != ModeFull || r.pages != 2 || r.blocks != 0 {
		t.Errorf("mode = %s pages=%d blocks=%d", up.Mode, r.pages, r.blocks)
	}
}

func TestUpdater_Unchanged(t *testing.T) {
	r := &fakeRenderer{}
	u := NewUpdater(r)
	up, err := u.Update(doc(), doc(), "home", "<main></main>")
	if err != nil {
		t.Fatal(err)
	}
	if up.Mode != ModeUnchanged || up.HTML != "<main></main>" || r.pages != 0 {
		t.Errorf("Update() = %+v", up)
	}
}

func TestUpdater_ScalarArrayInNamedSlot(t *testing.T) {
	r := &fakeRenderer{}
	u := NewUpdater(r)
	prev := edit(t, doc(), "/pages/0/structure/0/props/content", []any{"Hello"})
	html, _ := r.RenderPage(prev, "home")
	next := edit(t, prev, "/pages/0/structure/0/props/content", []any{"Goodbye"})
	up, err := u.Update(prev, next, "home", html)
	if err != nil {
		t.Fatal(err)
	}
	if up.Mode != ModeTargeted || up.BlockID != "a" || r.blocks != 1 {
		t.Errorf("Update() mode = %s block = %q blocks=%d", up.Mode, up.BlockID, r.blocks)
	}
}

func TestUpdater_MissingAnchorFallsBack(t *testing.T) {
	r := &fakeRenderer{skipAnchor: true}
	u := NewUpdater(r)
	prev := doc()
	html, _ := r.RenderPage(prev, "home")
	next := edit(t, prev, "/pages/0/structure/1/props/text", "B2")
	up, err := u.Update(prev, next, "home", html)
	if err != nil {
		t.Fatal(err)
	}
	if up.Mode != ModeFull || !strings.Contains(up.HTML, "B2") {
		t.Errorf("Update() = %+v", up)
	}
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name, page, id, block, want string
	}{
		{
			name:  "fragment",
			page:  `<div data-block-id="x">old</div><div data-block-id="y">keep</div>`,
			id:    "x",
			block: `<div data-block-id="x">new</div>`,
			want:  `<div data-block-id="x">new</div><div data-block-id="y">keep</div>`,
		},
		{
			name:  "nested",
			page:  `<section data-block-id="s"><h1 data-block-id="h">Hi</h1></section>`,
			id:    "h",
			block: `<h1 data-block-id="h">Hello</h1>`,
			want:  `<section data-block-id="s"><h1 data-block-id="h">Hello</h1></section>`,
		},
		{
			name:  "document",
			page:  `<html><head></head><body><p data-block-id="p">a</p></body></html>`,
			id:    "p",
			block: `<p data-block-id="p">b</p>`,
			want:  `<html><head></head><body><p data-block-id="p">b</p></body></html>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Splice(tt.page, tt.id, tt.block)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Splice() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := Splice("<p>x</p>", "nope", "<p></p>"); !errors.Is(err, ErrAnchorNotFound) {
		t.Errorf("missing anchor error = %v", err)
	}
}
