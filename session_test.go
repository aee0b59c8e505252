package sitepatch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/brunoga/sitepatch/block"
	"github.com/brunoga/sitepatch/changes"
	"github.com/brunoga/sitepatch/config"
	"github.com/brunoga/sitepatch/history"
	"github.com/brunoga/sitepatch/patch"
)

func serialize(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestSession_EndToEnd(t *testing.T) {
	doc := Document{
		"pages": []any{
			map[string]any{"id": "home", "structure": []any{
				map[string]any{"id": "h1", "type": "heading", "props": map[string]any{"text": "Hi"}},
			}},
		},
	}
	before := serialize(t, doc)

	s, err := NewSession(doc, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	p := patch.New().Replace("/pages/0/structure/0/props/text", "Hello")
	r, err := s.Apply(p, "edit heading")
	if err != nil {
		t.Fatal(err)
	}
	want := []changes.Change{{BlockID: "h1", ChangedProps: []string{"text"}}}
	if diff := cmp.Diff(want, r.Changes); diff != "" {
		t.Errorf("Apply() report (-want +got):\n%s", diff)
	}
	loc, err := block.Locate(s.Document(), "home", "h1")
	if err != nil {
		t.Fatal(err)
	}
	if got := block.Props(loc.Block)["text"]; got != "Hello" {
		t.Errorf("text = %v, want Hello", got)
	}
	if serialize(t, doc) != before {
		t.Error("session modified the caller's document")
	}
	if s.History().Len() != 1 || !s.History().CanUndo() {
		t.Errorf("history len = %d", s.History().Len())
	}
}

func TestSession_UndoRedo(t *testing.T) {
	s, err := NewSession(siteDoc(), config.Default(), WithPage("home"))
	if err != nil {
		t.Fatal(err)
	}
	start := serialize(t, s.Document())

	p, err := AddBlock(s.Document(), "home", "sec", "children", -1, block.New("t4", "text"), s.BlockOptions()...)
	if err != nil {
		t.Fatal(err)
	}
	r, err := s.Apply(p, "add t4")
	if err != nil {
		t.Fatal(err)
	}
	if !r.FullRebuild() {
		t.Errorf("adding a child should rebuild: %+v", r)
	}
	added := serialize(t, s.Document())

	r, err = s.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if serialize(t, s.Document()) != start {
		t.Error("undo did not restore the document")
	}
	if diff := cmp.Diff([]string{"t4"}, r.Removed); diff != "" {
		t.Errorf("undo report Removed (-want +got):\n%s", diff)
	}

	if _, err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if serialize(t, s.Document()) != added {
		t.Error("redo did not reapply the patch")
	}
	if _, err := s.Redo(); !errors.Is(err, history.ErrNothingToRedo) {
		t.Errorf("Redo() error = %v", err)
	}
}

func TestSession_RejectedPatch(t *testing.T) {
	s, err := NewSession(siteDoc(), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	before := serialize(t, s.Document())
	p := patch.New().
		Replace("/theme/primary", "#fff").
		Remove("/nope").
		Test("/theme/primary", "#000")
	_, err = s.Apply(p, "bad")
	var ae *patch.ApplyError
	if !errors.As(err, &ae) || len(ae.Errors()) != 2 {
		t.Fatalf("Apply() error = %v", err)
	}
	if serialize(t, s.Document()) != before || s.History().Len() != 0 {
		t.Error("rejected patch changed the session")
	}
}

func TestSession_Strict(t *testing.T) {
	cfg := config.Default()
	cfg.Strict = true
	s, err := NewSession(siteDoc(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Apply(patch.New().Replace("/theme/missing", 1), "strict")
	if !errors.Is(err, patch.ErrStrict) {
		t.Errorf("Apply() error = %v, want ErrStrict", err)
	}

	cfg.History.MaxSize = 0
	if _, err := NewSession(siteDoc(), cfg); err == nil {
		t.Error("expected invalid config error")
	}
}
