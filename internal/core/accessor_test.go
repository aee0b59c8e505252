package core

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() map[string]any {
	return map[string]any{
		"a": map[string]any{
			"b": []any{"x", "y", "z"},
			"n": nil,
		},
		"s": "scalar",
	}
}

func TestGet(t *testing.T) {
	root := sampleTree()
	tests := []struct {
		path  string
		want  any
		found bool
	}{
		{"", root, true},
		{"/a/b/1", "y", true},
		{"/a/n", nil, true},
		{"/a/n/deeper", nil, false},
		{"/a/b/3", nil, false},
		{"/a/b/x", nil, false},
		{"/s/len", nil, false},
		{"/missing/x", nil, false},
	}
	for _, tt := range tests {
		got, ok := Get(root, tt.path)
		if ok != tt.found {
			t.Errorf("Get(%q) found = %v, want %v", tt.path, ok, tt.found)
			continue
		}
		if ok && tt.path != "" && !cmp.Equal(got, tt.want) {
			t.Errorf("Get(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSet(t *testing.T) {
	t.Run("overwrites key", func(t *testing.T) {
		root := sampleTree()
		if err := Set(root, "/s", "new"); err != nil {
			t.Fatal(err)
		}
		if root["s"] != "new" {
			t.Errorf("got %v", root["s"])
		}
	})

	t.Run("creates objects for numeric segments", func(t *testing.T) {
		root := map[string]any{}
		if err := Set(root, "/x/0/y", 1); err != nil {
			t.Fatal(err)
		}
		want := map[string]any{"x": map[string]any{"0": map[string]any{"y": 1}}}
		if diff := cmp.Diff(want, root); diff != "" {
			t.Errorf("unexpected tree (-want +got):\n%s", diff)
		}
	})

	t.Run("replaces nil intermediate", func(t *testing.T) {
		root := sampleTree()
		if err := Set(root, "/a/n/k", true); err != nil {
			t.Fatal(err)
		}
		if v, _ := Get(root, "/a/n/k"); v != true {
			t.Errorf("got %v", v)
		}
	})

	t.Run("array replace and append", func(t *testing.T) {
		root := sampleTree()
		if err := Set(root, "/a/b/0", "X"); err != nil {
			t.Fatal(err)
		}
		if err := Set(root, "/a/b/3", "w"); err != nil {
			t.Fatal(err)
		}
		got, _ := Get(root, "/a/b")
		if diff := cmp.Diff([]any{"X", "y", "z", "w"}, got); diff != "" {
			t.Errorf("unexpected array (-want +got):\n%s", diff)
		}
	})

	t.Run("array out of bounds", func(t *testing.T) {
		root := sampleTree()
		if err := Set(root, "/a/b/7", "w"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("scalar container", func(t *testing.T) {
		root := sampleTree()
		if err := Set(root, "/s/x", 1); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("root", func(t *testing.T) {
		if err := Set(map[string]any{}, "", 1); err == nil {
			t.Error("expected error")
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("splices arrays", func(t *testing.T) {
		root := sampleTree()
		if err := Remove(root, "/a/b/0"); err != nil {
			t.Fatal(err)
		}
		got, _ := Get(root, "/a/b")
		if diff := cmp.Diff([]any{"y", "z"}, got); diff != "" {
			t.Errorf("unexpected array (-want +got):\n%s", diff)
		}
	})

	t.Run("deletes keys", func(t *testing.T) {
		root := sampleTree()
		if err := Remove(root, "/a/n"); err != nil {
			t.Fatal(err)
		}
		if _, ok := Get(root, "/a/n"); ok {
			t.Error("key still present")
		}
	})

	t.Run("out of range index is a no-op", func(t *testing.T) {
		root := sampleTree()
		before, _ := json.Marshal(root)
		for _, p := range []string{"/a/b/9", "/a/b/x"} {
			if err := Remove(root, p); err != nil {
				t.Errorf("Remove(%q) = %v, want nil", p, err)
			}
		}
		after, _ := json.Marshal(root)
		if string(before) != string(after) {
			t.Errorf("tree changed: %s -> %s", before, after)
		}
	})

	t.Run("unreachable parent", func(t *testing.T) {
		root := sampleTree()
		if err := Remove(root, "/missing/x"); err == nil {
			t.Error("expected error")
		}
	})
}
