package core

import (
	"reflect"
	"testing"
)

func TestParsePointer(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"/", nil},
		{"/a", []string{"a"}},
		{"/pages/0/structure", []string{"pages", "0", "structure"}},
		{"/a~1b/c~0d", []string{"a/b", "c~d"}},
		{"a/b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		got := ParsePointer(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParsePointer(%q) = %#v, want %#v", tt.path, got, tt.want)
		}
	}
}

func TestFormatPointer(t *testing.T) {
	if got := FormatPointer([]string{"a/b", "c~d", "0"}); got != "/a~1b/c~0d/0" {
		t.Errorf("FormatPointer = %q", got)
	}
	if got := FormatPointer(nil); got != "" {
		t.Errorf("FormatPointer(nil) = %q, want empty", got)
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		parent string
		segs   []string
		want   string
	}{
		{"", []string{"pages"}, "/pages"},
		{"/", []string{"pages"}, "/pages"},
		{"/pages/0", []string{"structure"}, "/pages/0/structure"},
		{"/theme", []string{"a/b"}, "/theme/a~1b"},
	}
	for _, tt := range tests {
		if got := JoinPath(tt.parent, tt.segs...); got != tt.want {
			t.Errorf("JoinPath(%q, %v) = %q, want %q", tt.parent, tt.segs, got, tt.want)
		}
	}
	if got := JoinIndex("/pages", 3); got != "/pages/3" {
		t.Errorf("JoinIndex = %q", got)
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		seg  string
		idx  int
		isOK bool
	}{
		{"0", 0, true},
		{"12", 12, true},
		{"-1", 0, false},
		{"a", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		idx, ok := ParseIndex(tt.seg)
		if ok != tt.isOK || idx != tt.idx {
			t.Errorf("ParseIndex(%q) = %d, %v; want %d, %v", tt.seg, idx, ok, tt.idx, tt.isOK)
		}
	}
}

func TestHasPrefix(t *testing.T) {
	if !HasPrefix("/a/b/c", "/a/b") {
		t.Error("expected /a/b/c under /a/b")
	}
	if !HasPrefix("/a/b", "/a/b") {
		t.Error("expected a path to be its own prefix")
	}
	if HasPrefix("/a/bc", "/a/b") {
		t.Error("/a/bc must not be under /a/b")
	}
	if HasPrefix("/a", "/a/b") {
		t.Error("shorter path cannot be under a longer one")
	}
}
