package patch

import (
	"errors"
	"testing"
)

func TestValidateStrict(t *testing.T) {
	tests := []struct {
		name    string
		patch   Patch
		wantErr bool
	}{
		{"replace existing", New().Replace("/theme/primary", "#fff"), false},
		{"add key", New().Add("/theme/secondary", "#fff"), false},
		{"append", New().Add("/pages/0/structure/-", map[string]any{"id": "x"}), false},
		{"replace missing", New().Replace("/theme/secondary", "#fff"), true},
		{"add missing parent", New().Add("/meta/seo/title", "T"), true},
		{"remove missing", New().Remove("/theme/secondary"), true},
		{"failed test", New().Test("/theme/primary", "#fff"), true},
		{"move", New().Move("/pages/0/structure/0", "/pages/0/structure/1"), false},
		{"add scalar at root", New().Add("", "x"), true},
		{"replace root with array", New().Replace("", []any{}), true},
		{"copy scalar onto root", New().Copy("/theme/primary", ""), true},
		{"remove root", New().Remove(""), true},
		{"merge object into root", New().Add("", map[string]any{"theme": map[string]any{}}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStrict(testDoc(), tt.patch)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStrict() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrStrict) {
				t.Errorf("error %v does not wrap ErrStrict", err)
			}
		})
	}
}

func TestApplier_Strict(t *testing.T) {
	p := New().Replace("/theme/secondary", "#fff")

	if res := NewApplier().Apply(testDoc(), p); !res.Success {
		t.Fatalf("relaxed applier should accept replace-or-create: %v", res.Err())
	}
	res := NewApplier(WithStrict(true)).Apply(testDoc(), p)
	if res.Success {
		t.Fatal("strict applier should reject replace on a missing key")
	}
	if !errors.Is(res.Err(), ErrStrict) {
		t.Errorf("unexpected error: %v", res.Err())
	}
}
