package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestDefaultYAMLMatchesDefault(t *testing.T) {
	var parsed Config
	if err := yaml.Unmarshal([]byte(DefaultYAML), &parsed); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), parsed); diff != "" {
		t.Errorf("DefaultYAML differs from Default() (-want +got):\n%s", diff)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
history:
  max_size: 10
slots: [columns]
clone: copystructure
strict: true
log:
  level: DEBUG
  format: json
`))
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		History: HistoryConfig{MaxSize: 10},
		Slots:   []string{"columns"},
		Clone:   "copystructure",
		Strict:  true,
		Log:     LogConfig{Level: "debug", Format: "json"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() (-want +got):\n%s", diff)
	}
	if got := cfg.SlotFunc()(map[string]any{"columns": []any{}}); len(got) != 1 {
		t.Errorf("SlotFunc() = %v", got)
	}
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("strict: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Strict = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() (-want +got):\n%s", diff)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"max size", "history: {max_size: -1}", "history.max_size"},
		{"clone", "clone: nope", "clone"},
		{"level", "log: {level: loud}", "log.level"},
		{"format", "log: {format: xml}", "log.format"},
		{"slot", `slots: ["  "]`, "slots"},
		{"syntax", "history: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, "sitepatch.yaml")
	if err := os.WriteFile(path, []byte("clone: deepcopy\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Clone != "deepcopy" {
		t.Errorf("Clone = %q", cfg.Clone)
	}
	if _, err := cfg.Cloner(); err != nil {
		t.Error(err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown", "k", "v")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("log output = %s", out)
	}
	if _, err := (LogConfig{Format: "xml"}).NewLogger(&buf); err == nil {
		t.Error("expected format error")
	}
}
