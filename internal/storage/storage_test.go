package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type record struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

func (r record) Markdown() string { return "# " + r.Name + "\n" }

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	store := New(zap.NewNop())
	rec := record{Name: "jane", Score: 81.5}

	tests := []struct {
		format string
		file   string
		expect string
	}{
		{format: FormatJSON, file: "out/a.json", expect: "{\n  \"name\": \"jane\",\n  \"score\": 81.5\n}\n"},
		{format: "YAML", file: "out/a.yaml", expect: "name: jane\nscore: 81.5\n"},
		{format: "md", file: "nested/deeper/a.md", expect: "# jane\n"},
	}

	for _, tt := range tests {
		path := filepath.Join(dir, tt.file)
		if err := store.Save(rec, path, tt.format); err != nil {
			t.Fatalf("Save(%s) returned error: %v", tt.format, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(data) != tt.expect {
			t.Fatalf("format %s: expected %q, got %q", tt.format, tt.expect, string(data))
		}
	}
}

func TestSaveMarkdownString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	if err := New(nil).Save("# Summary\n", path, FormatMarkdown); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
}

func TestSaveMarkdownRequiresRendering(t *testing.T) {
	err := New(nil).Save(map[string]int{"a": 1}, filepath.Join(t.TempDir(), "x.md"), FormatMarkdown)
	if !errors.Is(err, ErrNotMarkdown) {
		t.Fatalf("expected ErrNotMarkdown, got %v", err)
	}
}

func TestSaveUnsupportedFormatFallsBackToJSON(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	path := filepath.Join(t.TempDir(), "report.html")

	if err := New(zap.New(core)).Save(record{Name: "bob"}, path, "html"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"name": "bob"`) {
		t.Fatalf("expected json content, got %q", string(data))
	}
	if logs.FilterMessage("unsupported output format, saving as json").Len() != 1 {
		t.Fatalf("expected fallback warning")
	}
}

func TestExtension(t *testing.T) {
	for format, ext := range map[string]string{"json": ".json", "markdown": ".md", "yaml": ".yaml", "other": ".json"} {
		if got := Extension(format); got != ext {
			t.Fatalf("Extension(%q) = %q, want %q", format, got, ext)
		}
	}
}

func TestExcludedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")

	missing, err := LoadExcluded(path)
	if err != nil || len(missing.Items) != 0 {
		t.Fatalf("expected empty list for missing file, got %v, %v", missing, err)
	}

	list := &ExcludedCandidates{Items: []*ExcludedCandidate{
		{Name: "jane", File: "cvs/jane.pdf", FinalRecommendation: "hire", ExcludedAt: time.Now().UTC()},
		{Name: "a-very-long-name-to-shrink-later", File: "cvs/long.pdf"},
	}}
	if err := list.ToFile(path); err != nil {
		t.Fatalf("ToFile returned error: %v", err)
	}

	shorter := &ExcludedCandidates{Items: list.Items[:1]}
	if err := shorter.ToFile(path); err != nil {
		t.Fatalf("ToFile returned error: %v", err)
	}

	loaded, err := LoadExcluded(path)
	if err != nil {
		t.Fatalf("LoadExcluded returned error: %v", err)
	}
	if names := loaded.Names(); len(names) != 1 || names[0] != "jane" {
		t.Fatalf("unexpected names: %v", names)
	}

	loaded.Append(&ExcludedCandidates{Items: []*ExcludedCandidate{{Name: "bob"}}})
	if !loaded.Contains("bob") || loaded.Contains("carol") {
		t.Fatalf("unexpected Contains results for %v", loaded.Names())
	}
}

func TestLoadExcludedEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	list, err := LoadExcluded(path)
	if err != nil || len(list.Items) != 0 {
		t.Fatalf("expected empty list, got %v, %v", list, err)
	}
}
