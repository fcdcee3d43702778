package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/rolecolor/internal/framework"
	"github.com/spigell/rolecolor/internal/scoring"
)

func writeResumes(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func defaultScorer(t *testing.T) *scoring.Scorer {
	t.Helper()

	scorer, err := scoring.New(framework.Default(), scoring.DefaultDamping(), nil)
	if err != nil {
		t.Fatalf("creating scorer: %v", err)
	}
	return scorer
}

func TestScoreFilesKeepsOrderAndErrors(t *testing.T) {
	t.Parallel()

	dir := writeResumes(t, map[string]string{
		"builder.txt": "Architected the platform strategy and led innovation.",
		"empty.txt":   "   ",
		"notes.odt":   "unsupported",
	})

	paths := []string{
		filepath.Join(dir, "builder.txt"),
		filepath.Join(dir, "empty.txt"),
		filepath.Join(dir, "notes.odt"),
		filepath.Join(dir, "missing.txt"),
	}

	results, err := scoreFiles(context.Background(), defaultScorer(t), paths, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}

	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d: expected path %q, got %q", i, paths[i], r.Path)
		}
	}

	if results[0].Result == nil || results[0].Error != "" {
		t.Fatalf("expected first resume to score, got %+v", results[0])
	}
	if results[0].Result.DominantRole != framework.Builder {
		t.Fatalf("expected Builder, got %s", results[0].Result.DominantRole)
	}

	for _, r := range results[1:] {
		if r.Result != nil || r.Error == "" {
			t.Fatalf("expected failure for %s, got %+v", r.Path, r)
		}
	}

	if !strings.Contains(results[1].Error, scoring.ErrInvalidInput.Error()) {
		t.Fatalf("expected invalid input error, got %q", results[1].Error)
	}
}

func TestScoreFilesCanceled(t *testing.T) {
	t.Parallel()

	dir := writeResumes(t, map[string]string{"a.txt": "mentored"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := scoreFiles(ctx, defaultScorer(t), []string{filepath.Join(dir, "a.txt")}, 1); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestWriteComparison(t *testing.T) {
	t.Parallel()

	result, err := scoring.ScoreResume("Mentored engineers and collaborated across teams.", framework.Default())
	if err != nil {
		t.Fatalf("scoring: %v", err)
	}

	results := []fileScore{
		{Path: "alice.txt", Result: result},
		{Path: "bob.odt", Error: "unsupported file format"},
	}
	categories := framework.Default().Categories()

	var text bytes.Buffer
	if err := writeComparison(&text, results, categories, ""); err != nil {
		t.Fatalf("text: %v", err)
	}

	out := text.String()
	for _, want := range []string{"FILE", "DOMINANT", "MATCHES", "alice.txt", result.DominantRole, "error: unsupported file format"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in comparison:\n%s", want, out)
		}
	}

	var raw bytes.Buffer
	if err := writeComparison(&raw, results, categories, outputJSON); err != nil {
		t.Fatalf("json: %v", err)
	}

	var decoded []fileScore
	if err := json.Unmarshal(raw.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Result == nil || decoded[1].Error == "" {
		t.Fatalf("unexpected decoded comparison: %+v", decoded)
	}

	if err := writeComparison(&raw, results, categories, "csv"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
