package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/spigell/rolecolor/internal/framework"
)

func TestWriteKeywordsOverview(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := writeKeywords(&buf, framework.Default(), "", defaultKeywordLimit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, name := range framework.Default().Categories() {
		if !strings.Contains(out, name+" (top 10 of ") {
			t.Fatalf("expected %s heading in output:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "KEYWORD") || !strings.Contains(out, "WEIGHT") {
		t.Fatalf("expected table headers:\n%s", out)
	}
}

func TestWriteKeywordsSingleCategory(t *testing.T) {
	t.Parallel()

	fw := framework.Default()
	keywords, err := fw.SortedKeywords(framework.Enabler)
	if err != nil {
		t.Fatalf("sorted keywords: %v", err)
	}

	var buf bytes.Buffer
	if err := writeKeywords(&buf, fw, "enabler", defaultKeywordLimit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, framework.Builder+" (") {
		t.Fatalf("expected only the Enabler table:\n%s", out)
	}
	for _, kw := range keywords {
		if !strings.Contains(out, kw.Term) {
			t.Fatalf("keyword %q missing from full table", kw.Term)
		}
	}
}

func TestWriteKeywordsUnknownCategory(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := writeKeywords(&buf, framework.Default(), "Wizard", 0)
	if !errors.Is(err, framework.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestLoadFrameworkDefault(t *testing.T) {
	t.Parallel()

	fw, err := loadFramework("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fw != framework.Default() {
		t.Fatal("expected the built-in framework")
	}

	if _, err := loadFramework("does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing framework file")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)

	if got := buf.String(); got != "rolecolor version: unknown\n" {
		t.Fatalf("unexpected version output: %q", got)
	}
}

func TestNewLoggerFollowsFlags(t *testing.T) {
	t.Cleanup(func() { viper.Set("debug", false) })

	viper.Set("debug", false)
	if newLogger().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug disabled without --debug")
	}

	viper.Set("debug", true)
	if !newLogger().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug enabled with --debug")
	}
}
