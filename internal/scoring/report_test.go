package scoring

import (
	"strings"
	"testing"

	"github.com/spigell/rolecolor/internal/framework"
)

func TestReport(t *testing.T) {
	t.Parallel()

	result, err := newDefaultScorer(t).Score("Strategy, strategy and vision. Mentored engineers.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := Report(result, framework.Default(), ReportOptions{})

	for _, want := range []string{
		"ROLECOLOR SCORE DISTRIBUTION",
		"Dominant RoleColor: Builder",
		"Total keywords matched: 3",
		"KEYWORD MATCHES BY ROLECOLOR",
		"strategy (×2, weight: 1.5",
		"mentored (×1, weight: 1.5",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("expected report to contain %q:\n%s", want, report)
		}
	}

	if strings.Contains(report, "Thriver:\n") {
		t.Fatalf("categories without evidence must not be listed:\n%s", report)
	}

	lines := strings.Split(report, "\n")
	first := ""
	for _, line := range lines {
		if strings.Contains(line, "[") {
			first = line
			break
		}
	}
	if !strings.HasPrefix(first, "Builder") {
		t.Fatalf("expected Builder bar first, got %q", first)
	}
	if filled := strings.Count(first, "█"); filled != int(result.Scores[framework.Builder]*barWidth) {
		t.Fatalf("unexpected bar length %d in %q", filled, first)
	}
	if cells := strings.Count(first, "█") + strings.Count(first, "░"); cells != barWidth {
		t.Fatalf("expected %d cells, got %d", barWidth, cells)
	}
}

func TestReportTopLimit(t *testing.T) {
	t.Parallel()

	result, err := newDefaultScorer(t).Score("strategy vision roadmap architecture innovate design")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := Report(result, nil, ReportOptions{Top: 2})
	if got := strings.Count(report, "  • "); got != 2 {
		t.Fatalf("expected 2 evidence lines, got %d:\n%s", got, report)
	}
}

func TestReportFallbackNotice(t *testing.T) {
	t.Parallel()

	result, err := newDefaultScorer(t).Score("lorem ipsum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := Report(result, framework.Default(), ReportOptions{Color: true})
	if !strings.Contains(report, "uniform distribution") {
		t.Fatalf("expected fallback notice:\n%s", report)
	}
	if !strings.Contains(report, "25.00%") {
		t.Fatalf("expected uniform percentages:\n%s", report)
	}
}
