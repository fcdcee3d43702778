package scoring

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spigell/rolecolor/internal/framework"
)

const (
	barWidth        = 40
	defaultTopMatch = 5
	ruleWidth       = 50
)

// ReportOptions controls the text report.
type ReportOptions struct {
	// Top limits the evidence listed per category. Zero means five.
	Top int
	// Color paints bars with the category accent colours.
	Color bool
}

// Report renders a human-readable score distribution with keyword evidence.
// fw supplies accent colours and may be nil.
func Report(r *Result, fw *framework.Framework, opts ReportOptions) string {
	top := opts.Top
	if top <= 0 {
		top = defaultTopMatch
	}

	heading := lipgloss.NewStyle()
	if opts.Color {
		heading = heading.Bold(true)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	b.WriteString(heading.Render("ROLECOLOR SCORE DISTRIBUTION") + "\n")
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")

	for _, cs := range r.Ranked() {
		fmt.Fprintf(&b, "%-10s [%s] %6.2f%%\n", cs.Category, bar(cs.Score, accent(fw, cs.Category), opts.Color), cs.Score*100)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Dominant RoleColor: %s\n", heading.Render(r.DominantRole))
	fmt.Fprintf(&b, "Total keywords matched: %d\n", r.TotalKeywordsMatched)
	if r.Fallback {
		b.WriteString("No keywords matched; showing the uniform distribution.\n")
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	b.WriteString(heading.Render("KEYWORD MATCHES BY ROLECOLOR") + "\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	for _, category := range r.Categories {
		matches := r.Top(category, top)
		if len(matches) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", category)
		for _, m := range matches {
			fmt.Fprintf(&b, "  • %s (×%d, weight: %.1f, contribution: %.2f)\n", m.Keyword, m.Count, m.Weight, m.Contribution)
		}
	}

	return b.String()
}

func bar(score float64, color string, colored bool) string {
	filled := int(score * barWidth)
	filled = max(0, min(barWidth, filled))

	full := strings.Repeat("█", filled)
	empty := strings.Repeat("░", barWidth-filled)

	if colored && color != "" {
		full = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(full)
	}
	return full + empty
}

func accent(fw *framework.Framework, category string) string {
	if fw == nil {
		return ""
	}
	c, err := fw.Category(category)
	if err != nil {
		return ""
	}
	return c.Accent
}
