package scoring

import (
	"encoding/json"
	"os"
	"slices"
	"strings"
)

// Match is the evidence for one keyword found in a resume.
type Match struct {
	Keyword      string  `json:"keyword"`
	Count        int     `json:"count"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Result is the score distribution of a single resume.
type Result struct {
	// Categories lists category names in precedence order.
	Categories []string `json:"categories"`
	// Scores holds normalized scores summing to 1.
	Scores    map[string]float64 `json:"scores"`
	RawScores map[string]float64 `json:"raw_scores"`
	// Matches is ordered by contribution descending, then keyword.
	Matches              map[string][]Match `json:"matched_keywords"`
	DominantRole         string             `json:"dominant_role"`
	TotalKeywordsMatched int                `json:"total_keywords_matched"`
	// Fallback is set when nothing matched and the uniform distribution was used.
	Fallback bool `json:"fallback"`
}

// CategoryScore pairs a category with its normalized score.
type CategoryScore struct {
	Category string
	Score    float64
}

// Ranked returns categories ordered by score descending. Equal scores keep
// precedence order.
func (r *Result) Ranked() []CategoryScore {
	ranked := make([]CategoryScore, 0, len(r.Categories))
	for _, c := range r.Categories {
		ranked = append(ranked, CategoryScore{Category: c, Score: r.Scores[c]})
	}

	slices.SortStableFunc(ranked, func(a, b CategoryScore) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return ranked
}

// Top returns at most n matches of the category.
func (r *Result) Top(category string, n int) []Match {
	matches := r.Matches[category]
	if n > 0 && len(matches) > n {
		return matches[:n]
	}
	return matches
}

func sortMatches(matches []Match) {
	slices.SortFunc(matches, func(a, b Match) int {
		switch {
		case a.Contribution > b.Contribution:
			return -1
		case a.Contribution < b.Contribution:
			return 1
		default:
			return strings.Compare(a.Keyword, b.Keyword)
		}
	})
}

// DumpToTmpFile writes the result as indented JSON to a new temporary file and
// returns its name.
func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "rolecolor_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
