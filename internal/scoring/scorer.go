// Package scoring turns resume text into a RoleColor score distribution.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/rolecolor/internal/framework"
	"github.com/spigell/rolecolor/internal/utils"
)

// ErrInvalidInput is returned for resume text that is empty or whitespace only.
var ErrInvalidInput = errors.New("resume text must not be empty")

type compiledCategory struct {
	name     string
	keywords []framework.Keyword
}

// Scorer scores resumes against a keyword framework. It holds no mutable
// state and is safe for concurrent use.
type Scorer struct {
	categories []compiledCategory
	damping    Damping
	logger     *zap.Logger
}

// New builds a Scorer for fw with the given damping curve. A nil logger
// disables logging.
func New(fw *framework.Framework, damping Damping, logger *zap.Logger) (*Scorer, error) {
	if fw == nil || fw.Len() == 0 {
		return nil, fmt.Errorf("%w: framework is required", framework.ErrConfiguration)
	}
	if err := damping.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scorer{damping: damping, logger: logger}
	// Every contribution stays below weight*Cap, so a finite bound keeps the
	// raw total finite and the distribution summing to 1.
	bound := 0.0
	for _, name := range fw.Categories() {
		keywords, err := fw.SortedKeywords(name)
		if err != nil {
			return nil, err
		}
		for _, kw := range keywords {
			bound += kw.Weight * damping.Cap
		}
		s.categories = append(s.categories, compiledCategory{name: name, keywords: keywords})
	}
	if math.IsInf(bound, 0) || math.IsNaN(bound) {
		return nil, &framework.ConfigurationError{
			Reason: fmt.Sprintf("keyword weights are too large for damping cap %v: the total score would overflow", damping.Cap),
		}
	}

	return s, nil
}

// ScoreResume scores text against fw with the default damping curve.
func ScoreResume(text string, fw *framework.Framework) (*Result, error) {
	s, err := New(fw, DefaultDamping(), nil)
	if err != nil {
		return nil, err
	}
	return s.Score(text)
}

// Normalize lowercases text and collapses whitespace runs to single spaces.
func Normalize(text string) string {
	return utils.NormalizeText(text)
}

// Damping returns the curve the scorer applies.
func (s *Scorer) Damping() Damping {
	return s.damping
}

// Score computes the category distribution of text.
//
// When no keyword matches, every category receives the same share and
// Result.Fallback is set; the dominant role is then the first category.
func (s *Scorer) Score(text string) (*Result, error) {
	normalized := Normalize(text)
	if normalized == "" {
		return nil, ErrInvalidInput
	}

	result := &Result{
		Categories: make([]string, 0, len(s.categories)),
		Scores:     make(map[string]float64, len(s.categories)),
		RawScores:  make(map[string]float64, len(s.categories)),
		Matches:    make(map[string][]Match, len(s.categories)),
	}

	total := 0.0
	for _, c := range s.categories {
		matches := make([]Match, 0)
		raw := 0.0

		for _, kw := range c.keywords {
			n := Count(normalized, kw.Term)
			if n == 0 {
				continue
			}
			contribution := s.damping.Contribution(kw.Weight, n)
			matches = append(matches, Match{
				Keyword:      kw.Term,
				Count:        n,
				Weight:       kw.Weight,
				Contribution: contribution,
			})
			raw += contribution
		}

		sortMatches(matches)

		result.Categories = append(result.Categories, c.name)
		result.RawScores[c.name] = raw
		result.Matches[c.name] = matches
		result.TotalKeywordsMatched += len(matches)
		total += raw
	}

	if total == 0 {
		share := 1 / float64(len(result.Categories))
		for _, name := range result.Categories {
			result.Scores[name] = share
		}
		result.Fallback = true
	} else {
		for _, name := range result.Categories {
			result.Scores[name] = result.RawScores[name] / total
		}
	}

	result.DominantRole = dominant(result)

	if ce := s.logger.Check(zap.DebugLevel, "scored resume"); ce != nil {
		ce.Write(
			zap.Int("text_length", len(normalized)),
			zap.String("dominant_role", result.DominantRole),
			zap.Int("keywords_matched", result.TotalKeywordsMatched),
			zap.Bool("fallback", result.Fallback),
			zap.String("scores", Summary(result)),
		)
	}

	return result, nil
}

func dominant(r *Result) string {
	best := ""
	bestScore := -1.0
	for _, name := range r.Categories {
		if score := r.Scores[name]; score > bestScore {
			best, bestScore = name, score
		}
	}
	return best
}

// Summary renders one "Category: 0.45" line per category, highest first.
func Summary(r *Result) string {
	lines := make([]string, 0, len(r.Categories))
	for _, cs := range r.Ranked() {
		lines = append(lines, fmt.Sprintf("%s: %.2f", cs.Category, cs.Score))
	}
	return strings.Join(lines, "\n")
}

// Categories returns the category names the scorer evaluates, in precedence order.
func (s *Scorer) Categories() []string {
	names := make([]string, 0, len(s.categories))
	for _, c := range s.categories {
		names = append(names, c.name)
	}
	return names
}
