package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/rolecolor/internal/ai"
	"github.com/spigell/rolecolor/internal/framework"
	"github.com/spigell/rolecolor/internal/scoring"
	"github.com/spigell/rolecolor/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

var (
	//go:embed prompts/system.md
	systemTemplate string
	//go:embed prompts/rewrite.md
	rewriteTemplate string
	//go:embed prompts/refine.md
	refineTemplate string
	//go:embed prompts/explain.md
	explainTemplate string
)

const (
	defaultMaxLogLength = 200
	maxFeedbackRunes    = 1000
	evidencePerCategory = 3
	placeholderNone     = "none"
)

var _ ai.Rewriter = (*Rewriter)(nil)

// Rewriter writes and refines resume summaries in the tone of the dominant
// RoleColor.
type Rewriter struct {
	generator contentGenerator
	framework *framework.Framework
	logger    *zap.Logger
	maxLogLen int
}

// NewRewriter builds a Rewriter. fw supplies category descriptions and style
// guides; a nil fw uses the default framework.
func NewRewriter(generator contentGenerator, fw *framework.Framework, maxLogLength int, logger *zap.Logger) *Rewriter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if fw == nil {
		fw = framework.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Rewriter{
		generator: generator,
		framework: fw,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Rewrite produces a new professional summary.
func (r *Rewriter) Rewrite(ctx context.Context, req ai.RewriteRequest) (string, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return "", errors.New("resume text is required")
	}

	system, err := r.systemPrompt(req.Result)
	if err != nil {
		return "", err
	}

	message := fill(rewriteTemplate, map[string]string{
		"DOMINANT_ROLE":    req.Result.DominantRole,
		"RESUME":           strings.TrimSpace(req.ResumeText),
		"ORIGINAL_SUMMARY": orNone(req.OriginalSummary),
	})

	return r.generate(ctx, "rewrite", system, message)
}

// Refine revises the current summary according to user feedback.
func (r *Rewriter) Refine(ctx context.Context, req ai.RefineRequest) (string, error) {
	if strings.TrimSpace(req.CurrentSummary) == "" {
		return "", errors.New("current summary is required; rewrite the summary first")
	}

	feedback := sanitizeFeedback(req.Feedback)
	if feedback == "" {
		return "", errors.New("feedback must not be empty")
	}

	system, err := r.systemPrompt(req.Result)
	if err != nil {
		return "", err
	}

	message := fill(refineTemplate, map[string]string{
		"DOMINANT_ROLE":   req.Result.DominantRole,
		"CURRENT_SUMMARY": strings.TrimSpace(req.CurrentSummary),
		"RESUME":          orNone(req.ResumeText),
		"FEEDBACK":        feedback,
	})

	return r.generate(ctx, "refine", system, message)
}

// Explain describes what the score distribution says about the candidate.
func (r *Rewriter) Explain(ctx context.Context, result *scoring.Result) (string, error) {
	system, err := r.systemPrompt(result)
	if err != nil {
		return "", err
	}

	message := fill(explainTemplate, map[string]string{
		"EVIDENCE": evidenceBlock(result),
	})

	return r.generate(ctx, "explain", system, message)
}

func (r *Rewriter) systemPrompt(result *scoring.Result) (string, error) {
	if result == nil || result.DominantRole == "" {
		return "", errors.New("scoring result is required")
	}

	category, err := r.framework.Category(result.DominantRole)
	if err != nil {
		return "", fmt.Errorf("dominant role: %w", err)
	}

	return fill(systemTemplate, map[string]string{
		"DOMINANT_ROLE":    category.Name,
		"ROLE_DESCRIPTION": orNone(category.Description),
		"SCORES":           scoresBlock(result),
		"STYLE":            orNone(category.Style),
	}), nil
}

func (r *Rewriter) generate(ctx context.Context, operation, system, message string) (string, error) {
	if r.generator == nil {
		return "", errors.New("content generator is not configured")
	}

	r.logger.Debug("gemini generate content request",
		zap.String("operation", operation),
		zap.Int("prompt_length", utf8.RuneCountInString(system)+utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.TruncateForLog(message, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, system, message)
	if err != nil {
		return "", fmt.Errorf("%s: %w", operation, err)
	}

	r.logger.Debug("gemini generate content response",
		zap.String("operation", operation),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	text := stripCodeFence(raw)
	if text == "" {
		return "", fmt.Errorf("%s: model returned an empty answer", operation)
	}

	return text, nil
}

func fill(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}

func scoresBlock(result *scoring.Result) string {
	lines := make([]string, 0, len(result.Categories))
	for _, cs := range result.Ranked() {
		lines = append(lines, fmt.Sprintf("- %s: %.0f%%", cs.Category, cs.Score*100))
	}
	return strings.Join(lines, "\n")
}

func evidenceBlock(result *scoring.Result) string {
	lines := make([]string, 0, len(result.Categories))
	for _, category := range result.Categories {
		matches := result.Top(category, evidencePerCategory)
		if len(matches) == 0 {
			lines = append(lines, fmt.Sprintf("- %s: %s", category, placeholderNone))
			continue
		}

		terms := make([]string, 0, len(matches))
		for _, m := range matches {
			terms = append(terms, fmt.Sprintf("%s (×%d)", m.Keyword, m.Count))
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", category, strings.Join(terms, ", ")))
	}
	return strings.Join(lines, "\n")
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return placeholderNone
	}
	return s
}

// sanitizeFeedback keeps user feedback on its own lines, strips control
// characters and square brackets that could imitate prompt sections, and
// limits its length.
func sanitizeFeedback(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '[':
			return '('
		case r == ']':
			return ')'
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)

	lines := make([]string, 0)
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}

	out := strings.Join(lines, "\n")
	if runes := []rune(out); len(runes) > maxFeedbackRunes {
		out = strings.TrimSpace(string(runes[:maxFeedbackRunes]))
	}
	return out
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if idx := strings.Index(raw, "\n"); idx != -1 {
			raw = raw[idx+1:]
		} else {
			raw = strings.TrimPrefix(raw, "```")
		}
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
