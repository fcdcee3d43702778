package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/rolecolor/internal/extract"
	"github.com/spigell/rolecolor/internal/scoring"
)

const defaultCompareConcurrency = 4

var compareCmd = &cobra.Command{
	Use:   "compare file...",
	Short: "Score several resumes and compare their RoleColor distributions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		compare(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringP("output", "o", "", "comparison format: text or json (default from config)")
	compareCmd.Flags().Int("concurrency", defaultCompareConcurrency, "resumes scored in parallel")
}

// fileScore is the outcome of scoring one file. Failures are kept per file
// so that one unreadable resume does not hide the others.
type fileScore struct {
	Path   string          `json:"path"`
	Result *scoring.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func compare(cmd *cobra.Command, paths []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	lg := newLogger()

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	fw, err := loadFramework(config.Framework)
	if err != nil {
		lg.Fatal("loading keyword framework", zap.Error(err), zap.String("path", config.Framework))
	}

	damping := scoring.DefaultDamping()
	if config.Scoring != nil {
		damping = config.Scoring.Damping
	}

	scorer, err := scoring.New(fw, damping, lg)
	if err != nil {
		lg.Fatal("creating a scorer", zap.Error(err))
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	results, err := scoreFiles(ctx, scorer, paths, concurrency)
	if err != nil {
		lg.Fatal("scoring resumes", zap.Error(err))
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			lg.Warn("resume skipped", zap.String("path", r.Path), zap.String("error", r.Error))
		}
	}
	lg.Info("resumes compared", zap.Int("count", len(results)), zap.Int("failed", failed))

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = config.Output
	}

	if err := writeComparison(cmd.OutOrStdout(), results, scorer.Categories(), output); err != nil {
		lg.Fatal("writing comparison", zap.Error(err))
	}
}

// scoreFiles scores paths with at most limit files in flight. The returned
// slice follows the order of paths.
func scoreFiles(ctx context.Context, scorer *scoring.Scorer, paths []string, limit int) ([]fileScore, error) {
	results := make([]fileScore, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, limit))

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			results[i] = fileScore{Path: path}

			text, err := extract.File(path)
			if err == nil {
				results[i].Result, err = scorer.Score(text)
			}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func writeComparison(w io.Writer, results []fileScore, categories []string, output string) error {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", outputText:
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		return fmt.Errorf("unsupported output format %q (use %s or %s)", output, outputText, outputJSON)
	}

	headers := append([]string{"FILE", "DOMINANT"}, categories...)
	headers = append(headers, "MATCHES")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)

	for _, r := range results {
		row := make([]string, 0, len(headers))
		row = append(row, r.Path)

		if r.Result == nil {
			row = append(row, "error: "+r.Error)
			for range categories {
				row = append(row, "-")
			}
			row = append(row, "-")
			t.Row(row...)
			continue
		}

		dominant := r.Result.DominantRole
		if r.Result.Fallback {
			dominant += " (no matches)"
		}
		row = append(row, dominant)
		for _, c := range categories {
			row = append(row, fmt.Sprintf("%.1f%%", r.Result.Scores[c]*100))
		}
		row = append(row, strconv.Itoa(r.Result.TotalKeywordsMatched))
		t.Row(row...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
