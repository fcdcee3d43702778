package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/rolecolor/internal/ai"
	"github.com/spigell/rolecolor/internal/ai/gemini"
	"github.com/spigell/rolecolor/internal/extract"
	"github.com/spigell/rolecolor/internal/framework"
	"github.com/spigell/rolecolor/internal/logger"
	"github.com/spigell/rolecolor/internal/scoring"
	"github.com/spigell/rolecolor/internal/secrets"
)

const (
	PromptRewrite = "Rewrite summary"
	PromptRefine  = "Refine summary with feedback"
	PromptExplain = "Explain scores"
	PromptDump    = "Dump result to file"
	PromptExit    = "Exit"

	outputText = "text"
	outputJSON = "json"

	stdinPath = "-"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptRewrite, PromptRefine, PromptExplain, PromptDump, PromptExit},
}

var scoreCmd = &cobra.Command{
	Use:   "score [file|-]",
	Short: "Score a resume (txt, md, pdf, docx or stdin) across the RoleColors",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("output", "o", "", "report format: text or json")
	scoreCmd.Flags().Int("top", 0, "keyword matches listed per RoleColor")
	scoreCmd.Flags().Bool("no-color", false, "do not colour the score bars")
	scoreCmd.Flags().Bool("rewrite", false, "rewrite the resume summary with AI")
	scoreCmd.Flags().BoolP("yes", "y", false, "do not ask what to do next; rewrite once and exit")
	scoreCmd.Flags().String("summary", "", "an existing summary for the AI to enhance")

	viper.BindPFlag("output", scoreCmd.Flags().Lookup("output"))
	viper.BindPFlag("top", scoreCmd.Flags().Lookup("top"))
}

// session holds the state of one interactive scoring run.
type session struct {
	rewriter ai.Rewriter
	resume   string
	result   *scoring.Result
	original string
	summary  string
	out      io.Writer
	logger   *zap.Logger
	ask      func(label string) (string, error)
}

func score(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	lg := newLogger()

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

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

	path := stdinPath
	if len(args) > 0 {
		path = args[0]
	}

	text, err := readResume(path, cmd.InOrStdin())
	if err != nil {
		lg.Fatal("reading resume", zap.Error(err), zap.String("path", path))
	}

	result, err := scorer.Score(text)
	if err != nil {
		lg.Fatal("scoring resume", zap.Error(err), zap.String("path", path))
	}

	lg.Info("resume scored", logger.ScoreFields(result)...)

	noColor, _ := cmd.Flags().GetBool("no-color")
	if err := writeResult(cmd.OutOrStdout(), result, fw, config.Output, config.Top, !noColor); err != nil {
		lg.Fatal("writing report", zap.Error(err))
	}

	rewrite, _ := cmd.Flags().GetBool("rewrite")
	aiEnabled := rewrite || (config.AI != nil && config.AI.Enabled)
	if !aiEnabled {
		return
	}

	rewriter, err := newRewriter(ctx, config.AI, fw, lg)
	if err != nil {
		lg.Fatal("building ai rewriter", zap.Error(err))
	}

	original, _ := cmd.Flags().GetString("summary")
	s := &session{
		rewriter: rewriter,
		resume:   text,
		result:   result,
		original: original,
		out:      cmd.OutOrStdout(),
		logger:   lg,
		ask:      askFeedback,
	}

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		if err := handleAction(ctx, PromptRewrite, s); err != nil {
			lg.Fatal("rewriting summary", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			lg.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, s); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			lg.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, s *session) error {
	switch action {
	case PromptRewrite:
		summary, err := s.rewriter.Rewrite(ctx, ai.RewriteRequest{
			ResumeText:      s.resume,
			Result:          s.result,
			OriginalSummary: s.original,
		})
		if err != nil {
			return err
		}
		s.summary = summary
		printBlock(s.out, fmt.Sprintf("%s SUMMARY", strings.ToUpper(s.result.DominantRole)), summary)
		return nil
	case PromptRefine:
		if s.summary == "" {
			s.logger.Warn("nothing to refine yet", zap.String("hint", "choose '"+PromptRewrite+"' first"))
			return nil
		}
		feedback, err := s.ask("Feedback")
		if err != nil {
			return err
		}
		summary, err := s.rewriter.Refine(ctx, ai.RefineRequest{
			ResumeText:     s.resume,
			Result:         s.result,
			CurrentSummary: s.summary,
			Feedback:       feedback,
		})
		if err != nil {
			return err
		}
		s.summary = summary
		printBlock(s.out, "REFINED SUMMARY", summary)
		return nil
	case PromptExplain:
		explanation, err := s.rewriter.Explain(ctx, s.result)
		if err != nil {
			return err
		}
		printBlock(s.out, "WHAT THE SCORES SAY", explanation)
		return nil
	case PromptDump:
		filename, err := s.result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump result to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// readResume returns the text of the resume at path; "-" reads in.
func readResume(path string, in io.Reader) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return extract.Bytes("", data)
	}
	return extract.File(path)
}

func writeResult(w io.Writer, result *scoring.Result, fw *framework.Framework, output string, top int, color bool) error {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", outputText:
		_, err := io.WriteString(w, scoring.Report(result, fw, scoring.ReportOptions{Top: top, Color: color}))
		return err
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("unsupported output format %q (use %s or %s)", output, outputText, outputJSON)
	}
}

func newRewriter(ctx context.Context, cfg *AIConfig, fw *framework.Framework, lg *zap.Logger) (ai.Rewriter, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:           "gemini api key",
		File:           cfg.Gemini.APIKeyFile,
		Value:          cfg.Gemini.APIKey,
		Env:            "GEMINI_API_KEY",
		KeyringService: keyringService,
		KeyringUser:    keyringGeminiUser,
	})
	if err != nil {
		return nil, fmt.Errorf("%w; or set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or run '%s auth'", err, app)
	}

	aiLogger := logger.WithAIFields(lg, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries,
		aiLogger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries)),
	)
	if err != nil {
		return nil, err
	}

	return gemini.NewRewriter(generator, fw, cfg.Gemini.MaxLogLength, aiLogger), nil
}

func askFeedback(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("feedback must not be empty")
			}
			return nil
		},
	}
	return p.Run()
}

func printBlock(w io.Writer, title, body string) {
	rule := strings.Repeat("-", 50)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", rule, title, rule, strings.TrimSpace(body))
}
