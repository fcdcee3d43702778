package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/rolecolor/internal/framework"
)

const defaultKeywordLimit = 10

var keywordsCmd = &cobra.Command{
	Use:   "keywords [category]",
	Short: "Show the keyword framework: top keywords per RoleColor, or every keyword of one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lg := newLogger()

		path := viper.GetString("framework")
		fw, err := loadFramework(path)
		if err != nil {
			lg.Fatal("loading keyword framework", zap.Error(err), zap.String("path", path))
		}

		category := ""
		if len(args) > 0 {
			category = args[0]
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if err := writeKeywords(cmd.OutOrStdout(), fw, category, limit); err != nil {
			lg.Fatal("writing keywords", zap.Error(err), zap.String("category", category))
		}
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().Int("limit", defaultKeywordLimit, "keywords listed per RoleColor in the overview; 0 lists all")
}

// writeKeywords prints every category, limited to the heaviest keywords, or
// the full table of a single category when one is named.
func writeKeywords(w io.Writer, fw *framework.Framework, category string, limit int) error {
	names := fw.Categories()
	if category = strings.TrimSpace(category); category != "" {
		name, err := resolveCategory(fw, category)
		if err != nil {
			return err
		}
		names = []string{name}
		limit = 0
	}

	for _, name := range names {
		c, err := fw.Category(name)
		if err != nil {
			return err
		}

		keywords, err := fw.SortedKeywords(name)
		if err != nil {
			return err
		}

		title := fmt.Sprintf("%s (%d keywords)", c.Name, len(keywords))
		if limit > 0 && len(keywords) > limit {
			title = fmt.Sprintf("%s (top %d of %d keywords)", c.Name, limit, len(keywords))
			keywords = keywords[:limit]
		}

		heading := lipgloss.NewStyle().Bold(true)
		if c.Accent != "" {
			heading = heading.Foreground(lipgloss.Color(c.Accent))
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("KEYWORD", "WEIGHT")
		for _, kw := range keywords {
			t.Row(kw.Term, fmt.Sprintf("%.1f", kw.Weight))
		}

		fmt.Fprintln(w, heading.Render(title))
		if c.Description != "" {
			fmt.Fprintln(w, c.Description)
		}
		fmt.Fprintln(w, t.Render())
		fmt.Fprintln(w)
	}

	return nil
}

// resolveCategory matches name against the framework case-insensitively.
func resolveCategory(fw *framework.Framework, name string) (string, error) {
	for _, c := range fw.Categories() {
		if strings.EqualFold(c, name) {
			return c, nil
		}
	}
	_, err := fw.Category(name)
	return "", err
}
