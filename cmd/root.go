package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/rolecolor/internal/framework"
	"github.com/spigell/rolecolor/internal/logger"
	"github.com/spigell/rolecolor/internal/scoring"
)

const (
	app = "rolecolor"
)

type Config struct {
	Framework string         `mapstructure:"framework"`
	Scoring   *ScoringConfig `mapstructure:"scoring"`
	Output    string         `mapstructure:"output" validate:"omitempty,oneof=text json"`
	Top       int            `mapstructure:"top" validate:"gte=0"`
	AI        *AIConfig      `mapstructure:"ai"`
}

type ScoringConfig struct {
	Damping scoring.Damping `mapstructure:"damping"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0,lte=10"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

// Validate checks value ranges and enumerations; damping is validated by the scorer.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is required")
	}

	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if c.AI != nil {
		c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "rolecolor scores a resume across the four RoleColors and rewrites its summary",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults()

	viper.SetEnvPrefix(strings.ToUpper(app))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is rolecolor.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("framework", "", "path to a keyword framework YAML (default is the built-in RoleColor framework)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("framework", rootCmd.PersistentFlags().Lookup("framework"))
}

func setDefaults() {
	damping := scoring.DefaultDamping()

	viper.SetDefault("scoring.damping.cap", damping.Cap)
	viper.SetDefault("scoring.damping.decay", damping.Decay)
	viper.SetDefault("output", outputText)
	viper.SetDefault("top", 5)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)
}

func initConfig() {
	// A .env file in the working directory may carry GEMINI_API_KEY.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless given explicitly; every key has a default.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

// newLogger builds the command logger from the --json and --debug flags.
func newLogger() *zap.Logger {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return lg
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

// loadFramework returns the framework named by path, or the built-in one.
func loadFramework(path string) (*framework.Framework, error) {
	if path = strings.TrimSpace(path); path == "" {
		return framework.Default(), nil
	}
	return framework.Load(path)
}
