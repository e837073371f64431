// Package config loads tool configuration from flags, environment
// variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultDelay is the courtesy pause between successive documents.
	DefaultDelay = time.Second

	// DefaultPollAttempts bounds oracle file-state polling.
	DefaultPollAttempts = 10

	// DefaultPollDelay is the fixed wait between polls.
	DefaultPollDelay = 2 * time.Second

	// DefaultModel is the oracle model used unless overridden.
	DefaultModel = "gemini-2.5-flash"

	// DefaultLogLevel controls console/transcript verbosity.
	DefaultLogLevel = "info"

	envPrefix = "FORMBOT"
	envAPIKey = "GEMINI_API_KEY"
)

// Config holds all settings for one run.
type Config struct {
	// Source is the positional argument: a path to an input file or a
	// literal document URL. Empty when TestMode is set.
	Source string

	// TestMode substitutes the built-in sample URL list for Source.
	TestMode bool

	// TruthPath switches to evaluation mode against the given ground-truth
	// CSV.
	TruthPath string

	// PromptPath points at an alternate instruction template file.
	PromptPath string

	APIKey       string
	Model        string
	OutputDir    string
	LogLevel     string
	Delay        time.Duration
	PollAttempts int
	PollDelay    time.Duration
}

// DefaultConfig returns a configuration with defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Model:        DefaultModel,
		OutputDir:    ".",
		LogLevel:     DefaultLogLevel,
		Delay:        DefaultDelay,
		PollAttempts: DefaultPollAttempts,
		PollDelay:    DefaultPollDelay,
	}
}

// LoadFromFlags parses command line flags, the environment and an optional
// .env file, and returns a validated configuration.
func LoadFromFlags() (*Config, error) {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	args := pflag.Args()
	switch {
	case len(args) > 1:
		return nil, errors.New("expected exactly one input file or URL")
	case len(args) == 1:
		cfg.Source = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	_ = viper.BindEnv("apikey", envAPIKey)

	viper.SetDefault("model", cfg.Model)
	viper.SetDefault("out", cfg.OutputDir)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("delay", cfg.Delay)
	viper.SetDefault("poll-attempts", cfg.PollAttempts)
	viper.SetDefault("poll-delay", cfg.PollDelay)
}

func defineCommandLineFlags(cfg *Config) {
	pflag.Bool("test", false, "Classify the built-in sample URL list")
	pflag.String("truth", "", "Ground-truth CSV; switches to evaluation mode")
	pflag.String("prompt", "", "Alternate instruction template file")
	pflag.String("model", cfg.Model, "Oracle model name")
	pflag.String("out", cfg.OutputDir, "Directory for report files")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Duration("delay", cfg.Delay, "Fixed delay between documents")
	pflag.Int("poll-attempts", cfg.PollAttempts, "Maximum oracle file-state polls per document")
	pflag.Duration("poll-delay", cfg.PollDelay, "Delay between oracle file-state polls")
}

func bindFlagsToViper() {
	for _, name := range []string{
		"test", "truth", "prompt", "model", "out", "loglevel",
		"delay", "poll-attempts", "poll-delay",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input-file-or-url>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdf-formbot - classify PDF forms with a generative model\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s      API key for the oracle (required)\n", envAPIKey)
		fmt.Fprintf(os.Stderr, "  %s_MODEL       Oracle model name\n", envPrefix)
		fmt.Fprintf(os.Stderr, "  %s_LOGLEVEL    Log level\n", envPrefix)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s urls.txt                    # classify every URL in the file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s https://x.test/a.pdf        # classify a single document\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --truth review.csv urls.txt # evaluate against ground truth\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --test                      # run the built-in samples\n", os.Args[0])
	}
}

func populateConfigFromViper(cfg *Config) {
	cfg.TestMode = viper.GetBool("test")
	cfg.TruthPath = viper.GetString("truth")
	cfg.PromptPath = viper.GetString("prompt")
	cfg.APIKey = viper.GetString("apikey")
	cfg.Model = viper.GetString("model")
	cfg.OutputDir = viper.GetString("out")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.Delay = viper.GetDuration("delay")
	cfg.PollAttempts = viper.GetInt("poll-attempts")
	cfg.PollDelay = viper.GetDuration("poll-delay")
}

// Validate checks the configuration. Every violation here is a fatal
// configuration error reported before any batch work begins.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s is not set", envAPIKey)
	}

	if c.Source == "" && !c.TestMode && c.TruthPath == "" {
		return errors.New("an input file or URL is required (or use --test or --truth)")
	}
	if c.Source != "" && c.TestMode {
		return errors.New("--test and an input argument are mutually exclusive")
	}
	if c.TruthPath != "" && (c.Source != "" || c.TestMode) {
		return errors.New("--truth supplies its own URL list; drop the input argument")
	}

	if c.PromptPath != "" {
		if _, err := os.Stat(c.PromptPath); err != nil {
			return fmt.Errorf("prompt file: %w", err)
		}
	}
	if c.TruthPath != "" {
		if _, err := os.Stat(c.TruthPath); err != nil {
			return fmt.Errorf("ground-truth file: %w", err)
		}
	}

	if c.Delay < 0 {
		return errors.New("delay must not be negative")
	}
	if c.PollAttempts <= 0 {
		return errors.New("poll-attempts must be positive")
	}
	if c.PollDelay <= 0 {
		return errors.New("poll-delay must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// EvaluationMode reports whether this run compares against ground truth.
func (c *Config) EvaluationMode() bool {
	return c.TruthPath != ""
}

// SampleURLs is the hard-coded list used by --test.
func SampleURLs() []string {
	return []string{
		"https://www.irs.gov/pub/irs-pdf/fw9.pdf",
		"https://www.irs.gov/pub/irs-pdf/f1040.pdf",
		"https://www.uscis.gov/sites/default/files/document/forms/i-9.pdf",
	}
}
