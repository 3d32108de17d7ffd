// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"lintgate/internal/core/domain"
)

// Config is the full task configuration: defaults, then the YAML config
// file, then environment, then flags (flags win).
type Config struct {
	// Files are the source paths to analyze (positional args).
	Files []string `yaml:"files"`

	// ConfigPath is the YAML config file location.
	ConfigPath string `yaml:"-"`

	PrintVersion bool `yaml:"-"`
	Quiet        bool `yaml:"quiet"`

	Engine  Engine            `yaml:"engine"`
	Rules   Rules             `yaml:"rules"`
	Reports map[string]Report `yaml:"reports"`
	Policy  Policy            `yaml:"policy"`
	Output  Output            `yaml:"output"`
}

// Engine configures the external engine launcher.
type Engine struct {
	// EntryPoint is the logical executable name the engine is resolved
	// under. Override tolerates engine-version renames.
	EntryPoint string `yaml:"entry_point"`

	// TimeoutS bounds one engine run, in seconds.
	TimeoutS int `yaml:"timeout"`

	// Classpath lists directories searched for the engine executable,
	// ahead of PATH.
	Classpath []string `yaml:"classpath"`

	// AnalysisClasspath lists library locations of the analyzed code,
	// forwarded to the engine.
	AnalysisClasspath []string `yaml:"analysis_classpath"`
}

// Rules configures the rule document and its substitution properties.
// Exactly one of File, Text, or URL supplies the document.
type Rules struct {
	File       string         `yaml:"file"`
	Text       string         `yaml:"text"`
	URL        string         `yaml:"url"`
	Properties map[string]any `yaml:"properties"`
}

// Report configures one output report.
type Report struct {
	Enabled     bool   `yaml:"enabled"`
	Destination string `yaml:"destination"`
}

// Policy configures the pass/fail behavior.
type Policy struct {
	// IgnoreFailures downgrades violation failures to logged warnings.
	IgnoreFailures bool `yaml:"ignore_failures"`

	// ShowViolations renders violations on the console during the run.
	ShowViolations bool `yaml:"show_violations"`
}

// Output configures artifact locations.
type Output struct {
	Dir             string `yaml:"dir"`
	HistoryDB       string `yaml:"history_db"`
	HistoryDisabled bool   `yaml:"history_disabled"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Engine: Engine{
			EntryPoint: "checkstyle",
			TimeoutS:   300,
		},
		Rules: Rules{
			Properties: make(map[string]any),
		},
		Reports: map[string]Report{
			"xml": {
				Enabled:     true,
				Destination: "lintgate_out/report.xml",
			},
		},
		Policy: Policy{
			IgnoreFailures: false,
			ShowViolations: true,
		},
		Output: Output{
			Dir:       "lintgate_out",
			HistoryDB: "lintgate_out/history.db",
		},
	}
}

// Load initializes the configuration: defaults, then the YAML file, then
// ENV, then flags (flags take priority). Positional arguments are the
// source files to analyze.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	// The config-file path may itself come from env or flags, so peek at
	// both before loading it.
	cfg.ConfigPath = getenv("LINTGATE_CONFIG", ".lintgate.yaml")
	if path := peekFlag(args, "--config"); path != "" {
		cfg.ConfigPath = path
	}

	if err := loadFromFile(&cfg); err != nil {
		return Config{}, err
	}

	loadFromEnv(&cfg)

	if err := loadFromFlags(&cfg, args); err != nil {
		return Config{}, err
	}

	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadFromFile merges the YAML config file if it exists. A missing default
// file is not an error; a missing explicitly-requested file is.
func loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) && cfg.ConfigPath == ".lintgate.yaml" {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrConfigLoadFailed, cfg.ConfigPath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrConfigLoadFailed, cfg.ConfigPath, err)
	}
	return nil
}

// loadFromEnv merges configuration from environment variables.
func loadFromEnv(cfg *Config) {
	if v := getenv("LINTGATE_ENTRY_POINT", ""); v != "" {
		cfg.Engine.EntryPoint = v
	}
	if v := getenv("LINTGATE_TIMEOUT", ""); v != "" {
		cfg.Engine.TimeoutS = parseInt(v, cfg.Engine.TimeoutS)
	}
	if v := getenv("LINTGATE_RULES_FILE", ""); v != "" {
		cfg.Rules.File = v
	}
	if v := getenv("LINTGATE_RULES_URL", ""); v != "" {
		cfg.Rules.URL = v
	}
	if v := getenv("LINTGATE_IGNORE_FAILURES", ""); v != "" {
		cfg.Policy.IgnoreFailures = parseBool(v)
	}
	if v := getenv("LINTGATE_SHOW_VIOLATIONS", ""); v != "" {
		cfg.Policy.ShowViolations = parseBool(v)
	}
	if v := getenv("LINTGATE_OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
}

// loadFromFlags parses CLI flags over the merged configuration.
func loadFromFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("lintgate", pflag.ContinueOnError)

	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Path to lintgate YAML configuration file")
	fs.StringVarP(&cfg.Rules.File, "rules", "c", cfg.Rules.File, "Path to the rule configuration document")
	fs.StringVar(&cfg.Rules.URL, "rules-url", cfg.Rules.URL, "URL of the rule configuration document")
	fs.StringVar(&cfg.Engine.EntryPoint, "entry-point", cfg.Engine.EntryPoint, "Logical name of the engine executable")
	fs.IntVar(&cfg.Engine.TimeoutS, "timeout", cfg.Engine.TimeoutS, "Engine timeout in seconds (0 = default)")
	fs.StringSliceVar(&cfg.Engine.Classpath, "engine-cp", cfg.Engine.Classpath, "Directories searched for the engine executable")
	fs.StringSliceVar(&cfg.Engine.AnalysisClasspath, "analysis-cp", cfg.Engine.AnalysisClasspath, "Library locations of the analyzed code")
	fs.BoolVar(&cfg.Policy.IgnoreFailures, "ignore-failures", cfg.Policy.IgnoreFailures, "Log violations as a warning instead of failing the build")
	fs.BoolVar(&cfg.Policy.ShowViolations, "show-violations", cfg.Policy.ShowViolations, "Render violations on the console")
	fs.StringVar(&cfg.Output.Dir, "out", cfg.Output.Dir, "Output directory for reports")
	fs.BoolVar(&cfg.Output.HistoryDisabled, "no-history", cfg.Output.HistoryDisabled, "Disable the run history database")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Quiet mode (no UI, minimal output)")
	fs.BoolVarP(&cfg.PrintVersion, "version", "v", false, "Print version and exit")

	// Report toggles per declared format
	reportFlags := make(map[string]*Report, len(domain.Formats()))
	for _, f := range domain.Formats() {
		name := string(f)
		r := cfg.Reports[name]
		fs.BoolVar(&r.Enabled, fmt.Sprintf("report.%s", name), r.Enabled,
			fmt.Sprintf("Enable the %s report", name))
		fs.StringVar(&r.Destination, fmt.Sprintf("report.%s.dest", name), r.Destination,
			fmt.Sprintf("Destination of the %s report", name))
		reportFlags[name] = &r
	}

	// Property overrides: -p key=value, repeatable
	var props []string
	fs.StringArrayVarP(&props, "property", "p", nil, "Rule property override (key=value, repeatable)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	for name, r := range reportFlags {
		cfg.Reports[name] = *r
	}

	if cfg.Rules.Properties == nil {
		cfg.Rules.Properties = make(map[string]any)
	}
	for _, p := range props {
		key, value, found := strings.Cut(p, "=")
		if !found || key == "" {
			return fmt.Errorf("%w: property %q is not key=value", domain.ErrInvalidConfig, p)
		}
		cfg.Rules.Properties[key] = value
	}

	if fileArgs := fs.Args(); len(fileArgs) > 0 {
		cfg.Files = fileArgs
	}

	return nil
}

func normalize(c *Config) {
	c.Engine.EntryPoint = strings.TrimSpace(c.Engine.EntryPoint)
	if c.Engine.EntryPoint == "" {
		c.Engine.EntryPoint = "checkstyle"
	}
	if c.Engine.TimeoutS < 0 {
		c.Engine.TimeoutS = 0
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "lintgate_out"
	}
	if c.Output.HistoryDB == "" {
		c.Output.HistoryDB = c.Output.Dir + "/history.db"
	}
}

// Validate checks invariants that would otherwise only surface mid-run.
func (c Config) Validate() error {
	if c.PrintVersion {
		return nil
	}

	sources := 0
	for _, s := range []string{c.Rules.File, c.Rules.Text, c.Rules.URL} {
		if strings.TrimSpace(s) != "" {
			sources++
		}
	}
	if sources == 0 {
		return fmt.Errorf("%w: a rule configuration (file, text, or url) is required", domain.ErrInvalidConfig)
	}
	if sources > 1 {
		return fmt.Errorf("%w: rule file, text, and url are mutually exclusive", domain.ErrInvalidConfig)
	}

	for name, r := range c.Reports {
		if _, err := domain.ParseFormat(name); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
		if r.Enabled && r.Destination == "" {
			return fmt.Errorf("%w: report %s is enabled without a destination", domain.ErrInvalidConfig, name)
		}
	}

	return nil
}

// Timeout returns the engine timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.Engine.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.Engine.TimeoutS) * time.Second
}

// BuildReportSet converts the report configuration into a domain ReportSet.
func (c Config) BuildReportSet() (*domain.ReportSet, error) {
	rs := domain.NewReportSet()
	for name, r := range c.Reports {
		if !r.Enabled {
			continue
		}
		format, err := domain.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if err := rs.Enable(format, r.Destination); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// Helpers

// peekFlag extracts a --name value from raw args before the real parse.
func peekFlag(args []string, name string) string {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(a, name+"=") {
			return strings.TrimPrefix(a, name+"=")
		}
	}
	return ""
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
