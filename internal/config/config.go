package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"

	"coquito/internal/parser"
)

const (
	// EnvPrefix marks environment variables read as configuration.
	EnvPrefix = "COQUITO_"

	OutputText = "text"
	OutputJSON = "json"

	DefaultOutput = OutputText
)

// configFileNames are searched in the working directory when no file is given.
var configFileNames = []string{"coquito.yaml", "coquito.yml"}

var log = commonlog.GetLogger("coquito.config")

// Config holds the settings shared by the command line tools.
type Config struct {
	MaxDepth  int           `koanf:"max_depth"`
	MaxTokens int           `koanf:"max_tokens"`
	NoColor   bool          `koanf:"no_color"`
	Output    string        `koanf:"output"`
	Timeout   time.Duration `koanf:"timeout"`

	// File is the configuration file that was read, empty when none was.
	File string `koanf:"-"`
}

// BindFlags registers the flags Load understands on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: coquito.yaml in the working directory)")
	fs.Int("max-depth", parser.DefaultMaxDepth, "maximum nesting depth before a parse is aborted")
	fs.Int("max-tokens", 0, "maximum tokens per file, 0 for no limit")
	fs.Bool("no-color", false, "disable coloured output")
	fs.StringP("output", "o", DefaultOutput, "output format: text or json")
	fs.Duration("timeout", 0, "abort parsing after this long, 0 for no limit")
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads configuration from defaults, the config file, COQUITO_*
// environment variables and explicitly set flags, later sources winning.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"max_depth":  parser.DefaultMaxDepth,
		"max_tokens": 0,
		"no_color":   false,
		"output":     DefaultOutput,
		"timeout":    "0s",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
		log.Debugf("loaded config file %s", used)
	}

	// COQUITO_MAX_DEPTH -> max_depth
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got %d", c.MaxTokens)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output, OutputText, OutputJSON)
	}
	return nil
}

// Context derives a context carrying the configured timeout.
func (c *Config) Context(parent context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(parent, c.Timeout)
	}
	return context.WithCancel(parent)
}

// ParserOptions converts the limits into parser options bound to ctx.
func (c *Config) ParserOptions(ctx context.Context) []parser.Option {
	opts := []parser.Option{
		parser.WithMaxDepth(c.MaxDepth),
		parser.WithMaxTokens(c.MaxTokens),
	}
	if ctx != nil {
		opts = append(opts, parser.WithContext(ctx))
	}
	return opts
}
