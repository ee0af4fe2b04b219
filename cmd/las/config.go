package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yacobolo/las"
	"github.com/yacobolo/las/internal/logging"
)

const defaultConfigPath = ".las.yaml"

var k = koanf.New(".")

// flagKeys maps command flags onto their nested config keys. Flags not
// listed use their own name as the key.
var flagKeys = map[string]string{
	"strict":          "check.strict",
	"max-issues":      "check.max-issues",
	"max-same-issues": "check.max-same-issues",
	"print-lines":     "check.print-lines",
	"addr":            "serve.addr",
	"root":            "serve.root",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Unchanged flags only fill keys that neither the file nor env set
	provider := posflag.ProviderWithFlag(cmd.Flags(), ".", k, func(f *pflag.Flag) (string, interface{}) {
		return flagKey(f.Name), posflag.FlagVal(cmd.Flags(), f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("LAS_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps LAS_* variables to config keys:
//
//	LAS_SERVE_ADDR   -> serve.addr
//	LAS_OUTPUT       -> output
//	LAS_ASSETS__DIR  -> assets-dir
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "LAS_"))
	key = strings.ReplaceAll(key, "__", "-")
	return strings.ReplaceAll(key, "_", ".")
}

func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return name
}

// commandDefaults are the scan settings a command falls back to when
// neither flags nor config set them
type commandDefaults struct {
	ScanDirs   []string
	Extensions []string
	Output     string
}

var (
	buildDefaults = commandDefaults{
		ScanDirs:   []string{"./src", "./public", "./app", "./pages", "./components"},
		Extensions: []string{".html", ".jsx", ".tsx", ".js", ".ts", ".vue"},
		Output:     "./dist/las-production.css",
	}
	watchDefaults = commandDefaults{
		ScanDirs:   []string{"./"},
		Extensions: []string{".html", ".jsx", ".tsx", ".js", ".ts", ".vue"},
		Output:     "./dist/jit.css",
	}
)

// buildOptions constructs the library's Options from koanf state
func buildOptions(defaults commandDefaults, log *zap.Logger) las.Options {
	return las.Options{
		ScanDirs:   getStringsWithFallback("scan-dirs", defaults.ScanDirs),
		Extensions: getStringsWithFallback("extensions", defaults.Extensions),
		OutputPath: getStringWithFallback("output", defaults.Output),
		Sources:    buildSourceConfig(),
		Ignore:     k.Strings("ignore"),
		GitIgnore:  getBoolWithFallback("gitignore", false),
		Logger:     log,
	}
}

func buildSourceConfig() las.SourceConfig {
	return las.SourceConfig{
		AssetsDir: getStringWithFallback("assets-dir", "."),
		BaseCSS:   k.String("base-css"),
		MetaCSS:   k.String("meta-css"),
		Namespace: getStringWithFallback("namespace", "las"),
	}
}

// buildCheckOptions constructs CheckOptions; check scans what build scans
func buildCheckOptions(log *zap.Logger) las.CheckOptions {
	return las.CheckOptions{
		Options:       buildOptions(buildDefaults, log),
		MaxIssues:     getIntWithFallback("check.max-issues", 0),
		MaxSameIssues: getIntWithFallback("check.max-same-issues", 0),
	}
}

// newLogger builds the CLI logger from log-level and verbose
func newLogger() (*zap.Logger, error) {
	cfg := logging.DefaultConfig()
	cfg.Level = getStringWithFallback("log-level", cfg.Level)
	if getBoolWithFallback("verbose", false) {
		cfg.Level = "debug"
	}
	if getBoolWithFallback("quiet", false) {
		cfg.Level = "error"
	}
	return logging.New(cfg)
}

// getStringWithFallback returns the key's value, or the default when unset or empty.
func getStringWithFallback(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback returns the key's list, or the default when unset or empty.
func getStringsWithFallback(key string, defaultVal []string) []string {
	if v := k.Strings(key); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback returns the key's value, or the default when unset.
func getBoolWithFallback(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getIntWithFallback returns the key's value, or the default when unset.
func getIntWithFallback(key string, defaultVal int) int {
	if k.Exists(key) {
		return k.Int(key)
	}
	return defaultVal
}
