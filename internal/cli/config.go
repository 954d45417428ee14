package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/bindkit/bindkit/internal/app"
)

const (
	envPrefix      = "BINDKIT"
	configFileName = "bindkit"
)

// appConfig is resolved by the root command's PersistentPreRunE so that
// every subcommand sees the same merged configuration.
var appConfig *app.Config

// loadConfig merges the optional config file, environment variables and
// flags into the application configuration. Flags win over environment
// variables, which win over the file. A missing default config file is
// not an error; a missing file passed via --config is.
func loadConfig() error {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	if flagConfigFile != "" {
		v.SetConfigFile(flagConfigFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+configFileName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Bind against the root command's flag set. Subcommands inherit
	// persistent flags lazily, so their own sets cannot be used here.
	for key, name := range map[string]string{
		"manifests":  "manifest",
		"log_level":  "log-level",
		"log_format": "log-format",
	} {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	logLevel := strings.ToLower(v.GetString("log_level"))
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", logLevel)
	}

	logFormat := strings.ToLower(v.GetString("log_format"))
	switch logFormat {
	case "", "text", "json":
		// valid
	default:
		return fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", logFormat)
	}

	appConfig = app.NewConfig(app.Config{
		ManifestPaths: v.GetStringSlice("manifests"),
		LogLevel:      logLevel,
		LogFormat:     logFormat,
	})
	return nil
}
