package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agilira/chiron-sub000/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI.
const (
	KeyPluginsDir        = "plugins_dir"
	KeyPluginRoots       = "plugin_roots"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
	KeyLoaderConcurrency = "loader.concurrency"
)

// Settings is a typed snapshot of the effective configuration.
type Settings struct {
	PluginsDir  string   `mapstructure:"plugins_dir"`
	PluginRoots []string `mapstructure:"plugin_roots"`
	Log         struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Loader struct {
		Concurrency int `mapstructure:"concurrency"`
	} `mapstructure:"loader"`
}

// Dir returns the path to the config directory (~/.chiron/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.chiron/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyPluginsDir, "plugins")
	viper.SetDefault(KeyPluginRoots, []string{})
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFormat, "text")
	viper.SetDefault(KeyLoaderConcurrency, 0)
}

// Load initializes Viper to read from the default config file and environment.
func Load() error {
	return LoadFile(FilePath())
}

// LoadFile is Load with an explicit config file. A missing file is not an
// error; a file that exists but cannot be parsed is.
func LoadFile(path string) error {
	setDefaults()
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// Current returns the effective settings.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}
	// AutomaticEnv only applies to keys read through Get.
	s.PluginsDir = viper.GetString(KeyPluginsDir)
	s.PluginRoots = viper.GetStringSlice(KeyPluginRoots)
	s.Log.Level = viper.GetString(KeyLogLevel)
	s.Log.Format = viper.GetString(KeyLogFormat)
	s.Loader.Concurrency = viper.GetInt(KeyLoaderConcurrency)
	return s, nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	return SetFile(FilePath(), key, value)
}

// SetFile writes a config key-value pair to an explicit config file.
// Comma separated values for plugin_roots are stored as a list.
func SetFile(configFile, key, value string) error {
	if key == KeyPluginRoots {
		viper.Set(key, splitList(value))
	} else {
		viper.Set(key, value)
	}

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Reset clears all settings. Used by tests and by callers that load more
// than one config file in a process.
func Reset() {
	viper.Reset()
}
