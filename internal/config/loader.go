package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/sentinel/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".sentinel.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/sentinel"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. SENTINEL_BACKEND_URL.
	EnvPrefix = "SENTINEL"
)

// Load reads config from the specified path, with environment overrides
// applied on top.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'sentinel init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find returns the config file to load, or "" when there is none. An
// explicit path (from --config) must exist. Otherwise the first existing
// entry of searchPaths wins.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}
	home, _ := os.UserHomeDir()

	for _, path := range searchPaths(cwd, home) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// searchPaths lists config candidates in priority order: .sentinel.yaml in
// cwd, then in each parent up to the enclosing git root (never above home),
// then the global ~/.config/sentinel/config.yaml.
func searchPaths(cwd, home string) []string {
	paths := []string{filepath.Join(cwd, ConfigFileName)}

	for dir := cwd; !isGitRoot(dir); {
		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			break
		}
		dir = parent
		paths = append(paths, filepath.Join(dir, ConfigFileName))
	}

	if home != "" {
		paths = append(paths, filepath.Join(home, GlobalConfigDir, GlobalConfigFile))
	}
	return paths
}

// LoadOrDefault finds and loads config, or returns defaults (still with
// environment overrides) if no file exists. The returned path is empty when
// no file was found.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// newViper returns a viper instance with every default registered, so
// environment variables can override keys missing from the file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("backend.url", d.Backend.URL)
	v.SetDefault("backend.timeout", d.Backend.Timeout.String())
	v.SetDefault("refresh.interval", d.Refresh.Interval.String())
	v.SetDefault("refresh.clock", d.Refresh.Clock.String())
	v.SetDefault("windows.sparkline", d.Windows.Sparkline)
	v.SetDefault("scaling.radar_response_divisor", d.Scaling.RadarResponseDivisor)
	v.SetDefault("scaling.card_response_divisor", d.Scaling.CardResponseDivisor)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	cfg.Backend.URL = strings.TrimRight(strings.TrimSpace(cfg.Backend.URL), "/")
	if strings.TrimSpace(cfg.Log.File) == "" {
		cfg.Log.File = DefaultLogFile()
	}
	cfg.Log.File = Expand(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	return cfg, nil
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}
