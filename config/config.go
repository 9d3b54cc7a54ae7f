package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MORPHJA_DICTIONARY_DIR.
const EnvPrefix = "MORPHJA"

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Tokenizer  TokenizerConfig  `mapstructure:"tokenizer"`
	Log        LogConfig        `mapstructure:"log"`
	Reference  ReferenceConfig  `mapstructure:"reference"`
	Batch      BatchConfig      `mapstructure:"batch"`
}

// DictionaryConfig locates the binary dictionary files.
type DictionaryConfig struct {
	Dir string `mapstructure:"dir"`
	// Gzip reads NAME.gz instead of NAME.
	Gzip bool `mapstructure:"gzip"`
}

// TokenizerConfig stores tokenizer limits.
type TokenizerConfig struct {
	MaxSentenceLength int `mapstructure:"maxSentenceLength"`
}

// LogConfig selects the log level and encoding ("json" or "console").
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReferenceConfig names the kagome dictionary used by compare.
type ReferenceConfig struct {
	Dict string `mapstructure:"dict"`
}

// BatchConfig stores batch tokenization settings.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// Option adjusts how Load resolves values.
type Option func(*viper.Viper) error

// WithFlags lets command-line flags named after config keys, such as
// --dictionary.dir, override file and environment values.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(fs)
	}
}

// Load reads configuration from configPath, or from config.yaml in the
// working directory when configPath is empty. A missing default file is not
// an error. Precedence is flags, environment, file, defaults.
func Load(configPath string, opts ...Option) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("dictionary.dir", "dict")
	v.SetDefault("dictionary.gzip", false)
	v.SetDefault("tokenizer.maxSentenceLength", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("reference.dict", "ipa")
	v.SetDefault("batch.workers", 4)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if cfg.Batch.Workers < 1 {
		cfg.Batch.Workers = 1
	}
	return &cfg, nil
}
