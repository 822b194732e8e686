package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "IMGOPT"

type Server struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Transform struct {
	Engine        string            `mapstructure:"engine"`
	JPEGQuality   int               `mapstructure:"jpeg_quality"`
	MaxPixels     int               `mapstructure:"max_pixels"`
	MaxUploadSize datasize.ByteSize `mapstructure:"-"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	Server    Server    `mapstructure:"server"`
	Transform Transform `mapstructure:"transform"`
	Log       Log       `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0:8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("transform.engine", "native")
	v.SetDefault("transform.jpeg_quality", 90)
	v.SetDefault("transform.max_upload_size", "32MB")
	v.SetDefault("transform.max_pixels", 40_000_000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// Load reads config.toml from the given directories (optional), a .env file
// if present, and IMGOPT_ prefixed environment variables, in increasing order
// of precedence.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if err := cfg.Transform.MaxUploadSize.UnmarshalText([]byte(v.GetString("transform.max_upload_size"))); err != nil {
		return nil, fmt.Errorf("invalid transform.max_upload_size: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Transform.JPEGQuality < 1 || c.Transform.JPEGQuality > 100 {
		return fmt.Errorf("transform.jpeg_quality must be between 1 and 100, got %d", c.Transform.JPEGQuality)
	}

	if c.Transform.MaxPixels < 1 {
		return fmt.Errorf("transform.max_pixels must be greater than zero, got %d", c.Transform.MaxPixels)
	}

	if c.Transform.MaxUploadSize == 0 {
		return errors.New("transform.max_upload_size must be greater than zero")
	}

	if _, err := c.Log.ZerologLevel(); err != nil {
		return err
	}

	return nil
}

// ZerologLevel maps the configured level name to a zerolog level.
func (l Log) ZerologLevel() (zerolog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", l.Level)
	}
}
