/**
* Name: 			config.go
* Description: 		Process-wide configuration, read once at startup
* Workflow: 		.env load, viper defaults + env binding, struct validation
 */

package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage strategies for the audio payload column.
const (
	StorageModeBlob = "blob"
	StorageModePath = "path"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	Host    string `mapstructure:"HOST" validate:"required"`
	Port    int    `mapstructure:"PORT" validate:"min=1,max=65535"`
	GinMode string `mapstructure:"GIN_MODE" validate:"oneof=debug release test"`

	Database DatabaseConfig `mapstructure:",squash"`
	Audio    AudioConfig    `mapstructure:",squash"`
	Limit    LimitConfig    `mapstructure:",squash"`
	Log      LogConfig      `mapstructure:",squash"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"DB_DRIVER" validate:"oneof=mysql sqlite"`
	Host         string `mapstructure:"MYSQL_HOST" validate:"required_if=Driver mysql"`
	Port         int    `mapstructure:"MYSQL_PORT" validate:"min=1,max=65535"`
	Name         string `mapstructure:"MYSQL_DATABASE" validate:"required_if=Driver mysql"`
	User         string `mapstructure:"MYSQL_USER" validate:"required_if=Driver mysql"`
	Password     string `mapstructure:"MYSQL_PASSWORD"`
	SQLitePath   string `mapstructure:"SQLITE_PATH" validate:"required_if=Driver sqlite"`
	MaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNECTIONS" validate:"min=1"`
	MaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNECTIONS" validate:"min=0"`
}

type AudioConfig struct {
	StorageMode    string        `mapstructure:"AUDIO_STORAGE_MODE" validate:"oneof=blob path"`
	AudioDir       string        `mapstructure:"AUDIO_DIR" validate:"required_if=StorageMode path"`
	TempDir        string        `mapstructure:"TEMP_DIR" validate:"required"`
	FFmpegPath     string        `mapstructure:"FFMPEG_PATH" validate:"required"`
	ConvertTimeout time.Duration `mapstructure:"CONVERT_TIMEOUT" validate:"min=0"`
	MaxUploadBytes int64         `mapstructure:"MAX_UPLOAD_BYTES" validate:"min=1"`
}

type LimitConfig struct {
	PerSecond float64 `mapstructure:"RATE_LIMIT_PER_SECOND" validate:"min=0"`
	Burst     int     `mapstructure:"RATE_LIMIT_BURST" validate:"min=1"`
}

type LogConfig struct {
	Level string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"LOG_FILE"`
}

// Load reads .env (if any) and the process environment into a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config.Load(): no .env file found, reading process environment only")
	}

	v := viper.New()
	setDefault(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load(): failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AutomaticEnv only resolves keys viper already knows, so every key needs a default here.
func setDefault(v *viper.Viper) {
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 8080)
	v.SetDefault("GIN_MODE", "release")

	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("MYSQL_HOST", "")
	v.SetDefault("MYSQL_PORT", 3306)
	v.SetDefault("MYSQL_DATABASE", "")
	v.SetDefault("MYSQL_USER", "")
	v.SetDefault("MYSQL_PASSWORD", "")
	v.SetDefault("SQLITE_PATH", "./phrase_audio.db")
	v.SetDefault("DB_MAX_OPEN_CONNECTIONS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNECTIONS", 5)

	v.SetDefault("AUDIO_STORAGE_MODE", StorageModeBlob)
	v.SetDefault("AUDIO_DIR", "data/audio")
	v.SetDefault("TEMP_DIR", "data/tmp")
	v.SetDefault("FFMPEG_PATH", "ffmpeg")
	v.SetDefault("CONVERT_TIMEOUT", "0s")
	v.SetDefault("MAX_UPLOAD_BYTES", 20<<20)

	v.SetDefault("RATE_LIMIT_PER_SECOND", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
