package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Persistence backends understood by storage.OpenSlot.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Map         MapConfig         `mapstructure:"map"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	File        FileConfig        `mapstructure:"file"`
	SQLite      SQLiteConfig      `mapstructure:"sqlite"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Postgres    PostgresConfig    `mapstructure:"postgres"`
	S3          S3Config          `mapstructure:"s3"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// MapConfig describes the map view. The default location stands in for the
// browser's geolocation when a client does not send its own position.
type MapConfig struct {
	Zoom           int     `mapstructure:"zoom"`
	DefaultEnabled bool    `mapstructure:"default_enabled"`
	DefaultLat     float64 `mapstructure:"default_lat"`
	DefaultLng     float64 `mapstructure:"default_lng"`
}

type PersistenceConfig struct {
	Backend string        `mapstructure:"backend"`
	Key     string        `mapstructure:"key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FileConfig struct {
	Path string `mapstructure:"path"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in the working directory, if present, is loaded first; it never
// overrides variables that are already set.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("map.zoom", 13)
	v.SetDefault("map.default_enabled", false)
	v.SetDefault("map.default_lat", 0.0)
	v.SetDefault("map.default_lng", 0.0)
	v.SetDefault("persistence.backend", BackendFile)
	v.SetDefault("persistence.key", "workouts")
	v.SetDefault("persistence.timeout", "5s")
	v.SetDefault("file.path", "./data")
	v.SetDefault("sqlite.path", "./data/workouts.db")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "workout_tracker")
	v.SetDefault("postgres.dsn", "postgres://localhost:5432/workouts?sslmode=disable")
	v.SetDefault("s3.use_ssl", true)
}

// Validate checks the settings that have no usable fallback.
func (c Config) Validate() error {
	switch c.Persistence.Backend {
	case BackendFile, BackendSQLite, BackendMongo, BackendPostgres, BackendS3:
	default:
		return errors.New("persistence.backend must be one of file, sqlite, mongo, postgres, s3")
	}
	if c.Persistence.Key == "" {
		return errors.New("persistence.key must not be empty")
	}
	if c.Persistence.Backend == BackendS3 && c.S3.BucketName == "" {
		return errors.New("s3.bucket_name is required for the s3 backend")
	}
	if c.Map.Zoom <= 0 {
		return errors.New("map.zoom must be positive")
	}
	return nil
}
