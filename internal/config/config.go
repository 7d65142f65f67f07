package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Firebase holds the keys consumed by the datastore provider.
// Neither value is validated here.
type Firebase struct {
	ProjectID string `mapstructure:"project-id"`
	// CredentialsPath locates the service-account JSON: a file path,
	// "file:<path>" or "env:<VAR>".
	CredentialsPath string `mapstructure:"credentials-path"`
}

type Server struct {
	Port            string        `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed-origins"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

type Log struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

type Config struct {
	Firebase Firebase `mapstructure:"firebase"`
	Server   Server   `mapstructure:"server"`
	Log      Log      `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("firebase.project-id", "")
	v.SetDefault("firebase.credentials-path", "")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed-origins", []string{"http://localhost:3000"})
	v.SetDefault("server.read-timeout", 15*time.Second)
	v.SetDefault("server.write-timeout", 20*time.Second)
	v.SetDefault("server.idle-timeout", 60*time.Second)
	v.SetDefault("server.shutdown-timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// bindEnv maps the conventional Firebase / Cloud Run variable names onto
// config keys. The first non-empty variable in each list wins.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("firebase.project-id", "FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT")
	_ = v.BindEnv("firebase.credentials-path", "FIREBASE_CREDENTIALS_PATH", "GOOGLE_APPLICATION_CREDENTIALS")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.allowed-origins", "ALLOWED_ORIGINS")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")
}

// Load reads configuration from defaults, an optional YAML file, the
// environment and (if non-nil) command-line flags, in increasing precedence.
//
// With an empty path, application.yaml is looked up in . and ./config and
// may be absent. An explicit path must exist.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if flags != nil {
		if f := flags.Lookup("port"); f != nil {
			if err := v.BindPFlag("server.port", f); err != nil {
				return Config{}, fmt.Errorf("bind port flag: %w", err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("application")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Server.AllowedOrigins = normalizeOrigins(cfg.Server.AllowedOrigins)
	return cfg, nil
}

func normalizeOrigins(in []string) []string {
	allowed := []string{}
	for _, o := range in {
		for _, part := range strings.Split(o, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				allowed = append(allowed, part)
			}
		}
	}
	return allowed
}
