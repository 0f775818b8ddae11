package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB          DBConfig        `mapstructure:"db"`
	Server      ServerConfig    `mapstructure:"server"`
	Web         WebConfig       `mapstructure:"web"`
	CORS        CORSConfig      `mapstructure:"cors"`
	Log         LogConfig       `mapstructure:"log"`
	Provision   ProvisionConfig `mapstructure:"provision"`
	RedirectURI string          `mapstructure:"redirect_uri"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type WebConfig struct {
	PublicDir string `mapstructure:"public_dir"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ProvisionConfig struct {
	UsersURL       string        `mapstructure:"users_url"`
	UserCount      int           `mapstructure:"user_count"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.source", "")
	v.SetDefault("redirect_uri", "")
	v.SetDefault("server.addr", ":9900")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("web.public_dir", "./public")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("provision.users_url", "https://randomuser.me/api/")
	v.SetDefault("provision.user_count", 30)
	v.SetDefault("provision.request_timeout", 15*time.Second)
}

// Load reads settings.yml from ./configs or /configs, overlays environment
// variables (db.source -> DB_SOURCE) and validates the result. A missing
// file is not an error when the environment supplies the required keys.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")
	return load(v)
}

// LoadFile reads the configuration from an explicit path, or behaves like
// Load when path is empty.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Load()
	}
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var ErrInvalidConfig = errors.New("invalid configuration")

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB.Source) == "" {
		return fmt.Errorf("%w: db.source is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.RedirectURI) == "" {
		return fmt.Errorf("%w: redirect_uri is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.RedirectURI)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("%w: redirect_uri must be an absolute URL", ErrInvalidConfig)
	}
	if c.Provision.UserCount <= 0 {
		return fmt.Errorf("%w: provision.user_count must be positive", ErrInvalidConfig)
	}
	return nil
}
