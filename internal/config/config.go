package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type SignalConfig struct {
	Scheme         string        `mapstructure:"scheme"`
	ReadLimit      int64         `mapstructure:"read_limit"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type ReconnectConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
}

type ChatConfig struct {
	RateLimit    int           `mapstructure:"rate_limit"`
	RateInterval time.Duration `mapstructure:"rate_interval"`
}

type Config struct {
	Mode          string               `mapstructure:"mode"`
	LogLevel      string               `mapstructure:"log_level"`
	TokenEndpoint string               `mapstructure:"token_endpoint"`
	TokenTimeout  time.Duration        `mapstructure:"token_timeout"`
	SFUHost       string               `mapstructure:"sfu_host"`
	PageScheme    string               `mapstructure:"page_scheme"`
	PageHost      string               `mapstructure:"page_host"`
	ControlAddr   string               `mapstructure:"control_addr"`
	StateFile     string               `mapstructure:"state_file"`
	Secret        string               `mapstructure:"secret"`
	ICEServers    []string             `mapstructure:"ice_servers"`
	Signal        SignalConfig         `mapstructure:"signal"`
	Reconnect     ReconnectConfig      `mapstructure:"reconnect"`
	Chat          ChatConfig           `mapstructure:"chat"`
	Media         domain.MediaSettings `mapstructure:"media"`
}

// New returns a viper instance with every default set so that
// environment variables and bound flags resolve.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("token_endpoint", "")
	v.SetDefault("token_timeout", "10s")
	v.SetDefault("sfu_host", "")
	v.SetDefault("page_scheme", "https")
	v.SetDefault("page_host", "localhost:8080")
	v.SetDefault("control_addr", "")
	v.SetDefault("state_file", defaultStateFile())
	v.SetDefault("secret", "roomclient")
	v.SetDefault("ice_servers", []string{"stun:stun.l.google.com:19302"})

	v.SetDefault("signal.scheme", "wss")
	v.SetDefault("signal.read_limit", 32768)
	v.SetDefault("signal.ping_period", "54s")
	v.SetDefault("signal.write_timeout", "5s")
	v.SetDefault("signal.request_timeout", "10s")

	v.SetDefault("reconnect.max_attempts", 0)
	v.SetDefault("reconnect.base_delay", "1s")
	v.SetDefault("reconnect.max_delay", "30s")

	v.SetDefault("chat.rate_limit", 5)
	v.SetDefault("chat.rate_interval", "3s")

	// Codec left empty so the built-in media defaults apply unless a file sets it.
	v.SetDefault("media.selected_audio_device", "")
	v.SetDefault("media.selected_video_device", "")
	v.SetDefault("media.resolution", "")
	v.SetDefault("media.bandwidth", 0)
	v.SetDefault("media.codec", "")
	v.SetDefault("media.frame_rate", 0)
	v.SetDefault("media.dev_mode", false)
	return v
}

// Load reads config/config.<CONFIG_ENV>.yaml on top of the defaults in v.
func Load(v *viper.Viper) (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Str("page_host", cfg.PageHost).
		Str("sfu_host", cfg.SFUHost).Bool("token_endpoint_set", cfg.TokenEndpoint != "").Msg("config ready")
	return &cfg, nil
}

// SignalURL is scheme://{env}.{host}, host being the SFU host or the page host.
func (c *Config) SignalURL(env domain.Env) string {
	host := c.SFUHost
	if host == "" {
		host = c.PageHost
	}
	scheme := c.Signal.Scheme
	if scheme == "" {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s.%s", scheme, env, host)
}

// BaseURL is the address of the page without room parameters.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("%s://%s", c.PageScheme, c.PageHost)
}

func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ExternalMedia is nil unless the configuration names a codec.
func (c *Config) ExternalMedia() *domain.MediaSettings {
	if c.Media.Codec == "" {
		return nil
	}
	m := c.Media
	return &m
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir + "/roomclient/last_url"
}
