package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Logging   LoggingConfig
	Admission AdmissionConfig
}

type ServerConfig struct {
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RedisConfig is optional: with no addresses, category membership stays in
// memory and no admission events are published.
type RedisConfig struct {
	Addresses   []string `mapstructure:"addresses"`
	Password    string   `mapstructure:"password"`
	DB          int      `mapstructure:"db"`
	PoolSize    int      `mapstructure:"pool_size"`
	ClusterMode bool     `mapstructure:"cluster_mode"`
	KeyPrefix   string   `mapstructure:"key_prefix"`
}

func (c *RedisConfig) Enabled() bool {
	return len(c.Addresses) > 0
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type AdmissionConfig struct {
	DefaultPath string `mapstructure:"default_path"`
	// Threshold is the free space that must remain, e.g. "10GiB". "0" disables the check.
	Threshold string `mapstructure:"threshold"`
	// CategoryThresholds overrides Threshold per category label. Keys are
	// lower-cased by viper.
	CategoryThresholds map[string]string `mapstructure:"category_thresholds"`
	ProbeTimeout       time.Duration     `mapstructure:"probe_timeout"`
	MonitoredPaths     []string          `mapstructure:"monitored_paths"`
	// RequiredMountFlags is a comma separated list such as "nosuid,nodev".
	RequiredMountFlags string `mapstructure:"required_mount_flags"`
}

// Load reads config.yaml from /etc/diskgate/ or the working directory,
// overlaid with DISKGATE_* environment variables.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/diskgate/")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return unmarshal(v)
}

// LoadFile reads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("DISKGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.key_prefix", "{diskgate}:")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("admission.default_path", ".")
	v.SetDefault("admission.threshold", "0")
	v.SetDefault("admission.probe_timeout", "5s")
	v.SetDefault("admission.required_mount_flags", "")

	// AutomaticEnv only overrides keys viper already knows; keys without a
	// default need an explicit binding to be settable from the environment.
	for _, key := range []string{
		"redis.addresses",
		"redis.password",
		"redis.db",
		"redis.cluster_mode",
		"auth.jwt_secret",
		"admission.monitored_paths",
	} {
		_ = v.BindEnv(key)
	}

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
