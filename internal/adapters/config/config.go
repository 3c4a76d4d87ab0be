package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration, loaded from config.yaml with
// environment variable overrides (UNIHUB_PG_HOST and so on).
type Config struct {
	v *viper.Viper

	HTTP   HTTPConfig
	PG     PGConfig
	Redis  RedisConfig
	NSQ    NSQConfig
	SMTP   SMTPConfig
	Auth   AuthConfig
	Logger LoggerConfig
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("UNIHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", "8080")
	v.SetDefault("pg.port", "5432")
	v.SetDefault("pg.sslmode", "disable")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("logger.debug", false)
	v.SetDefault("logger.log-to-file", false)
	v.SetDefault("logger.logs-dir", "logs")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{v: v}
	cfg.HTTP = HTTPConfig{v}
	cfg.PG = PGConfig{v}
	cfg.Redis = RedisConfig{v}
	cfg.NSQ = NSQConfig{v}
	cfg.SMTP = SMTPConfig{v}
	cfg.Auth = AuthConfig{v}
	cfg.Logger = LoggerConfig{v}
	return cfg, nil
}

type HTTPConfig struct{ v *viper.Viper }

func (c HTTPConfig) Host() string          { return c.v.GetString("http.host") }
func (c HTTPConfig) Port() string          { return c.v.GetString("http.port") }
func (c HTTPConfig) Addr() string          { return c.Host() + ":" + c.Port() }
func (c HTTPConfig) PublicBaseURL() string { return c.v.GetString("http.public-base-url") }

type PGConfig struct{ v *viper.Viper }

func (c PGConfig) Host() string     { return c.v.GetString("pg.host") }
func (c PGConfig) Port() string     { return c.v.GetString("pg.port") }
func (c PGConfig) User() string     { return c.v.GetString("pg.user") }
func (c PGConfig) Password() string { return c.v.GetString("pg.password") }
func (c PGConfig) Database() string { return c.v.GetString("pg.database") }
func (c PGConfig) SSLMode() string  { return c.v.GetString("pg.sslmode") }

func (c PGConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host(), c.Port(), c.User(), c.Password(), c.Database(), c.SSLMode())
}

type RedisConfig struct{ v *viper.Viper }

func (c RedisConfig) Host() string     { return c.v.GetString("redis.host") }
func (c RedisConfig) Port() string     { return c.v.GetString("redis.port") }
func (c RedisConfig) Password() string { return c.v.GetString("redis.password") }

type NSQConfig struct{ v *viper.Viper }

func (c NSQConfig) Enabled() bool    { return c.v.GetBool("nsq.enabled") }
func (c NSQConfig) NSQDAddr() string { return c.v.GetString("nsq.nsqd-addr") }

type SMTPConfig struct{ v *viper.Viper }

func (c SMTPConfig) Enabled() bool    { return c.v.GetBool("smtp.enabled") }
func (c SMTPConfig) Host() string     { return c.v.GetString("smtp.host") }
func (c SMTPConfig) Port() int        { return c.v.GetInt("smtp.port") }
func (c SMTPConfig) Login() string    { return c.v.GetString("smtp.login") }
func (c SMTPConfig) Password() string { return c.v.GetString("smtp.password") }
func (c SMTPConfig) From() string     { return c.v.GetString("smtp.from") }

type AuthConfig struct{ v *viper.Viper }

func (c AuthConfig) JWTSecret() string { return c.v.GetString("auth.jwt-secret") }

type LoggerConfig struct{ v *viper.Viper }

func (c LoggerConfig) Debug() bool          { return c.v.GetBool("logger.debug") }
func (c LoggerConfig) TimeLocation() string { return c.v.GetString("logger.time-location") }
func (c LoggerConfig) LogToFile() bool      { return c.v.GetBool("logger.log-to-file") }
func (c LoggerConfig) LogsDir() string      { return c.v.GetString("logger.logs-dir") }
