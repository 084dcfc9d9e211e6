package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML content into a normalized AppConfig. Unknown keys are rejected.
func Parse(content []byte) (*AppConfig, error) {
	cfg := defaultAppConfig()
	raw := rawAppConfig{}
	if len(bytes.TrimSpace(content)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil {
			return nil, err
		}
	}

	applyRawAppConfig(&cfg, raw)
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d, expected 1-65535", cfg.Database.Port)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d, expected 1-65535", cfg.Redis.Port)
	}
	if cfg.Redis.DB < 0 {
		return nil, fmt.Errorf("invalid redis.db %d, expected >= 0", cfg.Redis.DB)
	}
	if cfg.RateLimit.RequestsPerSecond < 1 {
		return nil, fmt.Errorf("invalid rate_limit.requests_per_second %d, expected >= 1", cfg.RateLimit.RequestsPerSecond)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	cfg := AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		RateLimit: RateLimitConfig{
			Enable:            true,
			RequestsPerSecond: defaultRateLimit,
		},
	}
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.DSN = cfg.Database.DSNValue()
	cfg.RedisURL = cfg.Redis.URLValue()
	return cfg
}

// setString assigns the last non-blank alias to dst. Aliases are listed from
// lowest to highest precedence.
func setString(dst *string, aliases ...string) {
	for _, v := range aliases {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
}

func setInt(dst *int, aliases ...int) {
	for _, v := range aliases {
		if v != 0 {
			*dst = v
		}
	}
}

func setIntPtr(dst *int, aliases ...*int) {
	for _, v := range aliases {
		if v != nil {
			*dst = *v
		}
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	setInt(&cfg.Port, raw.Port)
	cfg.Database = applyRawDatabaseConfig(cfg.Database, raw)
	cfg.Redis = applyRawRedisConfig(cfg.Redis, raw)
	setString(&cfg.Env, raw.Env, raw.GoEnv)
	setString(&cfg.Paths.Logs, raw.Paths.Logs, raw.LogDir, raw.LogsDir)
	setString(&cfg.JWTSecret, raw.JWTSecret, raw.JWTSecretLegacy)

	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	case raw.CORSAllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.CORSAllowedOrigins)
	}

	setBool(&cfg.RateLimit.Enable, raw.RateLimit.Enable)
	setInt(&cfg.RateLimit.RequestsPerSecond, raw.RateLimit.RequestsPerSecond)

	cfg.DSN = cfg.Database.DSNValue()
	cfg.RedisURL = cfg.Redis.URLValue()
	cfg.Env = normalizeEnv(cfg.Env)
}

func applyRawDatabaseConfig(db DatabaseRuntimeConfig, raw rawAppConfig) DatabaseRuntimeConfig {
	in := raw.Database
	setString(&db.DSN, in.DSN, in.URL, raw.DSN, raw.DatabaseURL)
	setString(&db.Host, in.Host, raw.DBHost)
	setInt(&db.Port, in.Port, raw.DBPort)
	setString(&db.User, in.User, in.Username, raw.DBUser)
	setString(&db.Password, in.Password, raw.DBPassword)
	setString(&db.Name, in.Name, in.DBName, raw.DBName)
	setString(&db.Charset, in.Charset)
	setString(&db.Loc, in.Loc)
	setBool(&db.ParseTime, in.ParseTime)
	if in.Params != nil {
		db.Params = in.Params
	}
	return normalizeDatabaseConfig(db)
}

func applyRawRedisConfig(rc RedisRuntimeConfig, raw rawAppConfig) RedisRuntimeConfig {
	in := raw.Redis
	setString(&rc.URL, in.URL, raw.RedisURL)
	setString(&rc.Host, in.Host, raw.RedisHost)
	setInt(&rc.Port, in.Port, raw.RedisPort)
	setString(&rc.Username, in.Username)
	setString(&rc.Password, in.Password, raw.RedisPassword)
	setIntPtr(&rc.DB, in.DB, raw.RedisDB)
	setBool(&rc.TLS, in.TLS)
	setString(&rc.Scheme, in.Scheme)
	if in.Params != nil {
		rc.Params = in.Params
	}
	return normalizeRedisConfig(rc)
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// LogDir returns the configured log directory resolved against BaseDir,
// or "" when none is configured.
func (c *AppConfig) LogDir() string {
	if c.Paths.Logs == "" {
		return ""
	}
	return ResolvePath(c.Paths.Logs, defaultLogsSubdir)
}
