package config

import "strings"

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func normalizeDatabaseConfig(cfg DatabaseRuntimeConfig) DatabaseRuntimeConfig {
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.Host = orDefault(cfg.Host, defaultDBHost)
	cfg.User = orDefault(cfg.User, defaultDBUser)
	cfg.Password = orDefault(cfg.Password, defaultDBPassword)
	cfg.Name = orDefault(cfg.Name, defaultDBName)
	cfg.Charset = orDefault(cfg.Charset, defaultDBCharset)
	cfg.Loc = orDefault(cfg.Loc, defaultDBLoc)
	if cfg.Port == 0 {
		cfg.Port = defaultDBPort
	}
	cfg.Params = copyStringMap(cfg.Params)
	return cfg
}

func normalizeRedisConfig(cfg RedisRuntimeConfig) RedisRuntimeConfig {
	cfg.URL = normalizeRedisRawURL(cfg.URL)
	cfg.Host = orDefault(cfg.Host, defaultRedisHost)
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.Password = strings.TrimSpace(cfg.Password)
	cfg.Scheme = strings.ToLower(strings.TrimSpace(cfg.Scheme))
	if cfg.Scheme == "" {
		cfg.Scheme = "redis"
		if cfg.TLS {
			cfg.Scheme = "rediss"
		}
	}
	if cfg.Port == 0 {
		cfg.Port = defaultRedisPort
	}
	cfg.Params = copyStringMap(cfg.Params)
	return cfg
}

// normalizeRedisRawURL accepts "host:port/db" shorthand.
func normalizeRedisRawURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "redis://") || strings.HasPrefix(raw, "rediss://") {
		return raw
	}
	return "redis://" + raw
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	return strings.ToLower(orDefault(env, defaultEnv))
}

// copyStringMap drops blank keys and values.
func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}
