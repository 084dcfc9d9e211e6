package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	DSN            string                `yaml:"dsn"` // MySQL DSN
	RedisURL       string                `yaml:"redis_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Env            string                `yaml:"env"` // "development" | "production"
	Paths          RuntimePathsConfig    `yaml:"paths"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	JWTSecret      string                `yaml:"jwt_secret"`
	RateLimit      RateLimitConfig       `yaml:"rate_limit"`
}

type DatabaseRuntimeConfig struct {
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       int               `yaml:"db"`
	TLS      bool              `yaml:"tls"`
	Scheme   string            `yaml:"scheme"`
	Params   map[string]string `yaml:"params"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

// RateLimitConfig bounds anonymous requests per IP per second.
type RateLimitConfig struct {
	Enable            bool `yaml:"enable"`
	RequestsPerSecond int  `yaml:"requests_per_second"`
}

type rawAppConfig struct {
	Port               int                `yaml:"port"`
	DSN                string             `yaml:"dsn"`
	DatabaseURL        string             `yaml:"database_url"`
	RedisURL           string             `yaml:"redis_url"`
	Database           rawDatabaseConfig  `yaml:"database"`
	Redis              rawRedisConfig     `yaml:"redis"`
	DBHost             string             `yaml:"db_host"`
	DBPort             int                `yaml:"db_port"`
	DBUser             string             `yaml:"db_user"`
	DBPassword         string             `yaml:"db_password"`
	DBName             string             `yaml:"db_name"`
	RedisHost          string             `yaml:"redis_host"`
	RedisPort          int                `yaml:"redis_port"`
	RedisPassword      string             `yaml:"redis_password"`
	RedisDB            *int               `yaml:"redis_db"`
	Env                string             `yaml:"env"`
	GoEnv              string             `yaml:"go_env"`
	Paths              rawPathsConfig     `yaml:"paths"`
	LogDir             string             `yaml:"log_dir"`
	LogsDir            string             `yaml:"logs_dir"`
	AllowedOrigins     []string           `yaml:"allowed_origins"`
	CORSAllowedOrigins []string           `yaml:"cors_allowed_origins"`
	JWTSecret          string             `yaml:"jwt_secret"`
	JWTSecretLegacy    string             `yaml:"jwtsecret"`
	RateLimit          rawRateLimitConfig `yaml:"rate_limit"`
}

type rawDatabaseConfig struct {
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime *bool             `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type rawRedisConfig struct {
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       *int              `yaml:"db"`
	TLS      *bool             `yaml:"tls"`
	Scheme   string            `yaml:"scheme"`
	Params   map[string]string `yaml:"params"`
}

type rawPathsConfig struct {
	Logs string `yaml:"logs"`
}

type rawRateLimitConfig struct {
	Enable            *bool `yaml:"enable"`
	RequestsPerSecond int   `yaml:"requests_per_second"`
}
