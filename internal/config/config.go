package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
	"github.com/riskibarqy/fixture-gateway/internal/platform/resilience"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort         = 8080
	defaultBaseURL      = "https://api.sportmonks.com/v3/"
	defaultSettingsFile = "AppSettings.json"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                 string
	ServiceName            string
	ServiceVersion         string
	HTTPHost               string
	Port                   int
	ReadTimeout            time.Duration `validate:"gt=0"`
	WriteTimeout           time.Duration `validate:"gt=0"`
	IdleTimeout            time.Duration `validate:"gt=0"`
	KeepAlive              bool
	WorkerPoolSize         int           `validate:"min=1"`
	ShutdownTimeout        time.Duration `validate:"gt=0"`
	PprofEnabled           bool
	PprofAddr              string `validate:"required_if=PprofEnabled true"`
	UptraceEnabled         bool
	UptraceDSN             string `validate:"required_if=UptraceEnabled true"`
	PyroscopeEnabled       bool
	PyroscopeServerAddress string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration `validate:"gt=0"`
	SportMonksBaseURL      string        `validate:"required,url"`
	SportMonksToken        string
	SportMonksTimeout      time.Duration `validate:"gt=0"`
	SportMonksCircuit      resilience.CircuitBreakerConfig
	LogLevel               logging.Level
	LogFormat              string `validate:"oneof=json console"`
}

// fileSettings mirrors the keys of the AppSettings.json file.
type fileSettings struct {
	APIToken string `yaml:"ApiToken"`
	Port     string `yaml:"Port"`
	BaseURL  string `yaml:"BaseUrl"`
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	settings, err := loadSettingsFile(getEnv("APP_SETTINGS_FILE", defaultSettingsFile))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	idleTimeout, err := time.ParseDuration(getEnv("APP_IDLE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_IDLE_TIMEOUT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("APP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_SHUTDOWN_TIMEOUT: %w", err)
	}
	keepAlive, err := strconv.ParseBool(getEnv("APP_KEEP_ALIVE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_KEEP_ALIVE: %w", err)
	}
	workerPoolSize, err := getEnvAsInt("APP_WORKER_POOL_SIZE", 256)
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WORKER_POOL_SIZE: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	sportMonksTimeout, err := time.ParseDuration(getEnv("SPORTMONKS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_TIMEOUT: %w", err)
	}
	sportMonksCircuitEnabled, err := strconv.ParseBool(getEnv("SPORTMONKS_CIRCUIT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_CIRCUIT_ENABLED: %w", err)
	}
	sportMonksCircuitFailureCount, err := getEnvAsInt("SPORTMONKS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	sportMonksCircuitOpenTimeout, err := time.ParseDuration(getEnv("SPORTMONKS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	sportMonksCircuitHalfOpenMaxReq, err := getEnvAsInt("SPORTMONKS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	// The token is passed through as-is; an empty one gets rejected upstream.
	token := os.Getenv("SPORTMONKS_TOKEN")
	if token == "" {
		token = settings.APIToken
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "fixture-gateway"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPHost:               strings.TrimSpace(getEnv("APP_HTTP_HOST", "localhost")),
		Port:                   parsePort(os.Getenv("APP_PORT"), settings.Port),
		ReadTimeout:            readTimeout,
		WriteTimeout:           writeTimeout,
		IdleTimeout:            idleTimeout,
		KeepAlive:              keepAlive,
		WorkerPoolSize:         workerPoolSize,
		ShutdownTimeout:        shutdownTimeout,
		PprofEnabled:           pprofEnabled,
		PprofAddr:              strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
		SportMonksBaseURL:      normalizeBaseURL(getEnv("SPORTMONKS_BASE_URL", firstNonEmpty(settings.BaseURL, defaultBaseURL))),
		SportMonksToken:        token,
		SportMonksTimeout:      sportMonksTimeout,
		SportMonksCircuit: resilience.CircuitBreakerConfig{
			Enabled:          sportMonksCircuitEnabled,
			FailureThreshold: sportMonksCircuitFailureCount,
			OpenTimeout:      sportMonksCircuitOpenTimeout,
			HalfOpenMaxReq:   sportMonksCircuitHalfOpenMaxReq,
		},
		LogLevel:  parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", "json"))),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// ListenAddr is the host:port the dispatcher binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.Port)
}

func (c Config) CountriesURL() string {
	return fmt.Sprintf("%score/countries?api_token=%s", c.SportMonksBaseURL, c.SportMonksToken)
}

func (c Config) FixturesURL(perPage, page int) string {
	return fmt.Sprintf("%sfootball/fixtures/?api_token=%s&sort=starting_at&order=desc&per_page=%d&page=%d",
		c.SportMonksBaseURL, c.SportMonksToken, perPage, page)
}

func (c Config) FixtureURL(id int64) string {
	return fmt.Sprintf("%sfootball/fixtures/%d?include=lineups.player&api_token=%s", c.SportMonksBaseURL, id, c.SportMonksToken)
}

func (c Config) PlayerURL(id int64) string {
	return fmt.Sprintf("%sfootball/players/%d?api_token=%s", c.SportMonksBaseURL, id, c.SportMonksToken)
}

func loadSettingsFile(path string) (fileSettings, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return fileSettings{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileSettings{}, nil
		}
		return fileSettings{}, fmt.Errorf("read settings file %s: %w", path, err)
	}

	// JSON is a subset of YAML, so AppSettings.json and AppSettings.yaml both decode here.
	var out fileSettings
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return fileSettings{}, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return out, nil
}

// parsePort returns the first candidate that is a valid TCP port, so a bad
// APP_PORT still falls through to the settings file before the default.
func parsePort(candidates ...string) int {
	for _, v := range candidates {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil && port > 0 && port <= 65535 {
			return port
		}
	}
	return defaultPort
}

func normalizeBaseURL(v string) string {
	value := strings.TrimSpace(v)
	if value == "" {
		value = defaultBaseURL
	}
	if !strings.HasSuffix(value, "/") {
		value += "/"
	}
	return value
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
