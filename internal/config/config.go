package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
)

const (
	DefaultBaseURL  = "https://v3.football.api-sports.io"
	DefaultLeagueID = 6
	DefaultSeason   = 2025
	DefaultDataDir  = "data/processed"
	DefaultLogFile  = "extraction.log"
)

// ErrMissingAPIKey is returned by Validate when API_FOOTBALL_KEY is unset or blank.
var ErrMissingAPIKey = crerr.New("API_FOOTBALL_KEY not found in .env file or environment")

var configValidator = validator.New()

// Config stores runtime configuration for one extraction run.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level
	LogFile        string

	APIKey            string `validate:"required"`
	BaseURL           string
	LeagueID          int
	Season            int
	DataDir           string
	HTTPTimeout       time.Duration `validate:"gt=0"`
	MaxRetries        int           `validate:"gte=1"`
	RateLimitCooldown time.Duration `validate:"gte=0"`
	TimeoutBackoff    time.Duration `validate:"gte=0"`
	StageDelay        time.Duration `validate:"gte=0"`
	TopScorersLimit   int           `validate:"gt=0"`

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads .env (when present) and the process environment. It only
// fails on values that cannot be parsed; call Validate before using the
// result to talk to the provider.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	leagueID, err := getEnvAsInt("API_FOOTBALL_LEAGUE_ID", DefaultLeagueID)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_LEAGUE_ID: %w", err)
	}
	season, err := getEnvAsInt("API_FOOTBALL_SEASON", DefaultSeason)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_SEASON: %w", err)
	}
	httpTimeout, err := time.ParseDuration(getEnv("API_FOOTBALL_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_TIMEOUT: %w", err)
	}
	maxRetries, err := getEnvAsInt("API_FOOTBALL_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_MAX_RETRIES: %w", err)
	}
	rateLimitCooldown, err := time.ParseDuration(getEnv("API_FOOTBALL_RATE_LIMIT_COOLDOWN", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_RATE_LIMIT_COOLDOWN: %w", err)
	}
	timeoutBackoff, err := time.ParseDuration(getEnv("API_FOOTBALL_TIMEOUT_BACKOFF", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_TIMEOUT_BACKOFF: %w", err)
	}
	stageDelay, err := time.ParseDuration(getEnv("EXTRACT_STAGE_DELAY", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EXTRACT_STAGE_DELAY: %w", err)
	}
	topScorersLimit, err := getEnvAsInt("EXTRACT_TOP_SCORERS_LIMIT", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse EXTRACT_TOP_SCORERS_LIMIT: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "afcon-extractor"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFile:                    LogFileFromEnv(),
		APIKey:                     strings.TrimSpace(os.Getenv("API_FOOTBALL_KEY")),
		BaseURL:                    strings.TrimRight(strings.TrimSpace(getEnv("API_FOOTBALL_BASE_URL", DefaultBaseURL)), "/"),
		LeagueID:                   leagueID,
		Season:                     season,
		DataDir:                    strings.TrimSpace(getEnv("EXTRACT_DATA_DIR", DefaultDataDir)),
		HTTPTimeout:                httpTimeout,
		MaxRetries:                 maxRetries,
		RateLimitCooldown:          rateLimitCooldown,
		TimeoutBackoff:             timeoutBackoff,
		StageDelay:                 stageDelay,
		TopScorersLimit:            topScorersLimit,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	return cfg, nil
}

// Validate reports ErrMissingAPIKey before any other problem so callers can
// fail fast on the one value the run cannot do without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if err := configValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return crerr.Newf("invalid config field %s: failed %q (value=%v)", first.StructField(), first.Tag(), first.Value())
		}
		return crerr.Wrap(err, "validate config")
	}
	return nil
}

// EnsureDataDir creates the output directory if it does not exist yet.
func (c Config) EnsureDataDir() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return crerr.New("data directory is empty")
	}
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return crerr.Wrapf(err, "create data directory %q", c.DataDir)
	}
	return nil
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

// LogFileFromEnv resolves the run log path without loading the rest of the
// configuration, so a failed Load can still be recorded.
func LogFileFromEnv() string {
	return strings.TrimSpace(getEnv("EXTRACT_LOG_FILE", DefaultLogFile))
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
