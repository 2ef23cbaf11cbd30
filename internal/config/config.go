package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// AppConfig holds all configuration for the server.
// The values are loaded from environment variables.
type AppConfig struct {
	// Source settings
	SheetURL     string
	Sheet        domain.SheetConfig
	CacheTTL     time.Duration
	FetchTimeout time.Duration

	// Presentation
	Currency string

	// Session settings
	DashboardPassword  string
	SessionSecret      []byte
	SessionTTL         time.Duration
	LoginRatePerMinute int

	// Listeners
	GRPCPort string
	HTTPPort string

	// Refresh log, disabled when RefreshLogDriver is empty
	RefreshLogDriver string
	RefreshLogDSN    string

	LogLevel string
}

const minSessionSecretLength = 32

// LoadEnvFile loads a .env file from the current or the parent directory, if any.
// Variables already set in the environment win.
func LoadEnvFile() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables.")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
		return
	}
	log.Println(".env file loaded successfully.")
}

// LoadConfig loads the server configuration from the environment.
// SHEET_URL, DASHBOARD_PASSWORD and SESSION_SECRET are required.
func LoadConfig() (*AppConfig, error) {
	sheet, err := LoadSheetConfig()
	if err != nil {
		return nil, err
	}

	sheetURL, err := getRequiredEnv("SHEET_URL")
	if err != nil {
		return nil, err
	}

	password, err := getRequiredEnv("DASHBOARD_PASSWORD")
	if err != nil {
		return nil, err
	}

	secret, err := getRequiredEnv("SESSION_SECRET")
	if err != nil {
		return nil, err
	}
	if len(secret) < minSessionSecretLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLength)
	}

	cfg := &AppConfig{
		SheetURL:     sheetURL,
		Sheet:        sheet,
		CacheTTL:     getEnvAsDuration("CACHE_TTL", 5*time.Second),
		FetchTimeout: getEnvAsDuration("FETCH_TIMEOUT", 20*time.Second),

		Currency: strings.ToUpper(getEnv("CURRENCY", "KRW")),

		DashboardPassword:  password,
		SessionSecret:      []byte(secret),
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		LoginRatePerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),

		GRPCPort: getEnv("GRPC_PORT", "8080"),
		HTTPPort: getEnv("HTTP_PORT", "8081"),

		RefreshLogDriver: strings.ToLower(getEnv("REFRESH_LOG_DRIVER", "")),
		RefreshLogDSN:    getEnv("REFRESH_LOG_DSN", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.RefreshLogDriver {
	case "", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid REFRESH_LOG_DRIVER %q: must be postgres or sqlite", cfg.RefreshLogDriver)
	}
	if cfg.RefreshLogDriver != "" && cfg.RefreshLogDSN == "" {
		return nil, errors.New("REFRESH_LOG_DSN is required when REFRESH_LOG_DRIVER is set")
	}

	return cfg, nil
}

// LoadSheetConfig reads the sheet layout and derivation settings.
// Unset variables keep the values of domain.DefaultSheetConfig.
func LoadSheetConfig() (domain.SheetConfig, error) {
	cfg := domain.DefaultSheetConfig()

	cfg.DateMarker = getEnv("DATE_MARKER", cfg.DateMarker)
	cfg.PrincipalMarker = getEnv("PRINCIPAL_MARKER", cfg.PrincipalMarker)
	cfg.PrincipalSuffix = getEnv("PRINCIPAL_SUFFIX", cfg.PrincipalSuffix)
	cfg.PlaceholderColumn = getEnv("PLACEHOLDER_COLUMN", cfg.PlaceholderColumn)
	cfg.ThousandsSeparators = getEnv("THOUSANDS_SEPARATORS", cfg.ThousandsSeparators)
	cfg.TotalColumn = getEnv("TOTAL_COLUMN", cfg.TotalColumn)

	if v, ok := os.LookupEnv("REMARK_COLUMNS"); ok {
		cfg.RemarkColumns = splitList(v, ",")
	}
	if v, ok := os.LookupEnv("ACCOUNT_COLUMNS"); ok {
		cfg.AccountColumns = splitList(v, ",")
	}
	if v, ok := os.LookupEnv("DATE_LAYOUTS"); ok {
		cfg.DateLayouts = splitList(v, ",")
	}

	if v, ok := os.LookupEnv("LATEST_ROW"); ok {
		convention, err := domain.ParseConvention(v)
		if err != nil {
			return domain.SheetConfig{}, err
		}
		cfg.Latest = convention
	}

	if v, ok := os.LookupEnv("BUCKETS"); ok {
		buckets, err := ParseBuckets(v)
		if err != nil {
			return domain.SheetConfig{}, err
		}
		cfg.Buckets = buckets
	}

	if v, ok := os.LookupEnv("TARGET_AMOUNT"); ok {
		target, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), ",", ""))
		if err != nil {
			return domain.SheetConfig{}, fmt.Errorf("invalid TARGET_AMOUNT %q: %w", v, err)
		}
		cfg.Target = target
	}

	if err := cfg.Validate(); err != nil {
		return domain.SheetConfig{}, fmt.Errorf("invalid sheet configuration: %w", err)
	}

	return cfg, nil
}

// ParseBuckets parses ordered bucket definitions written as
// "label=col1,col2;label2=col3". An empty string yields no buckets.
func ParseBuckets(s string) ([]domain.BucketDefinition, error) {
	var buckets []domain.BucketDefinition

	for _, part := range splitList(s, ";") {
		label, columns, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("invalid bucket %q: expected label=column[,column...]", part)
		}

		bucket := domain.BucketDefinition{
			Label:   strings.TrimSpace(label),
			Columns: splitList(columns, ","),
		}
		if err := bucket.Validate(); err != nil {
			return nil, fmt.Errorf("invalid bucket %q: %w", part, err)
		}
		buckets = append(buckets, bucket)
	}

	return buckets, nil
}

// splitList splits s on sep, trims every item and drops empty ones
func splitList(s, sep string) []string {
	items := []string{}
	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getRequiredEnv retrieves an environment variable that must be set and not blank.
func getRequiredEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("required environment variable %s is not set or is empty", key)
	}
	return value, nil
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
