package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Users are the static operator accounts allowed to log in.
	Users []domain.User

	VoidPolicy             domain.VoidPolicy
	RestrictedHistoryLimit int
	ShopLocation           *time.Location
	LoginRateLimit         string // ulule/limiter format, e.g. "5-M"
	CORSAllowedOrigins     []string
	MigrationsPath         string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "shop-ledger")
	v.SetDefault("AUTH_USERS", "")
	v.SetDefault("LEDGER_VOID_POLICY", string(domain.VoidPolicyFull))
	v.SetDefault("RESTRICTED_HISTORY_LIMIT", 10)
	v.SetDefault("SHOP_TIMEZONE", "UTC")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		LoginRateLimit: v.GetString("LOGIN_RATE_LIMIT"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.Users, err = ParseAuthUsers(v.GetString("AUTH_USERS"))
	if err != nil {
		return nil, err
	}
	if len(cfg.Users) == 0 {
		log.Println("Warning: AUTH_USERS is empty. Nobody will be able to log in.")
	}

	cfg.VoidPolicy = domain.VoidPolicy(strings.ToLower(strings.TrimSpace(v.GetString("LEDGER_VOID_POLICY"))))
	if !cfg.VoidPolicy.IsValid() {
		return nil, fmt.Errorf("invalid LEDGER_VOID_POLICY %q: must be %q or %q", cfg.VoidPolicy, domain.VoidPolicyFull, domain.VoidPolicyForensic)
	}

	cfg.RestrictedHistoryLimit = v.GetInt("RESTRICTED_HISTORY_LIMIT")
	if cfg.RestrictedHistoryLimit <= 0 {
		cfg.RestrictedHistoryLimit = 10
	}

	cfg.ShopLocation, err = time.LoadLocation(v.GetString("SHOP_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_TIMEZONE: %w", err)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// ParseAuthUsers parses a comma separated list of username:ROLE:bcrypt-hash entries.
// Bcrypt hashes contain '$' but never ':' so splitting on the first two colons is safe.
func ParseAuthUsers(raw string) ([]domain.User, error) {
	var users []domain.User
	seen := make(map[string]bool)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			return nil, fmt.Errorf("invalid AUTH_USERS entry %q: expected username:ROLE:hash", entry)
		}
		role := domain.ParseRole(parts[1])
		switch role {
		case domain.RoleEmployee, domain.RoleOwner, domain.RoleDev:
		default:
			return nil, fmt.Errorf("invalid role %q for user %s", parts[1], parts[0])
		}
		if seen[parts[0]] {
			return nil, fmt.Errorf("duplicate AUTH_USERS entry for %s", parts[0])
		}
		seen[parts[0]] = true
		users = append(users, domain.User{Username: parts[0], Role: role, PasswordHash: parts[2]})
	}
	return users, nil
}
