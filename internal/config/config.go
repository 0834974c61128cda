package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"loanhub-backend/internal/domain/eligibility"
)

type Config struct {
	AppPort string

	DBDriver    string
	MySQLHost   string
	MySQLPort   string
	MySQLDB     string
	MySQLUser   string
	MySQLPass   string
	PostgresDSN string
	SQLitePath  string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret   string
	JWTIssuer   string
	JWTTTLHours int
	BcryptCost  int

	UploadDir      string
	MaxUploadBytes int64

	LoginMaxAttempts   int
	LoginWindowSeconds int

	LogLevel  string
	LogFormat string

	SeedAdminEmail    string
	SeedAdminPassword string

	Eligibility eligibility.Policy
}

// LoadDotEnv reads .env style files into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getdecimal(k string, d decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(k); v != "" {
		if n, err := decimal.NewFromString(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort: getenv("APP_PORT", "8080"),

		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "mysql")),
		MySQLHost:   getenv("MYSQL_HOST", "mysql"),
		MySQLPort:   getenv("MYSQL_PORT", "3306"),
		MySQLDB:     getenv("MYSQL_DB", "loanhub"),
		MySQLUser:   getenv("MYSQL_USER", "loanhub"),
		MySQLPass:   getenv("MYSQL_PASS", "loanhub"),
		PostgresDSN: getenv("POSTGRES_DSN", ""),
		SQLitePath:  getenv("SQLITE_PATH", "loanhub.db"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret:   getenv("JWT_SECRET", ""),
		JWTIssuer:   getenv("JWT_ISSUER", "loanhub"),
		JWTTTLHours: getint("JWT_TTL_HOURS", 24),
		BcryptCost:  getint("BCRYPT_COST", 12),

		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(getint("MAX_UPLOAD_BYTES", 5<<20)),

		LoginMaxAttempts:   getint("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindowSeconds: getint("LOGIN_WINDOW_SECONDS", 900),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),

		SeedAdminEmail:    getenv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getenv("SEED_ADMIN_PASSWORD", ""),
	}

	p := eligibility.DefaultPolicy()
	p.MinAge = getint("ELIGIBILITY_MIN_AGE", p.MinAge)
	p.MinMonthlyIncome = getdecimal("ELIGIBILITY_MIN_MONTHLY_INCOME", p.MinMonthlyIncome)
	p.StudentMinMonthlyIncome = getdecimal("ELIGIBILITY_STUDENT_MIN_MONTHLY_INCOME", p.StudentMinMonthlyIncome)
	p.MaxDebtToIncomePct = getdecimal("ELIGIBILITY_MAX_DTI_PCT", p.MaxDebtToIncomePct)
	p.MaxActiveLoans = int64(getint("ELIGIBILITY_MAX_ACTIVE_LOANS", int(p.MaxActiveLoans)))
	p.EMIBudgetShare = getdecimal("ELIGIBILITY_EMI_BUDGET_SHARE", p.EMIBudgetShare)
	c.Eligibility = p

	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (mysql, postgres, sqlite)", c.DBDriver)
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWTTTLHours <= 0 {
		return errors.New("JWT_TTL_HOURS must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if (c.SeedAdminEmail == "") != (c.SeedAdminPassword == "") {
		return errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set together")
	}
	if c.Eligibility.MinAge <= 0 || !c.Eligibility.MaxDebtToIncomePct.IsPositive() || !c.Eligibility.EMIBudgetShare.IsPositive() {
		return errors.New("invalid ELIGIBILITY_* policy override")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return c.PostgresDSN
	case "sqlite":
		return c.SQLitePath
	}
	return c.MySQLDSN()
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }
func (c *Config) JWTTTL() time.Duration         { return time.Duration(c.JWTTTLHours) * time.Hour }
func (c *Config) LoginWindow() time.Duration    { return time.Duration(c.LoginWindowSeconds) * time.Second }
