package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"salarydecoder/internal/domain/salary"
)

type Config struct {
	Addr               string        `env:"APP_ADDR" envDefault:":8080"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	JWTSecret          string        `env:"JWT_SECRET"`
	Environment        string        `env:"APP_ENV" envDefault:"development"`
	RunMigrations      bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`
	TokenTTL           time.Duration `env:"TOKEN_TTL" envDefault:"8h"`

	AIGatewayURL    string        `env:"AI_GATEWAY_URL" envDefault:"https://ai.gateway.lovable.dev/v1"`
	AIGatewayAPIKey string        `env:"AI_GATEWAY_API_KEY"`
	AIModel         string        `env:"AI_MODEL" envDefault:"google/gemini-3-flash-preview"`
	AITimeout       time.Duration `env:"AI_TIMEOUT" envDefault:"45s"`
	ChatMaxMessages int           `env:"CHAT_MAX_MESSAGES" envDefault:"40"`

	PFRate                 float64 `env:"SALARY_PF_RATE" envDefault:"0.12"`
	PFTolerance            float64 `env:"SALARY_PF_TOLERANCE" envDefault:"100"`
	PFRatioMin             float64 `env:"SALARY_PF_RATIO_MIN" envDefault:"0.8"`
	PFRatioMax             float64 `env:"SALARY_PF_RATIO_MAX" envDefault:"1.2"`
	ProfessionalTaxCeiling float64 `env:"SALARY_PT_CEILING" envDefault:"2500"`
	HRAPercentCeiling      float64 `env:"SALARY_HRA_PERCENT_CEILING" envDefault:"60"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) SalaryRules() salary.Rules {
	return salary.Rules{
		PFRate:                 c.PFRate,
		PFTolerance:            c.PFTolerance,
		PFRatioMin:             c.PFRatioMin,
		PFRatioMax:             c.PFRatioMax,
		ProfessionalTaxCeiling: c.ProfessionalTaxCeiling,
		HRAPercentCeiling:      c.HRAPercentCeiling,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.ChatMaxMessages <= 0 {
		return fmt.Errorf("CHAT_MAX_MESSAGES must be positive")
	}
	if c.PFRate <= 0 || c.PFRate >= 1 {
		return fmt.Errorf("SALARY_PF_RATE must be between 0 and 1")
	}
	if c.PFTolerance < 0 {
		return fmt.Errorf("SALARY_PF_TOLERANCE must not be negative")
	}
	if c.PFRatioMin <= 0 || c.PFRatioMin > c.PFRatioMax {
		return fmt.Errorf("SALARY_PF_RATIO_MIN must be positive and not above SALARY_PF_RATIO_MAX")
	}
	if c.ProfessionalTaxCeiling < 0 {
		return fmt.Errorf("SALARY_PT_CEILING must not be negative")
	}
	if c.HRAPercentCeiling <= 0 {
		return fmt.Errorf("SALARY_HRA_PERCENT_CEILING must be positive")
	}
	return nil
}
