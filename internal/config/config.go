package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig carries every statutory tunable used by the salary
// calculation. These values change with legislation, so none of them
// may be hard-coded in the engine; the defaults reflect the rates in
// force when this service was written.
type PayrollConfig struct {
	// Divisor converting a monthly base salary to an hourly rate.
	HourlyRateDivisor decimal.Decimal

	// Statutory overtime multipliers: first two hours vs. beyond.
	Overtime1Multiplier decimal.Decimal
	Overtime2Multiplier decimal.Decimal

	// Monthly withholding tax for residents.
	WithholdingTaxThreshold decimal.Decimal
	WithholdingTaxRate      decimal.Decimal

	// Second-generation NHI supplement premium.
	NHISupplementThreshold decimal.Decimal
	NHISupplementRate      decimal.Decimal

	// Non-resident foreigner brackets. The low/high split sits at
	// NHISupplementThreshold * ForeignerThresholdMultiplier.
	ForeignerThresholdMultiplier decimal.Decimal
	ForeignerLowIncomeTaxRate    decimal.Decimal
	ForeignerHighIncomeTaxRate   decimal.Decimal

	// Days of presence before a foreigner is taxed as a resident.
	ResidencyDays int

	// Mandatory employer pension contribution on base salary.
	PensionRate decimal.Decimal

	// Cap on dependents counted for the health insurance multiplier.
	MaxInsuredDependents int
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	payroll, err := loadPayroll()
	if err != nil {
		return nil, err
	}
	config.Payroll = payroll

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayroll() (PayrollConfig, error) {
	p := PayrollConfig{}

	fields := []struct {
		dst      *decimal.Decimal
		key      string
		fallback string
	}{
		{&p.HourlyRateDivisor, "PAYROLL_HOURLY_RATE_DIVISOR", "240"},
		{&p.Overtime1Multiplier, "PAYROLL_OVERTIME1_MULTIPLIER", "1.34"},
		{&p.Overtime2Multiplier, "PAYROLL_OVERTIME2_MULTIPLIER", "1.67"},
		{&p.WithholdingTaxThreshold, "PAYROLL_WITHHOLDING_TAX_THRESHOLD", "88501"},
		{&p.WithholdingTaxRate, "PAYROLL_WITHHOLDING_TAX_RATE", "0.05"},
		{&p.NHISupplementThreshold, "PAYROLL_NHI_SUPPLEMENT_THRESHOLD", "28590"},
		{&p.NHISupplementRate, "PAYROLL_NHI_SUPPLEMENT_RATE", "0.0211"},
		{&p.ForeignerThresholdMultiplier, "PAYROLL_FOREIGNER_THRESHOLD_MULTIPLIER", "1.5"},
		{&p.ForeignerLowIncomeTaxRate, "PAYROLL_FOREIGNER_LOW_INCOME_TAX_RATE", "0.06"},
		{&p.ForeignerHighIncomeTaxRate, "PAYROLL_FOREIGNER_HIGH_INCOME_TAX_RATE", "0.18"},
		{&p.PensionRate, "PAYROLL_PENSION_RATE", "0.06"},
	}
	for _, f := range fields {
		value, err := decimal.NewFromString(getEnv(f.key, f.fallback))
		if err != nil {
			return PayrollConfig{}, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = value
	}

	residencyDays, err := strconv.Atoi(getEnv("PAYROLL_RESIDENCY_DAYS", "183"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_RESIDENCY_DAYS: %w", err)
	}
	p.ResidencyDays = residencyDays

	maxDependents, err := strconv.Atoi(getEnv("PAYROLL_MAX_INSURED_DEPENDENTS", "3"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_MAX_INSURED_DEPENDENTS: %w", err)
	}
	p.MaxInsuredDependents = maxDependents

	return p, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if !c.Payroll.HourlyRateDivisor.IsPositive() {
		return fmt.Errorf("PAYROLL_HOURLY_RATE_DIVISOR must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
