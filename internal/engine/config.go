package engine

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Configured market parameters. The defaults match the exchange's current
// policy; deployments override them via a yaml parameter file.
const (
	// DefaultRiskFreeRate is the annualized risk-free rate used in
	// Black-Scholes discounting.
	DefaultRiskFreeRate = 0.05

	// DefaultSpreadMultiplier is applied to the theoretical price to cover
	// the market maker's spread.
	DefaultSpreadMultiplier = 1.10

	// DefaultMinPremiumRatio floors the quoted premium at this fraction of
	// spot, so deep-OTM contracts never quote at zero.
	DefaultMinPremiumRatio = 0.005

	// DefaultPlatformFeeRate is charged on the order subtotal.
	DefaultPlatformFeeRate = 0.03

	// minTimeToExpiryYears floors T so the d1/d2 denominator never
	// degenerates for contracts at the edge of expiry.
	minTimeToExpiryYears = 0.01

	// atmBandPercent is the |(K-S)/S| band, in percent, classified as ATM.
	atmBandPercent = 2.0
)

type PricingConfig struct {
	RiskFreeRate     decimal.Decimal
	SpreadMultiplier decimal.Decimal
	MinPremiumRatio  decimal.Decimal
	PlatformFeeRate  decimal.Decimal
}

func NewPricingConfig() *PricingConfig {
	return &PricingConfig{
		RiskFreeRate:     decimal.NewFromFloat(DefaultRiskFreeRate),
		SpreadMultiplier: decimal.NewFromFloat(DefaultSpreadMultiplier),
		MinPremiumRatio:  decimal.NewFromFloat(DefaultMinPremiumRatio),
		PlatformFeeRate:  decimal.NewFromFloat(DefaultPlatformFeeRate),
	}
}

// LoadPricingConfig reads overrides from a yaml file on top of the defaults.
// Zero-valued fields in the file keep their defaults.
func LoadPricingConfig(path string) (*PricingConfig, error) {
	cfg := NewPricingConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing config: %w", err)
	}
	var overrides struct {
		RiskFreeRate     float64 `yaml:"riskFreeRate"`
		SpreadMultiplier float64 `yaml:"spreadMultiplier"`
		MinPremiumRatio  float64 `yaml:"minPremiumRatio"`
		PlatformFeeRate  float64 `yaml:"platformFeeRate"`
	}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse pricing config: %w", err)
	}
	if overrides.RiskFreeRate > 0 {
		cfg.RiskFreeRate = decimal.NewFromFloat(overrides.RiskFreeRate)
	}
	if overrides.SpreadMultiplier > 0 {
		cfg.SpreadMultiplier = decimal.NewFromFloat(overrides.SpreadMultiplier)
	}
	if overrides.MinPremiumRatio > 0 {
		cfg.MinPremiumRatio = decimal.NewFromFloat(overrides.MinPremiumRatio)
	}
	if overrides.PlatformFeeRate > 0 {
		cfg.PlatformFeeRate = decimal.NewFromFloat(overrides.PlatformFeeRate)
	}
	return cfg, nil
}

type ReportingConfig struct {
	printPositions bool
	reportName     string
	filePath       string
}

func NewReportingConfig(printPositions bool, reportName string, filePath string) *ReportingConfig {
	return &ReportingConfig{
		printPositions: printPositions,
		reportName:     reportName,
		filePath:       filePath,
	}
}
