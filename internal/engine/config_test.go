package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPricingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("riskFreeRate: 0.03\nspreadMultiplier: 1.25\n"), 0o644))

	cfg, err := LoadPricingConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.RiskFreeRate.Equal(decimal.NewFromFloat(0.03)))
	assert.True(t, cfg.SpreadMultiplier.Equal(decimal.NewFromFloat(1.25)))
	// unspecified fields keep their defaults
	assert.True(t, cfg.MinPremiumRatio.Equal(decimal.NewFromFloat(DefaultMinPremiumRatio)))
	assert.True(t, cfg.PlatformFeeRate.Equal(decimal.NewFromFloat(DefaultPlatformFeeRate)))
}

func TestLoadPricingConfigMissingFile(t *testing.T) {
	_, err := LoadPricingConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
