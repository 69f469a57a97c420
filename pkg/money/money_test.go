package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	assert.Equal(t, "10.56", Scale(decimal.RequireFromString("10.555")).String())
	assert.Equal(t, "10.55", Scale(decimal.RequireFromString("10.554")).String())
	assert.Equal(t, "0", Scale(decimal.Zero).String())
	assert.Equal(t, "-3.33", Scale(decimal.RequireFromString("-3.333")).String())
}

func TestPercent(t *testing.T) {
	base := decimal.RequireFromString("200")

	assert.Equal(t, "20", Percent(base, decimal.RequireFromString("10")).String())
	assert.Equal(t, "0", Percent(base, decimal.Zero).String())

	// Percentual quebrado é arredondado em duas casas
	assert.Equal(t, "66.67", Percent(decimal.RequireFromString("100"), decimal.RequireFromString("66.666")).String())
}
