package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nbsp = "\u00a0"

func TestCurrency_SouthAfrica(t *testing.T) {
	f := Default()

	tests := []struct {
		amount string
		want   string
	}{
		{"4200", "R" + nbsp + "4" + nbsp + "200"},
		{"-100", "-R" + nbsp + "100"},
		{"0", "R" + nbsp + "0"},
		{"999", "R" + nbsp + "999"},
		{"1234567", "R" + nbsp + "1" + nbsp + "234" + nbsp + "567"},
		{"1799.5", "R" + nbsp + "1" + nbsp + "800"},
		{"1799.49", "R" + nbsp + "1" + nbsp + "799"},
		{"-0.4", "R" + nbsp + "0"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Currency(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestCurrency_UnitedStates(t *testing.T) {
	f := New(UnitedStates)

	assert.Equal(t, "$10,500", f.Currency(decimal.NewFromInt(10500)))
	assert.Equal(t, "-$350", f.Currency(decimal.NewFromInt(-350)))
}

func TestCurrency_CustomSymbol(t *testing.T) {
	f := New(SouthAfrica.WithSymbol("ZAR"))

	assert.Equal(t, "ZAR"+nbsp+"600", f.Currency(decimal.NewFromInt(600)))
}

func TestPercentAndRatio(t *testing.T) {
	f := Default()

	assert.Equal(t, "70%", f.Percent(70))
	assert.Equal(t, "107%", f.Percent(107))
	assert.Equal(t, "80%", f.Ratio(decimal.NewFromFloat(0.8)))
	assert.Equal(t, "93%", f.Ratio(decimal.RequireFromString("0.925")))
}

func TestLookupLocale(t *testing.T) {
	loc, err := LookupLocale("en-ZA")
	require.NoError(t, err)
	assert.Equal(t, "R", loc.Symbol)

	_, err = LookupLocale("xx-XX")
	assert.Error(t, err)
}
