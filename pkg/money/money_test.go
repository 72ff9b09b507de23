package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPlain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"950", "950"},
		{"1000", "1.000"},
		{"12500", "12.500"},
		{"90000", "90.000"},
		{"1234567", "1.234.567"},
		{"1234567.49", "1.234.567"},
		{"1234567.5", "1.234.568"},
		{"-95000", "-95.000"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, FormatPlain(d), "input %s", tc.in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$ 95.000", Format(decimal.NewFromInt(95000)))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "10%", Percent(decimal.NewFromInt(10)))
	assert.Equal(t, "12.5%", Percent(decimal.RequireFromString("12.50")))
}
