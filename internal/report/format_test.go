package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999999, "1000.0K"},
		{1000000, "1.0M"},
		{2500000, "2.5M"},
		{-1500, "-1.5K"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCompact(tt.in))
		})
	}
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", FormatThousands(0))
	assert.Equal(t, "999", FormatThousands(999))
	assert.Equal(t, "1.234", FormatThousands(1234))
	assert.Equal(t, "1.234.567", FormatThousands(1234567))
	assert.Equal(t, "-12.345", FormatThousands(-12345))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "3.00%", FormatPercent(3))
	assert.Equal(t, "12.35%", FormatPercent(12.349))
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+12.5%", FormatChange(12.5))
	assert.Equal(t, "-3.0%", FormatChange(-3))
	assert.Equal(t, "0.0%", FormatChange(0))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "12.500,00 TRY", FormatMoney(12500, "TRY"))
	assert.Equal(t, "1.250,50 TRY", FormatMoney(1250.5, ""))
	assert.Equal(t, "0,99 USD", FormatMoney(0.99, "USD"))
	assert.Equal(t, "-500,00 TRY", FormatMoney(-500, "TRY"))
}
