package textutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain", input: "201.00", want: 201.00},
		{name: "thousands separator", input: "2,000.00", want: 2000.00},
		{name: "multiple separators", input: "1,234,567.89", want: 1234567.89},
		{name: "empty means not captured", input: "", want: 0},
		{name: "malformed", input: "2O0.00", wantErr: true},
		{name: "double decimal point", input: "12..00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Currency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "JOHN DOE", CleanName("  JOHN DOE "))
	assert.Equal(t, "", CleanName("   "))
	assert.Equal(t, "", CleanName(""))
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("06/05/2019 14:00:50")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, time.May, 6, 14, 0, 50, 0, time.UTC), got)

	_, err = ParseTime("2019-05-06 14:00:50")
	assert.Error(t, err)

	_, err = ParseTime("")
	assert.Error(t, err)
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2019, time.May, 6, 14, 0, 50, 0, time.UTC)
	assert.Equal(t, "06/05/2019 14:00:50", FormatTime(ts))
}
