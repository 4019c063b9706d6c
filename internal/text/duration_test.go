package text

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		token string
		wpm   float64
		want  float64
	}{
		{"word.", 300, 400},
		{"word,", 300, 300},
		{"word", 300, 200},
		{"word.\"", 300, 400},
		{"(end).", 300, 400},
		{"\"word,\"", 300, 300},
		{"why?", 300, 400},
		{"wow!", 300, 400},
		{"note:", 300, 300},
		{"list;", 300, 300},
		{"pause—", 300, 260},
		{"well-", 300, 240},
		{"Hello,", 600, 150},
		{"world.", 600, 200},
		{"a", 600, 100},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Duration(tt.token, tt.wpm), 1e-9, "Duration(%q, %v)", tt.token, tt.wpm)
	}
}

func TestMultiplier_OnlyClosers(t *testing.T) {
	assert.Equal(t, 1.0, Multiplier("\")"))
	assert.Equal(t, 1.0, Multiplier(""))
	assert.Equal(t, 2.0, Multiplier("end.”"))
	assert.Equal(t, 1.5, Multiplier("so,’"))
}

func TestDuration_ClampsDegenerateRates(t *testing.T) {
	for _, wpm := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		d := Duration("word", wpm)
		assert.Equal(t, 60000.0, d, "wpm=%v", wpm)
	}
}

func TestMillis(t *testing.T) {
	assert.Equal(t, 150*time.Millisecond, Millis(150))
	assert.Equal(t, 1500*time.Microsecond, Millis(1.5))
}

func TestValidateRate(t *testing.T) {
	require.NoError(t, ValidateRate(300))

	for _, wpm := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		err := ValidateRate(wpm)
		require.Error(t, err, "wpm=%v", wpm)

		var domErr *DomainError
		require.True(t, errors.As(err, &domErr))
		assert.Equal(t, "rate", domErr.Field)
	}
}
