package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  int64
	}{
		{name: "whole number", price: 10, want: 1000},
		{name: "two decimals", price: 19.99, want: 1999},
		{name: "float noise below", price: 0.29, want: 29},
		{name: "float noise above", price: 1.15, want: 115},
		{name: "half rounds away from zero", price: 0.125, want: 13},
		{name: "half of a cent in binary noise", price: 10.005, want: 1001},
		{name: "below half rounds down", price: 4.994, want: 499},
		{name: "zero", price: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinorUnits(tt.price)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMinorUnits_Invalid(t *testing.T) {
	for _, price := range []float64{-1, math.NaN(), math.Inf(1), math.MaxFloat64} {
		_, err := ToMinorUnits(price)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	}
}
