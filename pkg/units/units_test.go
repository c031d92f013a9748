package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

func TestConvertTabulatedPairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		qty  float64
		from string
		to   string
		want float64
	}{
		{qty: 2, from: "kg", to: "g", want: 2000},
		{qty: 500, from: "g", to: "kg", want: 0.5},
		{qty: 1.5, from: "L", to: "mL", want: 1500},
		{qty: 250, from: "mL", to: "L", want: 0.25},
		{qty: 2, from: "lb", to: "oz", want: 32},
		{qty: 8, from: "oz", to: "lb", want: 0.5},
		{qty: 7, from: "kg", to: "kg", want: 7},
		{qty: 3, from: " ml ", to: "l", want: 0.003},
	}

	conv := NewConverter(true)
	for _, tt := range tests {
		res, err := conv.Convert(tt.qty, tt.from, tt.to)
		require.NoError(t, err, "%s -> %s", tt.from, tt.to)
		assert.InDelta(t, tt.want, res.Qty, 1e-9, "%v %s -> %s", tt.qty, tt.from, tt.to)
		assert.False(t, res.Fallback)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	t.Parallel()

	conv := NewConverter(true)
	convert := func(x float64, from, to string) float64 {
		res, err := conv.Convert(x, from, to)
		require.NoError(t, err)
		return res.Qty
	}

	pairs := [][2]string{{"kg", "g"}, {"L", "mL"}, {"lb", "oz"}}
	values := []float64{0, 0.001, 1, 3.3333, 12.5, 1e6}
	for _, p := range pairs {
		for _, x := range values {
			there := convert(x, p[0], p[1])
			back := convert(there, p[1], p[0])
			assert.InDelta(t, x, back, 1e-9, "%v via %s/%s", x, p[0], p[1])

			there = convert(x, p[1], p[0])
			back = convert(there, p[0], p[1])
			assert.InDelta(t, x, back, 1e-9, "%v via %s/%s", x, p[1], p[0])
		}
	}
}

func TestConvertUnknownPairLenient(t *testing.T) {
	t.Parallel()

	res, err := NewConverter(false).Convert(4, "each", "kg")
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.Qty)
	assert.True(t, res.Fallback)
}

func TestConvertUnknownPairStrict(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(true).Convert(4, "each", "kg")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, Known("g", "kg"))
	assert.True(t, Known("oz", "oz"))
	assert.False(t, Known("each", "g"))
}

func TestNilConverterIsLenient(t *testing.T) {
	t.Parallel()

	var conv *Converter
	res, err := conv.Convert(1, "cup", "mL")
	require.NoError(t, err)
	assert.True(t, res.Fallback)
}
