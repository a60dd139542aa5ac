package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolume_LoadingDimensions(t *testing.T) {
	tests := []struct {
		name          string
		volume        Volume
		length, width int
		loadingVolume int64
	}{
		{
			name:          "no extension keeps declared footprint",
			volume:        Volume{Length: 1200, Width: 800, Height: 1000},
			length:        1200,
			width:         800,
			loadingVolume: 1200 * 800 * 1000,
		},
		{
			name:          "extension three inflates both sides by two",
			volume:        Volume{Length: 100, Width: 50, Height: 10, Extension: 3},
			length:        200,
			width:         100,
			loadingVolume: 200 * 100 * 10,
		},
		{
			name:          "fractional result rounds up",
			volume:        Volume{Length: 10, Width: 10, Height: 10, Extension: 0.01},
			length:        11,
			width:         11,
			loadingVolume: 11 * 11 * 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.length, tt.volume.LoadingLength())
			assert.Equal(t, tt.width, tt.volume.LoadingWidth())
			assert.Equal(t, tt.loadingVolume, tt.volume.LoadingVolume())
			assert.Equal(t, int64(tt.length)*int64(tt.width), tt.volume.FootprintArea())
			assert.Equal(t, Point{X: tt.length, Y: tt.width, Z: tt.volume.Height}, tt.volume.Extent())
		})
	}
}

func TestVolume_Valid(t *testing.T) {
	assert.True(t, Volume{Length: 1, Width: 1, Height: 1}.Valid())
	assert.False(t, Volume{Length: 0, Width: 1, Height: 1}.Valid())
	assert.False(t, Volume{Length: 1, Width: -1, Height: 1}.Valid())
	assert.False(t, Volume{Length: 1, Width: 1, Height: 1, Extension: -0.5}.Valid())
}

func TestPoint_Helpers(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}

	assert.Equal(t, Point{X: 9, Y: 2, Z: 3}, p.WithX(9))
	assert.Equal(t, Point{X: 1, Y: 9, Z: 3}, p.WithY(9))
	assert.Equal(t, Point{X: 1, Y: 2, Z: 9}, p.WithZ(9))
	assert.Equal(t, Point{X: 2, Y: 4, Z: 6}, p.Add(p))
	assert.Equal(t, Origin, p.Sub(p))
	assert.True(t, p.LessEq(p))
	assert.False(t, p.LessEq(Origin))
	assert.Equal(t, "(1,2,3)", p.String())
}
