package sprites

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArenaRanges(t *testing.T) {
	a := NewArena(100, rand.New(rand.NewSource(42)))
	require.Len(t, a.Sprites, 100)

	for i, s := range a.Sprites {
		assert.Equal(t, i, s.Index)
		assert.GreaterOrEqual(t, s.X, 0.0)
		assert.Less(t, s.X, 100.0)
		assert.GreaterOrEqual(t, s.Y, 0.0)
		assert.Less(t, s.Y, 100.0)
		assert.GreaterOrEqual(t, s.Size, 30.0)
		assert.Less(t, s.Size, 50.0)
		assert.GreaterOrEqual(t, s.Speed, 0.3)
		assert.Less(t, s.Speed, 1.0)
		assert.Contains(t, []int{-1, 1}, s.Direction.X)
		assert.Contains(t, []int{-1, 1}, s.Direction.Y)
		assert.Zero(t, s.WingAngle)
		assert.Equal(t, 1, s.WingDirection)
	}
}

func TestNewArenaColours(t *testing.T) {
	a := NewArena(6, rand.New(rand.NewSource(1)))
	want := []string{ColorGreen, ColorPink, ColorPink, ColorGreen, ColorPink, ColorPink}
	for i, s := range a.Sprites {
		assert.Equal(t, want[i], s.Color, "sprite %d", i)
	}
}

func TestNewArenaIsDeterministicForSeed(t *testing.T) {
	a := NewArena(10, rand.New(rand.NewSource(7)))
	b := NewArena(10, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestNewArenaNegativeCount(t *testing.T) {
	assert.Empty(t, NewArena(-3, nil).Sprites)
}

func TestStepMovesAndBounces(t *testing.T) {
	a := &Arena{Sprites: []Sprite{
		{X: 50, Y: 50, Speed: 1, Direction: Vector{X: 1, Y: -1}},
		{X: 97.5, Y: 0.5, Speed: 1, Direction: Vector{X: 1, Y: -1}},
	}}

	a.Step(0)

	free := a.Sprites[0]
	assert.InDelta(t, 51, free.X, 1e-9)
	assert.InDelta(t, 49, free.Y, 1e-9)
	assert.Equal(t, Vector{X: 1, Y: -1}, free.Direction)

	edge := a.Sprites[1]
	assert.Equal(t, 98.0, edge.X, "clamped at right edge")
	assert.Equal(t, 0.0, edge.Y, "clamped at top edge")
	assert.Equal(t, Vector{X: -1, Y: 1}, edge.Direction)
}

func TestStepAppliesFloatOffset(t *testing.T) {
	a := &Arena{Sprites: []Sprite{{X: 10, Y: 10, Speed: 0.5, Direction: Vector{X: 1, Y: 1}}}}
	a.Step(0.2)
	assert.InDelta(t, 10.7, a.Sprites[0].Y, 1e-9)
}

func TestStepStaysInBounds(t *testing.T) {
	a := NewArena(50, rand.New(rand.NewSource(3)))
	for i := 0; i < 1000; i++ {
		a.Step(FloatOffset(time.UnixMilli(int64(i) * 150)))
	}
	for _, s := range a.Sprites {
		assert.GreaterOrEqual(t, s.X, 0.0)
		assert.LessOrEqual(t, s.X, 98.0)
		assert.GreaterOrEqual(t, s.Y, 0.0)
		assert.LessOrEqual(t, s.Y, 98.0)
	}
}

func TestFlapOscillates(t *testing.T) {
	a := &Arena{Sprites: []Sprite{{WingDirection: 1}}}

	for i := 0; i < 15; i++ {
		a.Flap()
	}
	assert.Equal(t, 15, a.Sprites[0].WingAngle)
	assert.Equal(t, -1, a.Sprites[0].WingDirection)

	for i := 0; i < 30; i++ {
		a.Flap()
	}
	assert.Equal(t, -15, a.Sprites[0].WingAngle)
	assert.Equal(t, 1, a.Sprites[0].WingDirection)
}

func TestFloatOffsetAmplitude(t *testing.T) {
	for ms := int64(0); ms < 10000; ms += 97 {
		off := FloatOffset(time.UnixMilli(ms))
		assert.LessOrEqual(t, off, 0.2)
		assert.GreaterOrEqual(t, off, -0.2)
	}
}

func TestAdvanceMatchesManualSteps(t *testing.T) {
	start := time.UnixMilli(0)
	got := NewArena(4, rand.New(rand.NewSource(9)))
	got.Advance(3, start)

	want := NewArena(4, rand.New(rand.NewSource(9)))
	for i := 0; i < 3; i++ {
		want.Step(FloatOffset(start.Add(time.Duration(i) * StepInterval)))
		want.Flap()
		want.Flap()
		want.Flap()
	}
	assert.Equal(t, want.Sprites, got.Sprites)
	assert.Equal(t, 9, got.Sprites[0].WingAngle)
}

func TestAdvanceZeroTicksIsNoop(t *testing.T) {
	a := NewArena(2, rand.New(rand.NewSource(1)))
	before := append([]Sprite(nil), a.Sprites...)
	a.Advance(0, time.Now())
	assert.Equal(t, before, a.Sprites)
}
