// Package sprites models the decorative flying sprites drawn over the board.
// Sprites are independent of the schedule data.
package sprites

import (
	"math"
	"math/rand"
	"time"
)

// Palette colours shared with the page styles.
const (
	ColorGreen = "#4b9560"
	ColorPink  = "#ff97c7"
)

// Animation cadence. The page runs the same loop in the browser.
const (
	StepInterval = 150 * time.Millisecond
	FlapInterval = 50 * time.Millisecond
)

const (
	minPosition = 0.0
	maxPosition = 98.0
	wingLimit   = 15
	floatAmp    = 0.2
)

// Vector is a pair of per-axis directions, each +1 or -1.
type Vector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sprite is one flying sprite. Positions are percentages of the viewport.
type Sprite struct {
	Index         int     `json:"index"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Size          float64 `json:"size"`
	Speed         float64 `json:"speed"`
	Direction     Vector  `json:"direction"`
	WingAngle     int     `json:"wingAngle"`
	WingDirection int     `json:"wingDirection"`
	Color         string  `json:"color"`
}

// Arena holds a fixed set of sprites.
type Arena struct {
	Sprites []Sprite `json:"sprites"`
}

// NewArena creates n sprites with randomised position, size, speed and heading.
func NewArena(n int, rng *rand.Rand) *Arena {
	if n < 0 {
		n = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	a := &Arena{Sprites: make([]Sprite, n)}
	for i := range a.Sprites {
		a.Sprites[i] = Sprite{
			Index:         i,
			X:             rng.Float64() * 100,
			Y:             rng.Float64() * 100,
			Size:          30 + rng.Float64()*20,
			Speed:         0.3 + rng.Float64()*0.7,
			Direction:     Vector{X: randomSign(rng), Y: randomSign(rng)},
			WingDirection: 1,
			Color:         colorFor(i),
		}
	}
	return a
}

// Step advances every sprite once. floatOffset is added to the vertical motion.
func (a *Arena) Step(floatOffset float64) {
	for i := range a.Sprites {
		a.Sprites[i].step(floatOffset)
	}
}

// Flap advances every sprite's wing animation by one degree.
func (a *Arena) Flap() {
	for i := range a.Sprites {
		a.Sprites[i].flap()
	}
}

// Advance runs ticks step intervals starting at start, flapping the wings at
// FlapInterval in between. The result depends only on the arena and the inputs.
func (a *Arena) Advance(ticks int, start time.Time) {
	flaps := int(StepInterval / FlapInterval)
	for i := 0; i < ticks; i++ {
		a.Step(FloatOffset(start.Add(time.Duration(i) * StepInterval)))
		for j := 0; j < flaps; j++ {
			a.Flap()
		}
	}
}

// FloatOffset is the gentle vertical drift applied at time t.
func FloatOffset(t time.Time) float64 {
	return math.Sin(float64(t.UnixMilli())/1000) * floatAmp
}

func (s *Sprite) step(floatOffset float64) {
	x := s.X + s.Speed*float64(s.Direction.X)
	y := s.Y + s.Speed*float64(s.Direction.Y) + floatOffset

	if x <= minPosition || x >= maxPosition {
		s.Direction.X = -s.Direction.X
	}
	if y <= minPosition || y >= maxPosition {
		s.Direction.Y = -s.Direction.Y
	}
	s.X = clamp(x)
	s.Y = clamp(y)
}

func (s *Sprite) flap() {
	s.WingAngle += s.WingDirection
	if s.WingAngle >= wingLimit || s.WingAngle <= -wingLimit {
		s.WingDirection = -s.WingDirection
	}
}

func colorFor(index int) string {
	if index%3 == 0 {
		return ColorGreen
	}
	return ColorPink
}

func randomSign(rng *rand.Rand) int {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}

func clamp(v float64) float64 {
	return math.Max(minPosition, math.Min(maxPosition, v))
}
