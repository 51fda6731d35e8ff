package scene2d

import (
	"fmt"
	"math"
	"strings"
)

// ScaleType selects how an Axis maps data values onto the scene.
type ScaleType uint8

const (
	ScaleLinear ScaleType = iota // Origin + v*Scale
	ScaleLog                     // Origin + log10(v)*Scale, v <= 0 maps to Origin
)

// ParseScaleType parses a configuration scale type. The empty string is LINEAR.
func ParseScaleType(s string) (ScaleType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "LINEAR":
		return ScaleLinear, nil
	case "LOG":
		return ScaleLog, nil
	}
	return ScaleLinear, fmt.Errorf("unknown scale type %q", s)
}

func (t ScaleType) String() string {
	if t == ScaleLog {
		return "LOG"
	}
	return "LINEAR"
}

// Axis maps one data dimension onto one scene dimension. A zero Scale is
// accepted and collapses every value onto Origin.
type Axis struct {
	ID        string
	Origin    float64
	Scale     float64
	ScaleType ScaleType
}

// newAxis builds an Axis from a validated AxisConfig.
func newAxis(cfg AxisConfig) *Axis {
	scale := 1.0
	if cfg.Scale != nil {
		scale = *cfg.Scale
	}
	st, _ := ParseScaleType(cfg.ScaleType)
	return &Axis{ID: cfg.ID, Origin: cfg.Origin, Scale: scale, ScaleType: st}
}

// ToScene maps a data value to a scene coordinate.
func (a *Axis) ToScene(v float64) float64 {
	if a.ScaleType == ScaleLog {
		if v <= 0 {
			return a.Origin
		}
		v = math.Log10(v)
	}
	return a.Origin + v*a.Scale
}

// FromScene maps a scene coordinate back to a data value. With a zero
// Scale the inverse is undefined and 0 is returned.
func (a *Axis) FromScene(s float64) float64 {
	if a.Scale == 0 {
		return 0
	}
	v := (s - a.Origin) / a.Scale
	if a.ScaleType == ScaleLog {
		return math.Pow(10, v)
	}
	return v
}
