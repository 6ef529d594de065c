// Package lighting holds the scene's sun and ambient settings.
package lighting

import (
	"github.com/Faultbox/corridor/pkg/math"
)

// minAmbientHeight keeps the shader's height division finite.
const minAmbientHeight = 0.0001

// Settings describes a directional sun plus a height-graded ambient term.
type Settings struct {
	SunDirection  math.Vec3 // direction the light travels
	SunColor      math.Vec3
	SunIntensity  float32
	HorizonColor  math.Vec3 // ambient color at ground level
	AmbientHeight float32   // height at which ambient reaches white
}

// Default returns the stock look: a warm sun from above and a blue horizon.
func Default() Settings {
	return Settings{
		SunDirection:  math.Vec3{X: -0.4, Y: -1, Z: -0.3},
		SunColor:      math.Vec3{X: 1, Y: 0.7, Z: 0.7},
		SunIntensity:  1.25,
		HorizonColor:  math.Vec3{X: 0.15, Y: 0.2, Z: 0.55},
		AmbientHeight: 6,
	}
}

// Uniforms is Settings packed the way the scene shader reads them.
type Uniforms struct {
	SunDirection [4]float32 // xyz normalized, w intensity
	SunColor     [3]float32
	HorizonColor [4]float32 // xyz color, w ambient height
}

// Uniforms packs s for upload. A zero sun direction stays zero.
func (s Settings) Uniforms() Uniforms {
	var dir math.Vec3
	if s.SunDirection.Length() > 0 {
		dir = s.SunDirection.Normalize()
	}
	h := s.AmbientHeight
	if h < minAmbientHeight {
		h = minAmbientHeight
	}
	return Uniforms{
		SunDirection: [4]float32{dir.X, dir.Y, dir.Z, s.SunIntensity},
		SunColor:     s.SunColor.Array(),
		HorizonColor: [4]float32{s.HorizonColor.X, s.HorizonColor.Y, s.HorizonColor.Z, h},
	}
}
