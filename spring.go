package driftwood

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// axisSpring integrates one axis of a damped spring toward a moving target.
// Stiffness, damping, and mass are the conventional oscillator constants;
// they map to harmonica's parameters as omega = sqrt(stiffness/mass) and
// zeta = damping / (2*sqrt(stiffness*mass)).
type axisSpring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newAxisSpring(tps int, stiffness, damping, mass float64) axisSpring {
	omega := math.Sqrt(stiffness / mass)
	zeta := damping / (2 * math.Sqrt(stiffness*mass))
	return axisSpring{spring: harmonica.NewSpring(harmonica.FPS(tps), omega, zeta)}
}

// newCriticalSpring returns a critically damped spring (damping ratio 1)
// that settles in roughly settleTime seconds. Used for numeric scrub
// smoothing, where overshoot past the target progress would read as a
// scroll glitch.
func newCriticalSpring(tps int, settleTime float64) axisSpring {
	if settleTime < 1.0/float64(tps) {
		settleTime = 1.0 / float64(tps)
	}
	omega := 2 * math.Pi / settleTime
	return axisSpring{spring: harmonica.NewSpring(harmonica.FPS(tps), omega, 1)}
}

// step advances one tick toward target and returns the new position.
func (s *axisSpring) step(target float64) float64 {
	p, v := s.spring.Update(s.pos, s.vel, target)
	s.pos = p
	s.vel = v
	return p
}

// atRest reports whether the spring has settled at target: both the speed
// and the remaining distance must be inside the given tolerances.
func (s *axisSpring) atRest(target, restDelta, restSpeed float64) bool {
	return math.Abs(s.vel) < restSpeed && math.Abs(s.pos-target) < restDelta
}

// settle pins the spring exactly at target with zero velocity.
func (s *axisSpring) settle(target float64) {
	s.pos = target
	s.vel = 0
}
