package driftwood

import (
	"math"
	"testing"
)

func TestAxisSpringConverges(t *testing.T) {
	s := newAxisSpring(60, 150, 15, 1)

	for i := 0; i < 300; i++ {
		s.step(10)
	}
	if !approxEqual(s.pos, 10, 0.01) {
		t.Errorf("pos after 300 ticks = %v, want ~10", s.pos)
	}
	if math.Abs(s.vel) > 0.01 {
		t.Errorf("vel after 300 ticks = %v, want ~0", s.vel)
	}
}

func TestAxisSpringMovesTowardTarget(t *testing.T) {
	s := newAxisSpring(60, 150, 15, 1)

	p1 := s.step(10)
	p2 := s.step(10)
	if p1 <= 0 || p2 <= p1 {
		t.Errorf("spring should advance toward target: %v then %v", p1, p2)
	}
	if p1 >= 10 {
		t.Errorf("first step = %v, should not jump to the target", p1)
	}
}

func TestAxisSpringAtRest(t *testing.T) {
	s := newAxisSpring(60, 150, 15, 1)
	if s.atRest(10, 0.01, 0.01) {
		t.Error("fresh spring far from target should not be at rest")
	}
	for i := 0; i < 600; i++ {
		s.step(10)
	}
	if !s.atRest(10, 0.01, 0.01) {
		t.Errorf("spring not at rest after 600 ticks: pos=%v vel=%v", s.pos, s.vel)
	}
}

func TestAxisSpringSettle(t *testing.T) {
	s := newAxisSpring(60, 150, 15, 1)
	s.step(10)
	s.settle(10)
	if s.pos != 10 || s.vel != 0 {
		t.Errorf("after settle: pos=%v vel=%v, want 10, 0", s.pos, s.vel)
	}
}

func TestCriticalSpringNoOvershoot(t *testing.T) {
	s := newCriticalSpring(60, 0.2)

	for i := 0; i < 120; i++ {
		p := s.step(1)
		if p > 1+1e-6 {
			t.Fatalf("tick %d: pos = %v overshoots target 1", i, p)
		}
	}
	if !approxEqual(s.pos, 1, 0.001) {
		t.Errorf("pos after 2s = %v, want ~1", s.pos)
	}
}

func TestCriticalSpringClampsSettleTime(t *testing.T) {
	// Settle times below one tick are raised to one tick; the spring must
	// stay finite and converge fast.
	s := newCriticalSpring(60, 0)
	for i := 0; i < 30; i++ {
		s.step(1)
	}
	if math.IsNaN(s.pos) || math.IsInf(s.pos, 0) {
		t.Fatalf("pos = %v, want finite", s.pos)
	}
	if !approxEqual(s.pos, 1, 0.01) {
		t.Errorf("pos after 30 ticks = %v, want ~1", s.pos)
	}
}

func TestCriticalSpringTracksMovingTarget(t *testing.T) {
	s := newCriticalSpring(60, 0.1)

	// Follow a target that moves every tick; the spring should stay behind
	// it but keep closing in once it stops.
	target := 0.0
	for i := 0; i < 60; i++ {
		target += 0.01
		s.step(target)
	}
	for i := 0; i < 120; i++ {
		s.step(target)
	}
	if !approxEqual(s.pos, target, 0.001) {
		t.Errorf("pos = %v, want ~%v", s.pos, target)
	}
}
