// Package smooth animates value changes by keeping an authoritative target
// alongside the previously displayed value and re-sampling an eased blend
// between them from the wall clock. Nothing is scheduled; callers poll the
// animated value on every redraw.
package smooth

import (
	"math"
	"time"
)

// DefaultDuration is how long a value takes to settle after Set.
const DefaultDuration = 500 * time.Millisecond

// Lerper is implemented by values that can interpolate toward another value
// of the same type.
type Lerper[T any] interface {
	Lerp(other T, t float64) T
}

// Smooth blends between the previous and current value of T over a fixed
// duration, easing out so changes start fast and settle gently.
type Smooth[T Lerper[T]] struct {
	current  T
	previous T
	changed  time.Time
	duration time.Duration

	now func() time.Time
}

// New returns a Smooth at rest on initial. A duration of zero selects
// DefaultDuration.
func New[T Lerper[T]](initial T, duration time.Duration) *Smooth[T] {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Smooth[T]{
		current:  initial,
		previous: initial,
		changed:  time.Now(),
		duration: duration,
		now:      time.Now,
	}
}

// Real returns the authoritative target value.
func (s *Smooth[T]) Real() T {
	return s.current
}

// Animated returns the eased blend between the previous and current value
// for the present moment. At t=0 this is exactly the value that was on
// screen when Set was last called; once the duration has elapsed it is
// exactly the current target.
func (s *Smooth[T]) Animated() T {
	return s.previous.Lerp(s.current, s.t())
}

func (s *Smooth[T]) t() float64 {
	t := float64(s.now().Sub(s.changed)) / float64(s.duration)
	return easeOutExpo(clamp01(t))
}

// Set freezes whatever is currently displayed as the new blend start, makes
// value the new target, and restarts the ease timer. Rapid repeated calls
// during a drag therefore re-base the animation from the on-screen value
// instead of stuttering.
func (s *Smooth[T]) Set(value T) {
	s.previous = s.Animated()
	s.current = value
	s.changed = s.now()
}

// SetBoth forcibly overwrites both endpoints at once, snapping the
// animation. Used when a value must jump without any visible interpolation,
// e.g. folding an angle back to zero to dodge wrap-around artifacts.
func (s *Smooth[T]) SetBoth(value T) {
	s.current = value
	s.previous = value
}

// MutateBoth applies fn to the current and previous endpoints in place,
// letting a caller rewrite parts of both snapshots while keeping the rest
// of an in-flight animation intact.
func (s *Smooth[T]) MutateBoth(fn func(*T)) {
	fn(&s.current)
	fn(&s.previous)
}

// SetClock replaces the time source. Tests use this to step through an
// animation deterministically.
func (s *Smooth[T]) SetClock(now func() time.Time) {
	s.now = now
	s.changed = now()
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// easeOutExpo is the exponential ease-out curve, pinned to exactly 1 at t=1
// so animations land on their target rather than asymptotically near it.
func easeOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}
