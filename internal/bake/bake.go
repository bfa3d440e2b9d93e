// Package bake resamples animation channels at a fixed frame rate, so the
// exported keys line up with the frames of the source animation.
package bake

import (
	gomath "math"

	"github.com/Faultbox/osgexport/pkg/math"
	"github.com/Faultbox/osgexport/pkg/osg"
)

// DefaultFPS replaces a frame rate that is not a positive finite number.
const DefaultFPS = 25

// Options selects the sampling grid: one key every Step frames at FPS.
type Options struct {
	FPS  float64
	Step int
}

// Interval returns the time between two baked keys in seconds. It is
// always positive.
func (o Options) Interval() float64 {
	step := o.Step
	if step < 1 {
		step = 1
	}
	fps := o.FPS
	if !(fps > 0) || gomath.IsInf(fps, 1) {
		fps = DefaultFPS
	}
	return float64(step) / fps
}

// Sample returns the value of keys at time t. Quaternion channels are
// interpolated with slerp, everything else linearly per component. Times
// outside the keys clamp to the first or last key.
func Sample(keys []osg.Keyframe, typ osg.KeyframeType, t float64) []float64 {
	if len(keys) == 0 {
		return nil
	}
	if len(keys) == 1 {
		return clone(keys[0].Value)
	}

	// Find surrounding keyframes (keys are sorted by time)
	var prev, next int
	for i := range keys {
		if keys[i].Time > t {
			next = i
			break
		}
		prev = i
		next = i
	}

	// Before the first or at/after the last key
	if prev == next {
		return clone(keys[prev].Value)
	}

	k0 := keys[prev]
	k1 := keys[next]
	f := 0.0
	if k1.Time != k0.Time {
		f = (t - k0.Time) / (k1.Time - k0.Time)
	}

	if typ == osg.KeyframeQuat && len(k0.Value) == 4 && len(k1.Value) == 4 {
		q0 := math.Quat{X: k0.Value[0], Y: k0.Value[1], Z: k0.Value[2], W: k0.Value[3]}
		q1 := math.Quat{X: k1.Value[0], Y: k1.Value[1], Z: k1.Value[2], W: k1.Value[3]}
		q := q0.Slerp(q1, f).Normalize().Array()
		return q[:]
	}

	n := len(k0.Value)
	if len(k1.Value) < n {
		n = len(k1.Value)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = k0.Value[i] + f*(k1.Value[i]-k0.Value[i])
	}
	return out
}

// Times returns the sampling times from start to end inclusive. The end is
// always present even when it falls between two grid points.
func (o Options) Times(start, end float64) []float64 {
	if end <= start {
		return []float64{start}
	}
	dt := o.Interval()
	const eps = 1e-9
	var times []float64
	for i := 0; ; i++ {
		t := start + float64(i)*dt
		if t >= end-eps {
			break
		}
		times = append(times, t)
	}
	return append(times, end)
}

// Channel replaces the keys of c with keys sampled on the grid. Channels
// with fewer than two keys are left alone.
func Channel(c *osg.Channel, o Options) {
	if len(c.Keyframes) < 2 {
		return
	}
	start := c.Keyframes[0].Time
	end := c.Keyframes[len(c.Keyframes)-1].Time

	times := o.Times(start, end)
	baked := make([]osg.Keyframe, len(times))
	for i, t := range times {
		baked[i] = osg.Keyframe{Time: t, Value: Sample(c.Keyframes, c.Type, t)}
	}
	c.Keyframes = baked
}

// Animation bakes every channel of a and returns the number of keys written.
func Animation(a *osg.Animation, o Options) int {
	total := 0
	for _, c := range a.Channels {
		Channel(c, o)
		total += len(c.Keyframes)
	}
	return total
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
