package animation_test

import "github.com/oxy-host/hostanim-go/engineadapter"

// fakeClip is a minimal engineadapter.Clip with a fixed [from,to] frame
// range, enough for SingleState's normalizedTime math.
type fakeClip struct {
	from, to float64
}

func newFakeClip(from, to float64) *fakeClip { return &fakeClip{from: from, to: to} }

func (c *fakeClip) From() float64                                         { return c.from }
func (c *fakeClip) To() float64                                           { return c.to }
func (c *fakeClip) Normalize(from, to float64)                            { c.from, c.to = from, to }
func (c *fakeClip) TargetedAnimations() []engineadapter.TargetedAnimation { return nil }
func (c *fakeClip) MakeAdditive()                                         {}

// fakeAnimatable records the frame/weight a SingleState pushes to it, and
// lets tests trigger onFinish synchronously.
type fakeAnimatable struct {
	frame    float64
	weight   float64
	speed    float64
	stopped  bool
	onFinish func()
}

func (a *fakeAnimatable) MasterFrame() float64  { return a.frame }
func (a *fakeAnimatable) GoToFrame(f float64)   { a.frame = f }
func (a *fakeAnimatable) Weight() float64       { return a.weight }
func (a *fakeAnimatable) SetWeight(w float64)   { a.weight = w }
func (a *fakeAnimatable) SetSpeedRatio(r float64) { a.speed = r }
func (a *fakeAnimatable) Stop()                 { a.stopped = true }

// fakePlayer hands back a fakeAnimatable and remembers the last call's
// arguments for assertions, and lets tests finish playback on demand.
type fakePlayer struct {
	last *fakeAnimatable
	loop bool
}

func newFakePlayer() *fakePlayer { return &fakePlayer{} }

func (p *fakePlayer) Play(clip engineadapter.Clip, from, to float64, loop bool, startWeight float64, onFinish, onLoop func(), additive bool) engineadapter.Animatable {
	p.loop = loop
	a := &fakeAnimatable{weight: startWeight, onFinish: onFinish}
	p.last = a
	return a
}

// finish invokes the onFinish callback captured by the most recent Play
// call, simulating the external engine completing non-looping playback.
func (p *fakePlayer) finish() {
	if p.last != nil && p.last.onFinish != nil {
		p.last.onFinish()
	}
}
