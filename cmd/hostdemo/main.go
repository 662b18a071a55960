// Command hostdemo wires a HostObject with animation, gesture, and gaze
// features over a stub engine adapter and steps it through a simulated
// tick loop, printing layer weights as gestures and gaze targets change.
// It carries no real rendering or audio; engineadapter's interfaces are
// satisfied here by minimal stand-ins so the composition core can be
// exercised without a 3D engine.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/oxy-host/hostanim-go/animation"
	"github.com/oxy-host/hostanim-go/engineadapter"
	"github.com/oxy-host/hostanim-go/feature"
	"github.com/oxy-host/hostanim-go/gaze"
	"github.com/oxy-host/hostanim-go/gesture"
	"github.com/oxy-host/hostanim-go/mathutil"
	"github.com/oxy-host/hostanim-go/messenger"
)

func main() {
	log := logrus.NewEntry(logrus.StandardLogger())
	log.Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// ── Messenger + Host ───────────────────────────────────────────────
	bus := messenger.New()
	owner := newStubTransform(0, 0, 0)
	host := feature.NewHostObject("demo-host", owner, bus)

	// ── Animation feature: two layers, a gesture queue, a gaze blend ───
	anim := animation.NewFeature("AnimationFeature", bus)
	host.AddFeature(anim)

	// Gesture and gaze subscribe to AnimationFeature's addLayer/addAnimation
	// events, so they must exist before the layers they manage are added —
	// a layer added before its observer is wired is a presence update the
	// observer will never see.
	gest := gesture.New("GestureFeature", anim, bus, 2.0, 0.5, log.WithField("feature", "gesture"))
	gest.ManageLayer("Gesture", true)

	gazeFeature := gaze.New("GazeFeature", anim, bus, []gaze.TrackingConfig{
		{Reference: owner, ForwardAxis: gaze.AxisNegZ},
	}, log.WithField("feature", "gaze"))
	gazeFeature.ManageLookLayer("Gaze", "lookBlend", true)

	baseLayer := anim.AddLayer("Base", animation.Override, 0.2)
	if _, err := anim.AddAnimation(baseLayer, "idle", animation.AddAnimationOptions{
		Type: animation.SingleType,
		SubStates: []animation.SubStateOptions{
			{Name: "idle", Clip: newStubClip(0, 1), Player: newStubPlayer(), LoopCount: animation.InfiniteLoop},
		},
	}); err != nil {
		fatal(log, "add idle animation", err)
	}

	gestureLayer := anim.AddLayer("Gesture", animation.Additive, 0.1)
	if _, err := anim.AddAnimation(gestureLayer, "wave", animation.AddAnimationOptions{
		Type: animation.QueueType,
		SubStates: []animation.SubStateOptions{
			{Name: "waveStart", Clip: newStubClip(0, 1), Player: newStubPlayer()},
			{Name: "waveLoop", Clip: newStubClip(0, 1), Player: newStubPlayer(), LoopCount: 2},
		},
		AutoAdvance: true,
	}); err != nil {
		fatal(log, "add wave animation", err)
	}

	gazeLayer := anim.AddLayer("Gaze", animation.Additive, 0.1)
	if _, err := anim.AddAnimation(gazeLayer, "lookBlend", animation.AddAnimationOptions{
		Type: animation.Blend2dType,
		Thresholds: []animation.BlendThresholdOptions{
			{SubStateOptions: animation.SubStateOptions{Name: "center", Clip: newStubClip(0, 1), Player: newStubPlayer()}, Point2d: mathutil.V2{X: 0, Y: 0}},
			{SubStateOptions: animation.SubStateOptions{Name: "up", Clip: newStubClip(0, 1), Player: newStubPlayer()}, Point2d: mathutil.V2{X: 0, Y: 1}},
			{SubStateOptions: animation.SubStateOptions{Name: "down", Clip: newStubClip(0, 1), Player: newStubPlayer()}, Point2d: mathutil.V2{X: 0, Y: -1}},
			{SubStateOptions: animation.SubStateOptions{Name: "left", Clip: newStubClip(0, 1), Player: newStubPlayer()}, Point2d: mathutil.V2{X: -1, Y: 0}},
			{SubStateOptions: animation.SubStateOptions{Name: "right", Clip: newStubClip(0, 1), Player: newStubPlayer()}, Point2d: mathutil.V2{X: 1, Y: 0}},
		},
	}); err != nil {
		fatal(log, "add lookBlend animation", err)
	}

	// idle loops forever; nothing to observe on completion.
	anim.PlayAnimation(baseLayer, "idle", 0, mathutil.Linear, animation.PlayCallbacks{})

	host.AddFeature(gest)
	host.AddFeature(gazeFeature)

	target := newStubTransform(5, 1, -10)
	gazeFeature.SetTarget(target)

	// ── Simulated tick loop ─────────────────────────────────────────────
	const tickMs = 1000.0 / 30.0
	for tick := 0; tick < 90; tick++ {
		if tick == 15 {
			gest.PlayGesture(gestureLayer, "wave", gesture.PlayOptions{TransitionTime: 0.2})
		}
		if tick == 45 {
			target.position = [3]float64{-3, 2, -8}
		}

		host.Update(tickMs)

		if tick%15 == 0 {
			printStatus(tick, anim, baseLayer, gestureLayer, gazeLayer)
		}
	}
}

func printStatus(tick int, anim *animation.Feature, layers ...string) {
	fmt.Printf("tick %3d:", tick)
	for _, name := range layers {
		layer, ok := anim.GetLayer(name)
		if !ok {
			continue
		}
		fmt.Printf("  %s=%.2f", name, layer.InternalWeight())
	}
	fmt.Println()
}

func fatal(log *logrus.Entry, msg string, err error) {
	log.WithError(err).Error(msg)
	os.Exit(1)
}

// ── Stub engineadapter implementations ───────────────────────────────────

type stubTransform struct {
	position [3]float64
}

func newStubTransform(x, y, z float64) *stubTransform {
	return &stubTransform{position: [3]float64{x, y, z}}
}

func (t *stubTransform) WorldPosition() [3]float64 { return t.position }

func (t *stubTransform) WorldMatrix() [16]float64 {
	return [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		t.position[0], t.position[1], t.position[2], 1,
	}
}

type stubClip struct {
	from, to float64
}

func newStubClip(from, to float64) *stubClip { return &stubClip{from: from, to: to} }

func (c *stubClip) From() float64 { return c.from }
func (c *stubClip) To() float64   { return c.to }
func (c *stubClip) Normalize(from, to float64) {
	c.from, c.to = from, to
}
func (c *stubClip) TargetedAnimations() []engineadapter.TargetedAnimation { return nil }
func (c *stubClip) MakeAdditive()                                        {}

type stubAnimatable struct {
	frame  float64
	weight float64
}

func (a *stubAnimatable) MasterFrame() float64   { return a.frame }
func (a *stubAnimatable) GoToFrame(f float64)    { a.frame = f }
func (a *stubAnimatable) Weight() float64        { return a.weight }
func (a *stubAnimatable) SetWeight(w float64)    { a.weight = w }
func (a *stubAnimatable) SetSpeedRatio(float64)  {}
func (a *stubAnimatable) Stop()                  {}

type stubPlayer struct{}

func newStubPlayer() *stubPlayer { return &stubPlayer{} }

// Play returns a handle whose frame/weight the caller drives manually; this
// stub has no real clip duration, so onFinish is never invoked here.
func (p *stubPlayer) Play(clip engineadapter.Clip, from, to float64, loop bool, startWeight float64, onFinish, onLoop func(), additive bool) engineadapter.Animatable {
	return &stubAnimatable{weight: startWeight}
}
