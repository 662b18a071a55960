// Package config loads the YAML character-assembly documents that describe
// a host's layer stack, gesture queues, and point-of-interest blend spaces
// as a declarative configuration surface, and assembles them onto a live
// animation.Feature / gesture.Feature / gaze.Feature trio.
package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"gopkg.in/yaml.v3"

	"github.com/oxy-host/hostanim-go/animation"
	"github.com/oxy-host/hostanim-go/mathutil"
)

// LayerConfig describes one AnimationLayer to create.
type LayerConfig struct {
	Name           string            `yaml:"name"`
	BlendMode      string            `yaml:"blendMode"`
	TransitionTime float64           `yaml:"transitionTime"`
	Animations     []AnimationConfig `yaml:"animations"`
}

// AnimationConfig describes one animation.AddAnimation call.
type AnimationConfig struct {
	Name         string            `yaml:"name"`
	Type         string            `yaml:"type"`
	SubStates    []SubStateConfig  `yaml:"subStates"`
	Thresholds   []ThresholdConfig `yaml:"thresholds"`
	AutoAdvance  bool              `yaml:"autoAdvance"`
	PlayInterval float64           `yaml:"playInterval"`
}

// SubStateConfig names the clip group a substate binds to; ClipGroup is
// resolved against the caller-supplied ClipResolver since clip handles are
// an external-engine concern this package never constructs itself.
type SubStateConfig struct {
	Name      string  `yaml:"name"`
	ClipGroup string  `yaml:"clipGroup"`
	TimeScale float64 `yaml:"timeScale"`
	LoopCount int     `yaml:"loopCount"`
}

// ThresholdConfig extends SubStateConfig with its blend-axis position.
type ThresholdConfig struct {
	SubStateConfig `yaml:",inline"`
	Value1d        float64 `yaml:"value1d"`
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	PhaseMatch     bool    `yaml:"phaseMatch"`
}

// CharacterConfig is the root document: a character's full layer stack.
type CharacterConfig struct {
	Name   string        `yaml:"name"`
	Layers []LayerConfig `yaml:"layers"`
}

// ClipResolver resolves a clip-group name (from YAML) plus a substate name
// into the engine-specific clip/player pair AddAnimation needs. Supplied by
// the embedding application, which owns the loaded 3D engine assets.
type ClipResolver interface {
	ResolveSubState(clipGroup, substateName string) animation.SubStateOptions
}

// Load parses a character YAML document from path and assembles it onto
// feat. Blend2dState triangulations are precomputed concurrently on a
// worker pool rather than on first SetBlendWeight call, keeping the
// per-tick hot path free of the Bowyer-Watson cost.
func Load(path string, feat *animation.Feature, resolver ClipResolver) (*CharacterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg CharacterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := Assemble(&cfg, feat, resolver); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Assemble builds every layer and animation in cfg onto feat, then drains a
// worker pool that precomputed every Blend2dState's Delaunay triangulation
// concurrently with the rest of assembly.
func Assemble(cfg *CharacterConfig, feat *animation.Feature, resolver ClipResolver) error {
	pool := worker.NewDynamicWorkerPool(4, 64, time.Second)
	var wg sync.WaitGroup
	var triangulateErr error
	var mu sync.Mutex
	taskID := 0

	for _, lc := range cfg.Layers {
		mode := animation.Override
		if lc.BlendMode == "additive" {
			mode = animation.Additive
		}
		layerName := feat.AddLayer(lc.Name, mode, lc.TransitionTime)

		for _, ac := range lc.Animations {
			opts, blend2d, err := buildAnimationOptions(ac, resolver)
			if err != nil {
				return err
			}
			animName, err := feat.AddAnimation(layerName, ac.Name, opts)
			if err != nil {
				return err
			}

			if blend2d {
				wg.Add(1)
				id := taskID
				taskID++
				layer, _ := feat.GetLayer(layerName)
				pool.SubmitTask(worker.Task{
					ID: id,
					Do: func() (any, error) {
						defer wg.Done()
						state, ok := layer.GetState(animName)
						if !ok {
							return nil, nil
						}
						b2, ok := state.(*animation.Blend2dState)
						if !ok {
							return nil, nil
						}
						points := make([]mathutil.V2, len(b2.Thresholds()))
						for i, th := range b2.Thresholds() {
							points[i] = th.Point
						}
						tris := mathutil.Delaunay(points)
						mu.Lock()
						b2.SetTriangulation(tris)
						mu.Unlock()
						return nil, nil
					},
				})
			}
		}
	}

	wg.Wait()
	return triangulateErr
}

func buildAnimationOptions(ac AnimationConfig, resolver ClipResolver) (animation.AddAnimationOptions, bool, error) {
	opts := animation.AddAnimationOptions{
		AutoAdvance:  ac.AutoAdvance,
		PlayInterval: ac.PlayInterval,
	}
	switch ac.Type {
	case "single":
		opts.Type = animation.SingleType
	case "freeBlend":
		opts.Type = animation.FreeBlendType
	case "blend1d":
		opts.Type = animation.Blend1dType
	case "blend2d":
		opts.Type = animation.Blend2dType
	case "queue":
		opts.Type = animation.QueueType
	case "randomAnimation":
		opts.Type = animation.RandomAnimationType
	default:
		return opts, false, fmt.Errorf("config: unknown animation type %q", ac.Type)
	}

	for _, sc := range ac.SubStates {
		so := resolver.ResolveSubState(sc.ClipGroup, sc.Name)
		so.Name = sc.Name
		if sc.TimeScale != 0 {
			so.TimeScale = sc.TimeScale
		}
		if sc.LoopCount != 0 {
			so.LoopCount = sc.LoopCount
		}
		opts.SubStates = append(opts.SubStates, so)
	}
	for _, tc := range ac.Thresholds {
		so := resolver.ResolveSubState(tc.ClipGroup, tc.Name)
		so.Name = tc.Name
		if tc.TimeScale != 0 {
			so.TimeScale = tc.TimeScale
		}
		if tc.LoopCount != 0 {
			so.LoopCount = tc.LoopCount
		}
		opts.Thresholds = append(opts.Thresholds, animation.BlendThresholdOptions{
			SubStateOptions: so,
			Value1d:         tc.Value1d,
			Point2d:         mathutil.V2{X: tc.X, Y: tc.Y},
			PhaseMatch:      tc.PhaseMatch,
		})
	}

	return opts, ac.Type == "blend2d", nil
}
