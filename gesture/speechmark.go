package gesture

import "encoding/json"

// markPayload is the {feature, method, args} envelope speechmarks carry to
// invoke a feature method from SSML.
type markPayload struct {
	Feature string `json:"feature"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

// GestureMapEntry describes one gesture-to-speechmark binding: the animation
// name and the PlayOptions it should be invoked with.
type GestureMapEntry struct {
	LayerName     string
	AnimationName string
	Options       PlayOptions
}

// CreateGestureMap encodes each entry as a JSON speechmark payload calling
// PlayGesture, keyed by animation name for SSML mark lookup.
func CreateGestureMap(className string, entries []GestureMapEntry) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		payload := markPayload{
			Feature: className,
			Method:  "PlayGesture",
			Args:    []any{e.LayerName, e.AnimationName, e.Options},
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		out[e.AnimationName] = string(encoded)
	}
	return out, nil
}

// CreateGenericGestureArray encodes one speechmark payload per animation
// name using shared layerName and options, for characters whose gesture set
// doesn't need per-animation overrides.
func CreateGenericGestureArray(className, layerName string, animationNames []string, opts PlayOptions) ([]string, error) {
	out := make([]string, 0, len(animationNames))
	for _, name := range animationNames {
		payload := markPayload{
			Feature: className,
			Method:  "PlayGesture",
			Args:    []any{layerName, name, opts},
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, string(encoded))
	}
	return out, nil
}
