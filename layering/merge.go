// Package layering composes flat option maps ordered from strongest to
// weakest precedence.
package layering

// Merge returns a new map keeping entries from stronger layers while
// filling missing keys from weaker ones. Inputs are never mutated.
func Merge(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for i := len(layers) - 1; i >= 0; i-- {
		for key, value := range layers[i] {
			merged[key] = value
		}
	}
	return merged
}

// Clone returns a detached copy of layer.
func Clone(layer map[string]string) map[string]string {
	if layer == nil {
		return nil
	}
	out := make(map[string]string, len(layer))
	for key, value := range layer {
		out[key] = value
	}
	return out
}
