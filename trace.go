package sections

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Trace captures provenance for one option resolution: every reference
// the interpolator looked up and which section satisfied it.
type Trace struct {
	ID      string       `json:"id"`
	Section string       `json:"section"`
	Option  string       `json:"option"`
	Value   string       `json:"value,omitempty"`
	Steps   []Provenance `json:"steps"`
}

// Provenance details a single reference lookup during expansion.
type Provenance struct {
	Reference string `json:"reference"`
	Source    string `json:"source,omitempty"`
	Raw       string `json:"raw,omitempty"`
	Found     bool   `json:"found"`
}

// ToJSON serialises the trace for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload previously produced by ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

type traceRecorder struct {
	steps []Provenance
}

func (r *traceRecorder) record(step Provenance) {
	r.steps = append(r.steps, step)
}

// Traced resolves option like Get while recording the lookup chain. The
// trace is returned even when resolution fails, so callers can see how
// far expansion progressed.
func (v *View) Traced(option string) (string, Trace, error) {
	key := normalizeOption(option)
	rec := &traceRecorder{}
	start := time.Now()
	value, err := v.store.resolveOption(v.name, key, rec)
	v.logResolve(key, KindString, start, err)
	trace := Trace{
		ID:      uuid.NewString(),
		Section: v.name,
		Option:  key,
		Value:   value,
		Steps:   rec.steps,
	}
	return value, trace, err
}
