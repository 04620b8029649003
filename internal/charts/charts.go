// Package charts keeps one bar indicator per (date, panel) aggregate.
// Indicators are rebuilt wholesale on every refresh: all previous
// handles are released before any new one is created, so a rendering
// surface never accumulates stale bars.
package charts

import (
	"fmt"
	"sync"

	"solar_telemetry"
	"solar_telemetry/internal/pipeline"
)

// BarSpec describes one bar indicator. Min is always 0; Max is the
// policy ceiling, 0 meaning unbounded.
type BarSpec struct {
	Key   string  `json:"key"` // chart-<date>-<panel>
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max,omitempty"`
}

// Handle is a live indicator on some rendering surface. It must be
// closed before a replacement for the same key is rendered.
type Handle interface {
	Close() error
}

// Renderer creates indicators on a rendering surface. A (nil, nil)
// return means the surface for this bar is not ready; the bar is
// skipped silently and retried on the next rebuild.
type Renderer interface {
	Render(spec BarSpec) (Handle, error)
}

// Registry owns the handles of the current refresh cycle.
type Registry struct {
	mu       sync.Mutex
	renderer Renderer
	handles  map[string]Handle
	specs    []BarSpec
}

func NewRegistry(renderer Renderer) *Registry {
	return &Registry{
		renderer: renderer,
		handles:  make(map[string]Handle),
	}
}

// Key builds the composite identifier of one indicator.
func Key(date string, panel solar_telemetry.Panel) string {
	return fmt.Sprintf("chart-%s-%s", date, panel)
}

// Rebuild disposes every existing handle, then renders one bar per
// (date, panel) aggregate of the snapshot. Close errors do not stop the
// teardown; every prior handle is released exactly once.
func (g *Registry) Rebuild(snap *pipeline.Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for key, h := range g.handles {
		_ = h.Close()
		delete(g.handles, key)
	}
	g.specs = g.specs[:0]

	for _, date := range snap.DateKeys() {
		for _, agg := range snap.Aggregates(date) {
			spec := BarSpec{
				Key:   Key(date, agg.Panel),
				Label: pipeline.DisplayDate(date) + " " + string(agg.Panel),
				Value: agg.Summary,
				Max:   snap.Policy().ChartMax,
			}
			g.specs = append(g.specs, spec)

			h, err := g.renderer.Render(spec)
			if err != nil || h == nil {
				// surface not ready for this bar; skip, keep the spec
				continue
			}
			g.handles[spec.Key] = h
		}
	}
}

// Specs returns the bar specs of the latest rebuild.
func (g *Registry) Specs() []BarSpec {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]BarSpec, len(g.specs))
	copy(out, g.specs)
	return out
}

// NopRenderer renders bars that hold no surface resources. It is the
// default when no dashboard surface is attached; the specs remain
// queryable through the registry.
type NopRenderer struct{}

type nopHandle struct{}

func (nopHandle) Close() error { return nil }

func (NopRenderer) Render(BarSpec) (Handle, error) { return nopHandle{}, nil }
