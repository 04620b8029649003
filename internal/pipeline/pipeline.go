package pipeline

import (
	"sort"
	"time"

	"solar_telemetry"
)

// Pipeline runs decode → normalize → transform → sort → group →
// aggregate over a full feed snapshot. It is stateless; every call to
// Refresh returns a fresh immutable Snapshot, never a mutation of a
// previous one.
type Pipeline struct {
	policy Policy
}

func New(policy Policy) *Pipeline {
	return &Pipeline{policy: policy}
}

// Snapshot is the complete derived state of one refresh cycle. All
// fields are built once and never mutated afterwards; accessors hand
// out copies of the slices they expose.
type Snapshot struct {
	policy     Policy
	dates      []string // ascending; sentinel key sorts last
	grouped    map[string][]solar_telemetry.Reading
	aggregates map[string][]solar_telemetry.Aggregate
	builtAt    time.Time

	records      int
	nullValues   int
	unknownDates int
}

// Refresh rebuilds the entire derived state from a raw snapshot. It is
// total over arbitrary input: malformed records degrade to nil values,
// unknown panels, or the sentinel date group, and nothing here returns
// an error or panics.
func (p *Pipeline) Refresh(records map[string]solar_telemetry.RawRecord) *Snapshot {
	snap := &Snapshot{
		policy:     p.policy,
		grouped:    make(map[string][]solar_telemetry.Reading),
		aggregates: make(map[string][]solar_telemetry.Aggregate),
		builtAt:    time.Now(),
		records:    len(records),
	}

	readings := make([]solar_telemetry.Reading, 0, len(records))
	for _, rec := range records {
		d := Decode(rec)
		r := solar_telemetry.Reading{
			Panel:    d.Panel,
			TimeText: d.TimeText,
			Instant:  ToInstant(d.TimeText),
		}
		if d.Raw != nil {
			v := p.policy.Transformer.Transform(*d.Raw, r.Instant)
			r.Value = &v
		} else {
			snap.nullValues++
		}
		readings = append(readings, r)
	}

	sort.Slice(readings, func(i, j int) bool {
		return readingLess(readings[i], readings[j])
	})

	for _, r := range readings {
		key := ToDateKey(r.TimeText)
		if key == solar_telemetry.UnknownDateKey {
			snap.unknownDates++
		}
		snap.grouped[key] = append(snap.grouped[key], r)
	}

	for key := range snap.grouped {
		snap.dates = append(snap.dates, key)
	}
	sort.Strings(snap.dates)

	for key, group := range snap.grouped {
		snap.aggregates[key] = p.aggregate(group)
	}

	return snap
}

// readingLess orders readings chronologically. Unknown instants sort
// after every known one, ordered among themselves by panel then raw
// text, so the result does not depend on feed key order or wall-clock
// time at refresh.
func readingLess(a, b solar_telemetry.Reading) bool {
	if a.Instant.Known != b.Instant.Known {
		return a.Instant.Known
	}
	if a.Instant.Known && !a.Instant.Wall.Equal(b.Instant.Wall) {
		return a.Instant.Wall.Before(b.Instant.Wall)
	}
	if a.Panel != b.Panel {
		return a.Panel < b.Panel
	}
	return a.TimeText < b.TimeText
}

// aggregate partitions one date group by panel and summarizes each
// partition's non-null values under the active policy.
func (p *Pipeline) aggregate(group []solar_telemetry.Reading) []solar_telemetry.Aggregate {
	byPanel := make(map[solar_telemetry.Panel][]float64)
	var order []solar_telemetry.Panel

	for _, r := range group {
		if _, seen := byPanel[r.Panel]; !seen {
			order = append(order, r.Panel)
		}
		if r.Value != nil {
			byPanel[r.Panel] = append(byPanel[r.Panel], *r.Value)
		} else if byPanel[r.Panel] == nil {
			byPanel[r.Panel] = []float64{}
		}
	}

	out := make([]solar_telemetry.Aggregate, 0, len(order))
	for _, panel := range order {
		agg := solar_telemetry.Aggregate{
			Panel:   panel,
			Summary: p.policy.Aggregator.Summarize(byPanel[panel]),
		}
		if p.policy.Watts {
			agg.Watts = VoltsToWatts(agg.Summary)
		}
		out = append(out, agg)
	}
	return out
}

// Policy returns the policy pairing this snapshot was built under.
func (s *Snapshot) Policy() Policy { return s.policy }

// BuiltAt reports when the snapshot was assembled.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// Records is the number of raw records the snapshot was built from.
func (s *Snapshot) Records() int { return s.records }

// NullValues counts readings whose payload could not be parsed.
func (s *Snapshot) NullValues() int { return s.nullValues }

// UnknownDates counts readings grouped under the sentinel date key.
func (s *Snapshot) UnknownDates() int { return s.unknownDates }

// DateKeys returns all date keys in ascending order.
func (s *Snapshot) DateKeys() []string {
	out := make([]string, len(s.dates))
	copy(out, s.dates)
	return out
}

// Aggregates returns the per-panel aggregates for a date, or nil when
// the date has no readings.
func (s *Snapshot) Aggregates(date string) []solar_telemetry.Aggregate {
	src := s.aggregates[date]
	if src == nil {
		return nil
	}
	out := make([]solar_telemetry.Aggregate, len(src))
	copy(out, src)
	return out
}

// AggregateFor returns the summary for a (date, panel) pair, or 0 when
// absent.
func (s *Snapshot) AggregateFor(date string, panel solar_telemetry.Panel) float64 {
	for _, a := range s.aggregates[date] {
		if a.Panel == panel {
			return a.Summary
		}
	}
	return 0
}

// ReadingsFor returns the chronologically ordered readings of a
// (date, panel) pair; empty when absent.
func (s *Snapshot) ReadingsFor(date string, panel solar_telemetry.Panel) []solar_telemetry.Reading {
	var out []solar_telemetry.Reading
	for _, r := range s.grouped[date] {
		if r.Panel == panel {
			out = append(out, r)
		}
	}
	return out
}
