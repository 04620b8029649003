package solar_telemetry

import "time"

// RawRecord is one entry of the inbound feed snapshot: an SMS-style
// message and the phone number that sent it. Records are immutable and
// keyed by an opaque feed key whose iteration order is meaningless.
type RawRecord struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// Panel identifies a physical solar installation by its display name.
type Panel string

const (
	PanelCaledonia    Panel = "Panel CALEDONIA"
	PanelTugula       Panel = "Panel TUGULA"
	PanelSanCristobal Panel = "Panel SAN CRISTOBAL"
	PanelUnknown      Panel = "Panel desconocido"
)

// ExportPanels is the fixed section order for tabular exports. It is a
// contract of the export format, not alphabetical or discovery order.
var ExportPanels = []Panel{PanelTugula, PanelCaledonia, PanelSanCristobal}

// senderPanels maps reporting phone numbers to panels. Exact match only;
// the table is deliberately fixed in code so it cannot drift from the
// Panel enumeration.
var senderPanels = map[string]Panel{
	"+593982138667": PanelCaledonia,
	"+593996002370": PanelTugula,
	"+593962380047": PanelSanCristobal,
}

// PanelFromSender resolves a sender to its panel. Unmatched senders map
// to PanelUnknown and still aggregate as their own group.
func PanelFromSender(sender string) Panel {
	if p, ok := senderPanels[sender]; ok {
		return p
	}
	return PanelUnknown
}

// SheetName returns the panel name without the "Panel " prefix, used as
// the spreadsheet sheet title.
func (p Panel) SheetName() string {
	const prefix = "Panel "
	s := string(p)
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}

// ParsePanel matches a query string against the known panels by full
// name or sheet name. Returns false for anything else.
func ParsePanel(s string) (Panel, bool) {
	for _, p := range append(append([]Panel{}, ExportPanels...), PanelUnknown) {
		if s == string(p) || s == p.SheetName() {
			return p, true
		}
	}
	return "", false
}

// UnknownDateKey groups readings whose timestamp carries no parseable
// date. It sorts after every ISO date key, so the group lands last.
const UnknownDateKey = "Fecha desconocida"

// Instant is a decoded wall-clock timestamp. Known=false means the raw
// time text did not match the expected format; such readings keep a zero
// Wall value and are ordered after all known instants instead of being
// silently stamped with the current time.
type Instant struct {
	Wall  time.Time `json:"wall"`
	Known bool      `json:"known"`
}

// Reading is one decoded, normalized, transformed telemetry sample.
// Value is nil when the payload could not be parsed; the reading is
// still grouped but excluded from aggregation.
type Reading struct {
	Panel    Panel    `json:"panel"`
	Value    *float64 `json:"value"`
	TimeText string   `json:"time_text"`
	Instant  Instant  `json:"instant"`
}

// Aggregate is the per-panel-per-day summary. Summary is a mean voltage
// or a power percentage depending on the active policy; Watts is only
// populated under the voltage policy.
type Aggregate struct {
	Panel   Panel   `json:"panel"`
	Summary float64 `json:"summary"`
	Watts   float64 `json:"watts,omitempty"`
}

// Refresh triggers.
const (
	TriggerTimer = "TIMER"
	TriggerPush  = "PUSH"
)

// RefreshEvent is one audit entry per pipeline rebuild.
type RefreshEvent struct {
	EventID      string    `json:"event_id"`
	OccurredAt   time.Time `json:"occurred_at"`
	Trigger      string    `json:"trigger"` // TIMER | PUSH
	Policy       string    `json:"policy"`
	Records      int       `json:"records"`
	NullValues   int       `json:"null_values"`
	UnknownDates int       `json:"unknown_dates"`
	DurationMS   int64     `json:"duration_ms"`
}
